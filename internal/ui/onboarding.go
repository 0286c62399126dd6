package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/profile"
)

// consent rows: 0 is "agree to all", then one per item, then Continue.
func consentRows() int { return len(consent.Items) + 2 }

func (m Model) updateConsent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := consentRows() - 1
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.consentCursor = max(m.consentCursor-1, 0)
	case "down", "j", "tab":
		m.consentCursor = min(m.consentCursor+1, last)
	case " ":
		switch {
		case m.consentCursor == 0:
			m.gate.SetAll(!m.gate.All())
		case m.consentCursor < last:
			_ = m.gate.Toggle(consent.Items[m.consentCursor-1].ID)
		}
	case "enter":
		switch {
		case m.consentCursor == 0:
			m.gate.SetAll(!m.gate.All())
		case m.consentCursor < last:
			it := consent.Items[m.consentCursor-1]
			m.modals.Push(Modal{Kind: ModalDocument, Title: it.Label, Body: it.Document, Target: it.ID})
		default:
			return m.continueConsent()
		}
	case "c":
		return m.continueConsent()
	}
	return m, nil
}

func (m Model) continueConsent() (tea.Model, tea.Cmd) {
	rec, err := m.gate.Continue(m.app.Now())
	if err != nil {
		return m, m.fail(err)
	}
	if err := m.app.AcceptConsent(m.ctx, rec); err != nil {
		return m, m.fail(err)
	}
	m.screen = screenAccount
	m.accountCursor = 0
	return m, nil
}

func (m Model) viewConsent() string {
	var b strings.Builder
	b.WriteString(m.header("Welcome to Diary"))
	b.WriteString("Please review and agree to the terms below.\n\n")

	row := 0
	b.WriteString(m.pointer(m.consentCursor == row))
	b.WriteString(m.th.Title.Render(checkbox(m.gate.All()) + " Agree to all"))
	b.WriteString("\n\n")
	for _, it := range consent.Items {
		row++
		b.WriteString(m.pointer(m.consentCursor == row))
		b.WriteString(checkbox(m.gate.Checked(it.ID)) + " " + it.Label)
		b.WriteString(m.th.Hint.Render("  (enter: read)"))
		b.WriteString("\n")
	}
	row++
	b.WriteString("\n")
	b.WriteString(m.pointer(m.consentCursor == row))
	btn := "[ Continue ]"
	if m.gate.RequiredSatisfied() {
		b.WriteString(m.th.Selected.Render(btn))
	} else {
		b.WriteString(m.th.Muted.Render(btn))
	}
	b.WriteString("\n")
	b.WriteString(m.footer("↑/↓ move", "space toggle", "enter read/continue", "q quit"))
	return b.String()
}

var accountChoices = []string{"Continue as user@gmail.com", "Use another account"}

func (m Model) updateAccount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.accountCursor = max(m.accountCursor-1, 0)
	case "down", "j":
		m.accountCursor = min(m.accountCursor+1, len(accountChoices)-1)
	case "enter":
		m.screen = screenLoading
		d := m.cfg.UI.LoadingDelay
		if d <= 0 {
			d = time.Millisecond
		}
		return m, tea.Batch(m.spin.Tick, tea.Tick(d, func(time.Time) tea.Msg { return loadingDoneMsg{} }))
	}
	return m, nil
}

func (m Model) viewAccount() string {
	var b strings.Builder
	b.WriteString(m.header("Choose an account"))
	for i, c := range accountChoices {
		b.WriteString(m.pointer(i == m.accountCursor) + c + "\n")
	}
	b.WriteString(m.footer("enter continue", "q quit"))
	return b.String()
}

func (m Model) viewLoading() string {
	return m.header("Diary") + m.spin.View() + " Signing you in…\n"
}

const signupFields = 3 // nickname, birthdate, gender

func (m *Model) focusSignup(i int) tea.Cmd {
	m.signupField = (i + signupFields) % signupFields
	m.nick.Blur()
	m.birth.Blur()
	switch m.signupField {
	case 0:
		return m.nick.Focus()
	case 1:
		return m.birth.Focus()
	}
	return nil
}

func (m Model) updateSignup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.app.SkipSignup(m.ctx); err != nil {
			return m, m.fail(err)
		}
		return m.enterHome()
	case "ctrl+s":
		return m.submitSignup()
	case "tab", "down":
		return m, m.focusSignup(m.signupField + 1)
	case "shift+tab", "up":
		return m, m.focusSignup(m.signupField - 1)
	case "enter":
		if m.signupField < signupFields-1 {
			return m, m.focusSignup(m.signupField + 1)
		}
		return m.submitSignup()
	}

	var cmd tea.Cmd
	switch m.signupField {
	case 0:
		m.nick, cmd = m.nick.Update(msg)
	case 1:
		m.birth, cmd = m.birth.Update(msg)
	case 2:
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			if m.gender == profile.Female {
				m.gender = profile.Male
			} else {
				m.gender = profile.Female
			}
		case "m":
			m.gender = profile.Male
		case "f":
			m.gender = profile.Female
		}
	}
	return m, cmd
}

func (m Model) submitSignup() (tea.Model, tea.Cmd) {
	u := profile.User{
		Nickname:  m.nick.Value(),
		Birthdate: strings.TrimSpace(m.birth.Value()),
		Gender:    m.gender,
		Email:     accountEmail,
	}
	if err := m.app.Signup(m.ctx, u); err != nil {
		return m, m.fail(err)
	}
	return m.enterHome()
}

const accountEmail = "user@gmail.com"

func (m Model) viewSignup() string {
	var b strings.Builder
	b.WriteString(m.header("Tell us about you"))

	label := func(i int, s string) string {
		if i == m.signupField {
			return m.pointer(true) + m.th.Selected.Render(s)
		}
		return m.pointer(false) + m.th.Label.Render(s)
	}
	b.WriteString(label(0, "Nickname") + "\n  " + m.nick.View() + "\n\n")
	b.WriteString(label(1, "Birthdate") + "\n  " + m.birth.View() + "\n\n")
	b.WriteString(label(2, "Gender") + "\n  ")
	for _, g := range []profile.Gender{profile.Male, profile.Female} {
		opt := "( ) " + g.Label()
		if m.gender == g {
			opt = m.th.Selected.Render("(•) " + g.Label())
		}
		b.WriteString(opt + "   ")
	}
	b.WriteString("\n")
	b.WriteString(m.footer("tab next field", "←/→ gender", "ctrl+s sign up", "esc skip"))
	return b.String()
}

func (m Model) enterHome() (tea.Model, tea.Cmd) {
	m.nick.Blur()
	m.birth.Blur()
	m.screen = screenHome
	m.refresh()
	return m, nil
}
