package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/ramanasai/diary/internal/version"
)

var profileRows = []string{"reminder", "theme", "premium", "logout", "back"}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenHome
	case "up", "k":
		m.profileCursor = max(m.profileCursor-1, 0)
	case "down", "j", "tab":
		m.profileCursor = min(m.profileCursor+1, len(profileRows)-1)
	case "enter", " ":
		switch profileRows[m.profileCursor] {
		case "reminder":
			u, _ := m.app.User()
			if err := m.app.SetReminder(m.ctx, !u.Reminder); err != nil {
				return m, m.fail(err)
			}
			state := "off"
			if !u.Reminder {
				state = "on"
			}
			return m, m.showToast("Daily reminder "+state, false)
		case "theme":
			m.openTheme()
		case "premium":
			m.modals.Push(Modal{Kind: ModalPremium, Title: "✨ Diary Premium"})
		case "logout":
			m.modals.Push(Modal{Kind: ModalConfirm, Title: "Log out?", Body: "Your diaries stay on this device.", Action: "logout"})
		case "back":
			m.screen = screenHome
		}
	}
	return m, nil
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(m.header("Profile"))

	u, ok := m.app.User()
	if ok {
		b.WriteString(m.th.Title.Render(u.Nickname) + "  " + m.th.Hint.Render(u.Email) + "\n")
		if s := u.Summary(); s != "" {
			b.WriteString(m.th.Label.Render(s) + "\n")
		}
		if !u.JoinedAt.IsZero() {
			b.WriteString(m.th.Muted.Render("joined "+humanize.Time(u.JoinedAt)) + "\n")
		}
	}
	entries := m.app.Entries()
	b.WriteString(m.th.Label.Render(plural(len(entries), "entry", "entries")+" written") + "\n\n")

	theme := m.app.Theme()
	values := map[string]string{
		"reminder": "Daily reminder  " + checkbox(u.Reminder),
		"theme":    "Theme           " + theme.Current,
		"premium":  "Premium         ",
		"logout":   "Log out",
		"back":     "Back",
	}
	if u.Premium {
		values["premium"] += "active ★"
	} else {
		values["premium"] += "see plans"
	}
	for i, r := range profileRows {
		line := values[r]
		if i == m.profileCursor {
			line = m.th.Selected.Render(line)
		}
		b.WriteString(m.pointer(i == m.profileCursor) + line + "\n")
	}
	b.WriteString(m.footer("↑/↓ move", "enter select", "esc home"))
	b.WriteString("\n" + m.th.Muted.Render(version.GetShortVersion()))
	return b.String()
}
