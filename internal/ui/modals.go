package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/theme"
	"github.com/ramanasai/diary/internal/utils"
)

const documentPage = 14

func (m *Model) openDetail(id string) {
	m.modals.Push(Modal{Kind: ModalDetail, Title: "Diary", Target: id})
}

func (m *Model) openTheme() {
	cur := 0
	for i, name := range theme.Presets() {
		if name == m.app.Theme().Current {
			cur = i
		}
	}
	m.modals.Push(Modal{Kind: ModalTheme, Title: "🎨 Theme", Cursor: cur})
}

// themeRows are the presets followed by the custom palette row.
func themeRows() []string {
	return append(theme.Presets(), theme.Custom)
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top, _ := m.modals.Top()
	key := msg.String()

	switch top.Kind {
	case ModalAlert:
		if key == "enter" || key == "esc" || key == " " {
			m.modals.Pop()
		}

	case ModalDocument:
		switch key {
		case "esc":
			m.modals.Pop()
		case "up", "k":
			top.Cursor = max(top.Cursor-1, 0)
		case "down", "j":
			top.Cursor = min(top.Cursor+1, max(len(strings.Split(top.Body, "\n"))-documentPage, 0))
		case "enter", "y":
			if err := m.gate.Confirm(top.Target); err != nil {
				m.log.Warn("confirm consent", "err", err)
			}
			m.modals.Pop()
		}

	case ModalTypeChooser:
		types := m.app.Types()
		switch key {
		case "esc":
			m.modals.Pop()
		case "up", "k":
			top.Cursor = max(top.Cursor-1, 0)
		case "down", "j":
			top.Cursor = min(top.Cursor+1, len(types)-1)
		case "enter":
			t := types[top.Cursor]
			m.modals.Pop()
			return m.startWrite(t)
		}

	case ModalDetail:
		switch key {
		case "esc", "q":
			m.modals.Pop()
		case "up", "k":
			top.Cursor = max(top.Cursor-1, 0)
		case "down", "j":
			top.Cursor++
		case "e":
			e, ok := m.app.Entry(top.Target)
			m.modals.Clear()
			if !ok {
				return m, m.showToast("That diary no longer exists", true)
			}
			return m.startEdit(e)
		case "d", "x":
			m.modals.Push(Modal{Kind: ModalConfirm, Title: "Delete this diary?",
				Body: "This cannot be undone.", Target: top.Target, Action: "delete"})
		}

	case ModalConfirm:
		switch key {
		case "esc", "n":
			m.modals.Pop()
		case "y", "enter":
			c, _ := m.modals.Pop()
			return m.confirm(c)
		}

	case ModalPremium:
		switch key {
		case "esc", "q":
			m.modals.Pop()
		case "s", "enter":
			if m.app.Premium() {
				m.modals.Pop()
				return m, nil
			}
			if err := m.app.Subscribe(m.ctx); err != nil {
				return m, m.fail(err)
			}
			m.modals.Pop()
			return m, m.showToast("Welcome to premium ★", false)
		}

	case ModalTheme:
		return m.updateThemeModal(top, msg)
	}
	return m, nil
}

func (m Model) updateThemeModal(top *Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := themeRows()
	if top.Action == "edit" {
		switch msg.String() {
		case "esc":
			top.Action = ""
			m.customInput.Blur()
			return m, nil
		case "enter":
			p, err := parsePalette(m.customInput.Value())
			if err == nil {
				err = m.app.SetCustomColors(m.ctx, p)
			}
			if err != nil {
				return m, m.fail(err)
			}
			m.customInput.Blur()
			m.modals.Pop()
			m.refresh()
			return m, m.showToast("Custom colours applied", false)
		}
		var cmd tea.Cmd
		m.customInput, cmd = m.customInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.modals.Pop()
	case "up", "k":
		top.Cursor = max(top.Cursor-1, 0)
	case "down", "j":
		top.Cursor = min(top.Cursor+1, len(rows)-1)
	case "r":
		if err := m.app.ResetTheme(m.ctx); err != nil {
			return m, m.fail(err)
		}
		m.refresh()
	case "enter":
		name := rows[top.Cursor]
		if name == theme.Custom {
			if !m.app.Premium() {
				m.modals.Push(Modal{Kind: ModalPremium, Title: "✨ This is a premium feature"})
				return m, nil
			}
			top.Action = "edit"
			c := m.app.Theme().Colors
			m.customInput.SetValue(strings.Join([]string{c.Primary, c.Secondary, c.Accent, c.Background, c.Surface}, " "))
			return m, m.customInput.Focus()
		}
		if err := m.app.SetTheme(m.ctx, name); err != nil {
			return m, m.fail(err)
		}
		m.refresh()
		return m, m.showToast("Theme set to "+name, false)
	}
	return m, nil
}

// parsePalette reads five space separated colours.
func parsePalette(s string) (theme.Palette, error) {
	f := strings.Fields(s)
	if len(f) != 5 {
		return theme.Palette{}, fmt.Errorf("enter five colours, got %d", len(f))
	}
	return theme.Palette{Primary: f[0], Secondary: f[1], Accent: f[2], Background: f[3], Surface: f[4]}, nil
}

func (m Model) confirm(c Modal) (tea.Model, tea.Cmd) {
	switch c.Action {
	case "delete":
		return m, m.afterDelay(opDelete, c.Target)
	case "logout":
		if err := m.app.Logout(m.ctx); err != nil {
			return m, m.fail(err)
		}
		m.modals.Clear()
		m.screen = screenAccount
		m.accountCursor = 0
		return m, m.showToast("Logged out", false)
	}
	return m, nil
}

// commitDelete runs once the save delay has passed.
func (m Model) commitDelete(id string) (tea.Model, tea.Cmd) {
	if err := m.app.Delete(m.ctx, id); err != nil {
		return m, m.fail(err)
	}
	m.modals.Clear()
	m.refresh()
	return m, m.showToast("Diary deleted", false)
}

func (m Model) viewModal(md Modal) string {
	var body string
	hints := "esc close"
	switch md.Kind {
	case ModalAlert:
		body = m.th.Error.Render(md.Body)
		hints = "enter ok"
	case ModalDocument:
		lines := strings.Split(md.Body, "\n")
		end := min(md.Cursor+documentPage, len(lines))
		body = strings.Join(lines[md.Cursor:end], "\n")
		hints = "↑/↓ scroll · enter agree · esc close"
	case ModalConfirm:
		body = md.Body
		hints = "y yes · n no"
	case ModalTypeChooser:
		var b strings.Builder
		for i, t := range m.app.Types() {
			line := fmt.Sprintf("%s %s", t.Emoji(), t.Label())
			if i == md.Cursor {
				line = m.th.Selected.Render(line)
			}
			b.WriteString(m.pointer(i == md.Cursor) + line + "\n")
		}
		body = b.String()
		hints = "↑/↓ choose · enter write · esc cancel"
	case ModalDetail:
		body, hints = m.viewDetail(md)
	case ModalPremium:
		body = m.viewPremium()
		hints = "s subscribe · esc later"
	case ModalTheme:
		var b strings.Builder
		for i, name := range themeRows() {
			line := name
			if p, ok := theme.Preset(name); ok {
				line = fmt.Sprintf("%-8s %s", name, swatch(p))
			} else if !m.app.Premium() {
				line += " ★ premium"
			}
			if name == m.app.Theme().Current {
				line += " ✓"
			}
			if i == md.Cursor {
				line = m.th.Selected.Render(line)
			}
			b.WriteString(m.pointer(i == md.Cursor) + line + "\n")
		}
		if md.Action == "edit" {
			b.WriteString("\n" + m.customInput.View() + "\n")
		}
		body = b.String()
		hints = "enter apply · r reset · esc close"
	}
	box := m.th.ModalTitle.Render(md.Title) + "\n" + body + "\n\n" + m.th.Hint.Render(hints)
	return m.th.ModalBox.Render(box)
}

func (m Model) viewDetail(md Modal) (string, string) {
	e, ok := m.app.Entry(md.Target)
	if !ok {
		return m.th.Muted.Render("This diary no longer exists."), "esc close"
	}
	r := utils.NewRenderer(&utils.RenderConfig{
		Format:   utils.FormatDefault,
		Width:    min(max(m.width-10, 40), 90),
		Color:    true,
		Palette:  m.th.Palette,
		Location: m.app.Location(),
		Now:      m.app.Now,
	})
	lines := strings.Split(strings.TrimRight(r.RenderEntry(e, true), "\n"), "\n")
	start := min(md.Cursor, max(len(lines)-1, 0))
	return strings.Join(lines[start:], "\n"), "e edit · d delete · ↑/↓ scroll · esc close"
}

func (m Model) viewPremium() string {
	var b strings.Builder
	if m.app.Premium() {
		b.WriteString(m.th.Success.Render("You are a premium member.") + "\n\n")
	} else {
		b.WriteString("Get more out of your diary.\n\n")
	}
	for _, f := range app.PremiumFeatures {
		b.WriteString(m.th.Success.Render("✓ ") + f + "\n")
	}
	b.WriteString("\n")
	for _, p := range app.Plans {
		b.WriteString(m.th.Title.Render(fmt.Sprintf("%-8s", p.Name)) + " " + p.Price)
		if p.Note != "" {
			b.WriteString(m.th.Hint.Render("  " + p.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func swatch(p theme.Palette) string {
	var b strings.Builder
	for _, c := range []string{p.Primary, p.Secondary, p.Accent} {
		b.WriteString(colorBlock(c))
	}
	return b.String()
}
