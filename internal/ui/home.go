package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
)

func (m Model) calendarView() CalendarView {
	hour := -1
	if m.view == calendar.ViewDay {
		hour = m.hour
	}
	return CalendarView{
		Entries: m.app.Entries(),
		Cursor:  m.cursor,
		Today:   m.now,
		Hour:    hour,
		First:   m.cfg.WeekStart(),
		Loc:     m.app.Location(),
		Theme:   m.th,
		Width:   m.width,
	}
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quick.Focused() {
		return m.updateQuickTitle(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "d", "1":
		m.view = calendar.ViewDay
	case "w", "2":
		m.view = calendar.ViewWeek
	case "m", "3":
		m.view = calendar.ViewMonth
	case "tab":
		m.view = (m.view + 1) % 3
	case "left", "h":
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case "right", "l":
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case "up", "k":
		if m.view == calendar.ViewDay {
			m.hour = max(m.hour-1, 0)
		} else {
			m.cursor = m.cursor.AddDate(0, 0, -7)
		}
	case "down", "j":
		if m.view == calendar.ViewDay {
			m.hour = min(m.hour+1, 23)
		} else {
			m.cursor = m.cursor.AddDate(0, 0, 7)
		}
	case "[", "pgup":
		m.cursor = calendar.Shift(m.cursor, m.view, -1)
	case "]", "pgdown":
		m.cursor = calendar.Shift(m.cursor, m.view, 1)
	case ".":
		m.cursor = m.now
		m.hour = m.now.Hour()
	case "t", "/":
		return m, m.quick.Focus()
	case "n":
		return m.chooseType()
	case "enter":
		if m.view != calendar.ViewDay {
			m.view = calendar.ViewDay
			return m, nil
		}
		if at := calendar.AtHour(m.app.Entries(), m.cursor, m.hour, m.app.Location()); len(at) > 0 {
			m.openDetail(at[0].ID)
			return m, nil
		}
		return m.chooseType()
	case "L", "ctrl+l":
		return m.enterList()
	case "p":
		m.back = m.screen
		m.screen = screenProfile
		m.profileCursor = 0
	}
	return m, nil
}

func (m Model) updateQuickTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if !m.quick.Showing() {
			m.quick.Blur()
			return m, m.saveQuickTitle()
		}
	case tea.KeyEnter:
		if !m.quick.Showing() {
			m.quick.Blur()
			return m, m.saveQuickTitle()
		}
	}
	var cmd tea.Cmd
	m.quick, cmd = m.quick.Update(msg)
	return m, cmd
}

func (m *Model) saveQuickTitle() tea.Cmd {
	if err := m.app.SetQuickTitle(m.ctx, m.quick.Value()); err != nil {
		return m.fail(err)
	}
	return nil
}

// chooseType records where the write started and asks for the diary type.
func (m Model) chooseType() (tea.Model, tea.Cmd) {
	if cmd := m.saveQuickTitle(); cmd != nil {
		return m, cmd
	}
	day := filter.StartOfDay(m.cursor, m.app.Location())
	var slot *int
	if m.view == calendar.ViewDay {
		slot = diary.Slot(m.hour)
	}
	if err := m.app.BeginWrite(m.ctx, &day, slot); err != nil {
		return m, m.fail(err)
	}
	m.modals.Push(Modal{Kind: ModalTypeChooser, Title: "What will you write?"})
	return m, nil
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.header("Diary"))

	for _, v := range []calendar.View{calendar.ViewDay, calendar.ViewWeek, calendar.ViewMonth} {
		label := strings.ToUpper(v.String()[:1]) + v.String()[1:]
		if v == m.view {
			b.WriteString(m.th.TabActive.Render(label))
		} else {
			b.WriteString(m.th.Tab.Render(label))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(m.th.Label.Render("Title "))
	b.WriteString(m.quick.View())
	b.WriteString("\n\n")

	b.WriteString(RenderCalendar(m.view, m.calendarView()))

	if m.quick.Focused() {
		b.WriteString(m.footer("enter keep title", "tab next suggestion", "esc done"))
	} else {
		b.WriteString(m.footer("d/w/m view", "←/→ day", "↑/↓ hour/week", "[/] prev/next", ". today",
			"t title", "n write", "enter open", "L my diaries", "p profile", "q quit"))
	}
	return b.String()
}
