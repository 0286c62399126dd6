package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/utils"
)

const (
	listSearch = iota
	listType
	listDateMode
	listFrom
	listTo
	listResults
)

const listPerPage = 8

var dateModes = []filter.DateMode{filter.DateNone, filter.DateSingle, filter.DateRange}

// typeOptions are the type filter choices; index 0 is "all".
func typeOptions() []string {
	out := []string{filter.TypeAll}
	for _, t := range diary.AllTypes {
		out = append(out, string(t))
	}
	return out
}

type listForm struct {
	search   textinput.Model
	from, to textinput.Model
	typeIdx  int
	dateMode int
	field    int
	cursor   int
	page     int
	results  []diary.Entry
	dateErr  string
}

func newListForm() listForm {
	search := textinput.New()
	search.Placeholder = "Search title or content"
	search.Width = 40
	from := textinput.New()
	from.Placeholder = "from: today, 2024-01-05, 3 days ago"
	from.Width = 30
	to := textinput.New()
	to.Placeholder = "to"
	to.Width = 30
	return listForm{search: search, from: from, to: to}
}

// visible reports whether a field is shown for the current date mode.
func (l *listForm) visible(field int) bool {
	switch field {
	case listFrom:
		return dateModes[l.dateMode] != filter.DateNone
	case listTo:
		return dateModes[l.dateMode] == filter.DateRange
	}
	return true
}

func (l *listForm) focus(step int) tea.Cmd {
	for {
		l.field = (l.field + step + listResults + 1) % (listResults + 1)
		if l.visible(l.field) {
			break
		}
	}
	l.search.Blur()
	l.from.Blur()
	l.to.Blur()
	switch l.field {
	case listSearch:
		return l.search.Focus()
	case listFrom:
		return l.from.Focus()
	case listTo:
		return l.to.Focus()
	}
	return nil
}

func (l *listForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch l.field {
	case listSearch:
		l.search, cmd = l.search.Update(msg)
	case listFrom:
		l.from, cmd = l.from.Update(msg)
	case listTo:
		l.to, cmd = l.to.Update(msg)
	}
	return cmd
}

// spec turns the form into a filter. Unparseable dates leave that bound open.
func (l *listForm) spec(now time.Time, loc *time.Location) filter.Spec {
	s := filter.Spec{
		Search: strings.TrimSpace(l.search.Value()),
		Type:   typeOptions()[l.typeIdx],
		Date:   filter.DateFilter{Mode: filter.DateNone},
	}
	l.dateErr = ""
	parse := func(in textinput.Model) *time.Time {
		v := strings.TrimSpace(in.Value())
		if v == "" {
			return nil
		}
		t, err := utils.ParseFlexibleDate(v, now, loc)
		if err != nil {
			l.dateErr = err.Error()
			return nil
		}
		return &t
	}
	switch dateModes[l.dateMode] {
	case filter.DateSingle:
		if d := parse(l.from); d != nil {
			s.Date = filter.Single(*d)
		}
	case filter.DateRange:
		from, to := parse(l.from), parse(l.to)
		switch {
		case from != nil && to != nil:
			s.Date = filter.Range(*from, *to)
		case from != nil || to != nil:
			s.Date = filter.DateFilter{Mode: filter.DateRange, Start: from, End: to}
		}
	}
	return s
}

// load fills the form from a cached filter.
func (l *listForm) load(s filter.Spec, loc *time.Location) {
	l.search.SetValue(s.Search)
	l.typeIdx = 0
	for i, t := range typeOptions() {
		if t == s.Type {
			l.typeIdx = i
		}
	}
	l.dateMode = 0
	for i, d := range dateModes {
		if d == s.Date.Mode {
			l.dateMode = i
		}
	}
	l.from.SetValue("")
	l.to.SetValue("")
	if s.Date.Start != nil {
		l.from.SetValue(s.Date.Start.In(loc).Format("2006-01-02"))
	}
	if s.Date.End != nil {
		l.to.SetValue(s.Date.End.In(loc).Format("2006-01-02"))
	}
}

func (m Model) enterList() (tea.Model, tea.Cmd) {
	s, err := m.app.LoadFilters(m.ctx)
	if err != nil {
		m.log.Warn("cached filters unreadable", "err", err)
	}
	m.l = newListForm()
	m.l.load(s, m.app.Location())
	m.l.field = listResults
	m.screen = screenList
	m.applyListFilter(false)
	return m, nil
}

// applyListFilter recomputes the results and, when save is set, caches the filter.
func (m *Model) applyListFilter(save bool) {
	s := m.l.spec(m.app.Now(), m.app.Location())
	m.l.results = m.app.Filtered(s)
	_, page := utils.Paginate(m.l.results, listPerPage, m.l.page+1)
	m.l.page = page.Current - 1
	m.l.cursor = min(m.l.cursor, max(len(m.l.results)-1, 0))
	if save {
		if err := m.app.SaveFilters(m.ctx, s); err != nil {
			m.log.Warn("cache filters", "err", err)
		}
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.l
	switch msg.String() {
	case "esc":
		m.screen = screenHome
		return m, nil
	case "tab":
		return m, l.focus(1)
	case "shift+tab":
		return m, l.focus(-1)
	case "ctrl+r":
		if err := m.app.ResetFilters(m.ctx); err != nil {
			return m, m.fail(err)
		}
		*l = newListForm()
		l.field = listResults
		m.applyListFilter(false)
		return m, m.showToast("Filters reset", false)
	}

	switch l.field {
	case listType:
		switch msg.String() {
		case "left", "h":
			l.typeIdx = (l.typeIdx - 1 + len(typeOptions())) % len(typeOptions())
		case "right", "l", " ":
			l.typeIdx = (l.typeIdx + 1) % len(typeOptions())
		}
		l.page, l.cursor = 0, 0
		m.applyListFilter(true)
		return m, nil
	case listDateMode:
		switch msg.String() {
		case "left", "h":
			l.dateMode = (l.dateMode - 1 + len(dateModes)) % len(dateModes)
		case "right", "l", " ":
			l.dateMode = (l.dateMode + 1) % len(dateModes)
		}
		l.page, l.cursor = 0, 0
		m.applyListFilter(true)
		return m, nil
	case listResults:
		return m.updateListResults(msg)
	}

	cmd := l.updateInputs(msg)
	l.page, l.cursor = 0, 0
	m.applyListFilter(true)
	return m, cmd
}

func (m Model) updateListResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.l
	items, page := utils.Paginate(l.results, listPerPage, l.page+1)
	switch msg.String() {
	case "q":
		m.screen = screenHome
	case "up", "k":
		l.cursor = max(l.cursor-1, 0)
	case "down", "j":
		l.cursor = min(l.cursor+1, max(len(items)-1, 0))
	case "right", "l", "pgdown":
		if page.HasNext() {
			l.page++
			l.cursor = 0
		}
	case "left", "h", "pgup":
		if page.HasPrev() {
			l.page--
			l.cursor = 0
		}
	case "enter":
		if l.cursor < len(items) {
			m.openDetail(items[l.cursor].ID)
		}
	case "/":
		l.field = listResults
		return m, l.focus(1)
	}
	return m, nil
}

func (m Model) viewList() string {
	l := &m.l
	var b strings.Builder
	b.WriteString(m.header("My Diaries"))

	label := func(field int, s string) string {
		if field == l.field {
			return m.pointer(true) + m.th.Selected.Render(s)
		}
		return m.pointer(false) + m.th.Label.Render(s)
	}

	b.WriteString(label(listSearch, "Search ") + l.search.View() + "\n")

	b.WriteString(label(listType, "Type   "))
	for i, t := range typeOptions() {
		name := "All"
		if dt, ok := diary.ParseType(t); ok {
			name = dt.Emoji() + " " + dt.Label()
		}
		if i == l.typeIdx {
			b.WriteString(m.th.Selected.Render("[" + name + "]"))
		} else {
			b.WriteString(" " + name + " ")
		}
	}
	b.WriteString("\n")

	b.WriteString(label(listDateMode, "Date   "))
	for i, d := range dateModes {
		if i == l.dateMode {
			b.WriteString(m.th.Selected.Render("[" + string(d) + "]"))
		} else {
			b.WriteString(" " + string(d) + " ")
		}
	}
	b.WriteString("\n")
	if l.visible(listFrom) {
		b.WriteString(label(listFrom, "  from ") + l.from.View() + "\n")
	}
	if l.visible(listTo) {
		b.WriteString(label(listTo, "  to   ") + l.to.View() + "\n")
	}
	if l.dateErr != "" {
		b.WriteString(m.th.Error.Render("  "+l.dateErr) + "\n")
	}
	b.WriteString("\n")

	items, page := utils.Paginate(l.results, listPerPage, l.page+1)
	if len(items) == 0 {
		b.WriteString(m.th.Muted.Render("  No diaries match.") + "\n")
	}
	loc := m.app.Location()
	for i, e := range items {
		line := fmt.Sprintf("%s  %s %s", e.Date.In(loc).Format("2006.01.02 15:04"), e.Type.Emoji(), e.DisplayTitle())
		if e.Emotion != "" {
			line += " " + e.Emotion
		}
		if l.field == listResults && i == l.cursor {
			b.WriteString(m.pointer(true) + m.th.Selected.Render(line) + "\n")
		} else {
			b.WriteString(m.pointer(false) + line + "\n")
		}
		if snippet := utils.Truncate(strings.ReplaceAll(e.Content, "\n", " "), 70); snippet != "" {
			b.WriteString("      " + m.th.Muted.Render(snippet) + "\n")
		}
	}
	if page.TotalPages > 1 {
		b.WriteString("\n" + m.th.Hint.Render(page.Summary()) + "\n")
	}

	b.WriteString(m.footer("tab next field", "←/→ choose/page", "enter open", "ctrl+r reset", "esc home"))
	return b.String()
}
