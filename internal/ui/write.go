package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/diary"
)

type writeField int

const (
	fieldTitle writeField = iota
	fieldEmotion
	fieldSymptoms
	fieldFlow
	fieldPain
	fieldTaskInput
	fieldTasks
	fieldContent
)

// fieldsFor lists the form fields of a diary type in tab order.
func fieldsFor(t diary.Type) []writeField {
	switch t {
	case diary.TypeDaily, diary.TypeEmotion:
		return []writeField{fieldTitle, fieldEmotion, fieldContent}
	case diary.TypePeriod:
		return []writeField{fieldTitle, fieldSymptoms, fieldFlow, fieldPain, fieldContent}
	case diary.TypeSchedule:
		return []writeField{fieldTitle, fieldTaskInput, fieldTasks, fieldContent}
	default:
		return []writeField{fieldTitle, fieldContent}
	}
}

type writeForm struct {
	typ      diary.Type
	editID   string
	original diary.Entry

	title      textinput.Model
	content    textarea.Model
	emotion    int
	period     diary.PeriodLog
	symptom    int
	tasks      diary.TaskList
	taskInput  textinput.Model
	taskCursor int

	fields []writeField
	field  int
}

func newWriteForm(t diary.Type) writeForm {
	title := textinput.New()
	title.Placeholder = t.Label()
	title.CharLimit = 100
	title.Width = 50

	ti := textinput.New()
	ti.Placeholder = "Add a task and press enter"
	ti.CharLimit = 100
	ti.Width = 40

	return writeForm{
		typ:       t,
		title:     title,
		content:   newTextarea(t.Prompt()),
		period:    *diary.NewPeriodLog(),
		taskInput: ti,
		fields:    fieldsFor(t),
	}
}

// editForm loads an existing entry into the form.
func editForm(e diary.Entry) writeForm {
	f := newWriteForm(e.Type)
	f.editID = e.ID
	f.original = e.Clone()
	f.title.SetValue(e.Title)
	f.content.SetValue(e.Content)
	for i, em := range diary.Emotions {
		if em.Emoji == e.Emotion {
			f.emotion = i
		}
	}
	if e.Period != nil {
		f.period = *e.Period
		f.period.Symptoms = append([]diary.Symptom(nil), e.Period.Symptoms...)
	}
	f.tasks = append(diary.TaskList(nil), e.Tasks...)
	return f
}

func (f *writeForm) current() writeField { return f.fields[f.field] }

func (f *writeForm) focus(i int) tea.Cmd {
	f.field = (i + len(f.fields)) % len(f.fields)
	f.title.Blur()
	f.taskInput.Blur()
	f.content.Blur()
	switch f.current() {
	case fieldTitle:
		return f.title.Focus()
	case fieldTaskInput:
		return f.taskInput.Focus()
	case fieldContent:
		return f.content.Focus()
	}
	return nil
}

func (f *writeForm) resize(width int) {
	if width > 10 {
		f.content.SetWidth(min(width-4, 100))
	}
}

func (f *writeForm) updateInputs(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	switch f.current() {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldTaskInput:
		f.taskInput, cmd = f.taskInput.Update(msg)
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

// draft is what a new entry gets from the form.
func (f *writeForm) draft() app.Draft {
	d := app.Draft{
		Type:    f.typ,
		Title:   f.title.Value(),
		Content: f.content.Value(),
		Emotion: diary.Emotions[f.emotion].Emoji,
	}
	if f.typ == diary.TypePeriod {
		p := f.period
		d.Period = &p
	}
	if f.typ == diary.TypeSchedule {
		d.Tasks = append([]diary.Task(nil), f.tasks...)
	}
	return d
}

// edited applies the form to the entry being edited.
func (f *writeForm) edited() diary.Entry {
	e := f.original.Clone()
	d := f.draft()
	e.Title, e.Content = d.Title, d.Content
	if f.hasField(fieldEmotion) {
		e.Emotion = d.Emotion
	}
	if d.Period != nil {
		e.Period = d.Period
	}
	if f.typ == diary.TypeSchedule {
		e.Tasks = d.Tasks
	}
	return e
}

func (f *writeForm) hasField(w writeField) bool {
	for _, x := range f.fields {
		if x == w {
			return true
		}
	}
	return false
}

// startWrite opens the form for a new entry of type t with the pending title.
func (m Model) startWrite(t diary.Type) (tea.Model, tea.Cmd) {
	m.w = newWriteForm(t)
	m.w.resize(m.width)
	m.w.title.SetValue(m.app.PendingTitle(m.ctx))
	m.back = screenHome
	m.screen = screenWrite
	return m, m.w.focus(0)
}

func (m Model) startEdit(e diary.Entry) (tea.Model, tea.Cmd) {
	m.w = editForm(e)
	m.w.resize(m.width)
	m.back = m.screen
	m.screen = screenWrite
	return m, m.w.focus(0)
}

func (m Model) updateWrite(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.w
	switch msg.String() {
	case "ctrl+s":
		return m, m.afterDelay(opSave, f.editID)
	case "esc":
		m.screen = m.back
		return m, nil
	case "tab":
		return m, f.focus(f.field + 1)
	case "shift+tab":
		return m, f.focus(f.field - 1)
	}

	key := msg.String()
	switch f.current() {
	case fieldEmotion:
		switch key {
		case "left", "h":
			f.emotion = (f.emotion - 1 + len(diary.Emotions)) % len(diary.Emotions)
		case "right", "l", " ":
			f.emotion = (f.emotion + 1) % len(diary.Emotions)
		case "enter":
			return m, f.focus(f.field + 1)
		}
		return m, nil
	case fieldSymptoms:
		switch key {
		case "left", "h":
			f.symptom = max(f.symptom-1, 0)
		case "right", "l":
			f.symptom = min(f.symptom+1, len(diary.Symptoms)-1)
		case " ", "enter":
			f.period.Toggle(diary.Symptoms[f.symptom])
		}
		return m, nil
	case fieldFlow:
		switch key {
		case "left", "h", "-":
			f.period.Flow = max(f.period.Flow-1, diary.MinFlow)
		case "right", "l", "+":
			f.period.Flow = min(f.period.Flow+1, diary.MaxFlow)
		}
		return m, nil
	case fieldPain:
		switch key {
		case "left", "h", "-":
			f.period.Pain = max(f.period.Pain-1, 0)
		case "right", "l", "+":
			f.period.Pain = min(f.period.Pain+1, diary.MaxPain)
		}
		return m, nil
	case fieldTaskInput:
		if key == "enter" {
			if f.tasks.Add(f.taskInput.Value()) {
				f.taskInput.SetValue("")
				f.taskCursor = len(f.tasks) - 1
			}
			return m, nil
		}
	case fieldTasks:
		switch key {
		case "up", "k":
			f.taskCursor = max(f.taskCursor-1, 0)
		case "down", "j":
			f.taskCursor = min(f.taskCursor+1, max(len(f.tasks)-1, 0))
		case " ", "enter":
			if f.taskCursor < len(f.tasks) {
				f.tasks.Toggle(f.tasks[f.taskCursor].ID)
			}
		case "x", "delete", "backspace":
			if f.taskCursor < len(f.tasks) {
				f.tasks.Remove(f.tasks[f.taskCursor].ID)
				f.taskCursor = min(f.taskCursor, max(len(f.tasks)-1, 0))
			}
		}
		return m, nil
	case fieldTitle:
		if key == "enter" {
			return m, f.focus(f.field + 1)
		}
	}
	return m, f.updateInputs(msg)
}

// commitWrite runs once the save delay has passed.
func (m Model) commitWrite() (tea.Model, tea.Cmd) {
	f := &m.w
	if f.editID != "" {
		e, err := m.app.Update(m.ctx, f.edited())
		if err != nil {
			return m, m.fail(err)
		}
		m.refresh()
		m.screen = m.back
		if m.screen == screenHome {
			m.cursor = e.Date.In(m.app.Location())
		}
		return m, m.showToast("Diary updated", false)
	}

	e, err := m.app.Create(m.ctx, f.draft())
	if err != nil {
		return m, m.fail(err)
	}
	m.quick.SetValue("")
	m.screen = screenHome
	m.cursor = e.Date.In(m.app.Location())
	if h, ok := m.app.TakeScrollTarget(m.ctx); ok {
		m.view = calendar.ViewDay
		m.hour = h
	}
	m.refresh()
	return m, m.showToast("Diary saved", false)
}

func (m Model) viewWrite() string {
	f := &m.w
	var b strings.Builder
	verb := "New"
	if f.editID != "" {
		verb = "Edit"
	}
	b.WriteString(m.header(fmt.Sprintf("%s %s %s", verb, f.typ.Emoji(), f.typ.Label())))
	b.WriteString(m.th.Hint.Render(f.typ.Prompt()))
	b.WriteString("\n\n")

	label := func(w writeField, s string) string {
		if f.current() == w {
			return m.pointer(true) + m.th.Selected.Render(s) + "\n"
		}
		return m.pointer(false) + m.th.Label.Render(s) + "\n"
	}

	for _, w := range f.fields {
		switch w {
		case fieldTitle:
			b.WriteString(label(w, "Title"))
			b.WriteString("  " + f.title.View() + "\n\n")
		case fieldEmotion:
			b.WriteString(label(w, "How do you feel?"))
			b.WriteString("  ")
			for i, em := range diary.Emotions {
				if i == f.emotion {
					b.WriteString(m.th.Selected.Render("[" + em.Emoji + " " + em.Name + "]"))
				} else {
					b.WriteString(" " + em.Emoji + " ")
				}
			}
			b.WriteString("\n\n")
		case fieldSymptoms:
			b.WriteString(label(w, "Symptoms"))
			b.WriteString("  ")
			for i, s := range diary.Symptoms {
				item := checkbox(f.period.Has(s)) + " " + string(s)
				if i == f.symptom && f.current() == w {
					item = m.th.Selected.Render(item)
				}
				b.WriteString(item + "  ")
			}
			b.WriteString("\n\n")
		case fieldFlow:
			b.WriteString(label(w, "Flow"))
			b.WriteString("  " + gauge(f.period.Flow, diary.MaxFlow) + fmt.Sprintf(" %d/%d\n\n", f.period.Flow, diary.MaxFlow))
		case fieldPain:
			b.WriteString(label(w, "Pain"))
			b.WriteString("  " + gauge(f.period.Pain, diary.MaxPain) + fmt.Sprintf(" %d/%d\n\n", f.period.Pain, diary.MaxPain))
		case fieldTaskInput:
			b.WriteString(label(w, "New task"))
			b.WriteString("  " + f.taskInput.View() + "\n\n")
		case fieldTasks:
			b.WriteString(label(w, fmt.Sprintf("Tasks (%d/%d done)", f.tasks.Done(), len(f.tasks))))
			if len(f.tasks) == 0 {
				b.WriteString(m.th.Muted.Render("  no tasks yet") + "\n")
			}
			for i, t := range f.tasks {
				line := "  " + checkbox(t.Completed) + " " + t.Text
				if i == f.taskCursor && f.current() == w {
					line = m.th.Selected.Render(line)
				}
				b.WriteString(line + "\n")
			}
			b.WriteString("\n")
		case fieldContent:
			b.WriteString(label(w, "Content"))
			b.WriteString(f.content.View() + "\n")
		}
	}

	b.WriteString(m.footer("tab next field", "←/→ choose", "space toggle", "ctrl+s save", "esc cancel"))
	return b.String()
}

func gauge(v, total int) string {
	return strings.Repeat("●", v) + strings.Repeat("○", max(total-v, 0))
}
