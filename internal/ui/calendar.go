package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/utils"
)

// CalendarView is everything the day, week and month renderers need.
// Hour is the highlighted row of the day view, or -1.
type CalendarView struct {
	Entries []diary.Entry
	Cursor  time.Time
	Today   time.Time
	Hour    int
	First   time.Weekday
	Loc     *time.Location
	Theme   Theme
	Width   int
}

func (v CalendarView) loc() *time.Location {
	if v.Loc == nil {
		return time.Local
	}
	return v.Loc
}

func (v CalendarView) width() int {
	if v.Width <= 0 {
		return 80
	}
	return v.Width
}

func entryLabel(e diary.Entry, width int) string {
	s := e.Type.Emoji() + " " + e.DisplayTitle()
	if e.Emotion != "" && e.Type == diary.TypeEmotion {
		s += " " + e.Emotion
	}
	if n := len(e.Tasks); n > 0 {
		s += fmt.Sprintf(" [%d/%d]", diary.TaskList(e.Tasks).Done(), n)
	}
	return utils.Truncate(s, width)
}

// RenderDayView draws the 24 hour rows of the cursor's day.
func RenderDayView(v CalendarView) string {
	loc := v.loc()
	g := calendar.Day(v.Entries, v.Cursor, loc)
	th := v.Theme

	var b strings.Builder
	b.WriteString(th.Title.Render(g.Date.Format("Monday, January 2, 2006")))
	if filter.SameDay(g.Date, v.Today, loc) {
		b.WriteString(th.Hint.Render("  today"))
	}
	b.WriteString("\n")
	b.WriteString(th.Label.Render(fmt.Sprintf("%d entries", g.Count())))
	b.WriteString("\n\n")

	for _, row := range g.Rows {
		marker := "  "
		if row.Hour == v.Hour {
			marker = th.Selected.Render("▶ ")
		}
		hour := fmt.Sprintf("%02d:00", row.Hour)
		if row.Hour == v.Hour {
			hour = th.Selected.Render(hour)
		} else {
			hour = th.Label.Render(hour)
		}
		b.WriteString(marker + hour + " │ ")
		if len(row.Entries) == 0 {
			b.WriteString(th.Muted.Render("·"))
		} else {
			labels := make([]string, len(row.Entries))
			for i, e := range row.Entries {
				labels[i] = entryLabel(e, v.width()-12)
			}
			b.WriteString(th.Value.Render(strings.Join(labels, "  ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWeekView draws one block per day of the cursor's week.
func RenderWeekView(v CalendarView) string {
	loc := v.loc()
	g := calendar.Week(v.Entries, v.Cursor, v.First, loc)
	th := v.Theme

	var b strings.Builder
	b.WriteString(th.Title.Render("Week of " + g.Start.Format("Jan 2, 2006")))
	b.WriteString("\n\n")

	for _, col := range g.Columns {
		head := fmt.Sprintf("%s %s", col.Date.Format("Mon"), col.Date.Format("01/02"))
		if n := len(col.Entries); n > 0 {
			head += fmt.Sprintf(" (%d)", n)
		}
		switch {
		case filter.SameDay(col.Date, v.Cursor, loc):
			head = th.Selected.Render("[" + head + "]")
		case filter.SameDay(col.Date, v.Today, loc):
			head = th.Value.Render("(" + head + ")")
		default:
			head = th.Label.Render(" " + head + " ")
		}
		b.WriteString(head)
		b.WriteString("\n")
		for _, e := range col.Entries {
			h := calendar.EffectiveHour(e, loc)
			b.WriteString(fmt.Sprintf("    %s  %s\n", th.Label.Render(fmt.Sprintf("%02d:00", h)), entryLabel(e, v.width()-12)))
		}
	}
	return b.String()
}

// RenderMonthView draws the six-week grid. Days with entries carry a dot,
// today is in parentheses and the cursor in brackets.
func RenderMonthView(v CalendarView) string {
	loc := v.loc()
	g := calendar.Month(v.Entries, v.Cursor, v.First, loc)
	th := v.Theme

	var b strings.Builder
	b.WriteString(th.Title.Render(g.Month.Format("January 2006")))
	b.WriteString("\n\n")
	for _, wd := range calendar.Weekdays(v.First) {
		b.WriteString(th.Label.Render(fmt.Sprintf(" %-4s", wd.String()[:2])))
	}
	b.WriteString("\n")

	for _, week := range g.Cells {
		for _, c := range week {
			mark := " "
			if c.Count > 0 {
				mark = "•"
			}
			cell := fmt.Sprintf("%2d%s", c.Date.Day(), mark)
			switch {
			case filter.SameDay(c.Date, v.Cursor, loc):
				cell = th.Selected.Render("[" + cell + "]")
			case filter.SameDay(c.Date, v.Today, loc):
				cell = th.Value.Render("(" + cell + ")")
			case !c.InMonth:
				cell = th.Muted.Render(" " + cell + " ")
			default:
				cell = " " + cell + " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	if sel := calendar.OnDay(v.Entries, v.Cursor, loc); len(sel) > 0 {
		b.WriteString("\n")
		b.WriteString(th.Label.Render(v.Cursor.In(loc).Format("Jan 2")))
		b.WriteString("\n")
		for _, e := range sel {
			b.WriteString("  " + entryLabel(e, v.width()-4) + "\n")
		}
	}
	return b.String()
}

// RenderCalendar dispatches on the view.
func RenderCalendar(view calendar.View, v CalendarView) string {
	switch view {
	case calendar.ViewWeek:
		return RenderWeekView(v)
	case calendar.ViewMonth:
		return RenderMonthView(v)
	default:
		return RenderDayView(v)
	}
}
