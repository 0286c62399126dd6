// Package calendar buckets entries into the day, week and month views.
package calendar

import (
	"time"

	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
)

// View selects which grid the home screen shows.
type View int

const (
	ViewDay View = iota
	ViewWeek
	ViewMonth
)

func (v View) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	}
	return "unknown"
}

// ParseView maps "day", "week" and "month" to a View.
func ParseView(s string) (View, bool) {
	for _, v := range []View{ViewDay, ViewWeek, ViewMonth} {
		if v.String() == s {
			return v, true
		}
	}
	return ViewDay, false
}

// EffectiveHour is the hour row an entry is drawn in: its explicit time slot
// when set and within 0-23, otherwise the hour of its timestamp in loc.
func EffectiveHour(e diary.Entry, loc *time.Location) int {
	if s := e.TimeSlot; s != nil && *s >= 0 && *s < 24 {
		return *s
	}
	return e.Date.In(loc).Hour()
}

// OnDay returns entries whose date falls on day's calendar day in loc.
func OnDay(entries []diary.Entry, day time.Time, loc *time.Location) []diary.Entry {
	var out []diary.Entry
	for _, e := range entries {
		if filter.SameDay(e.Date, day, loc) {
			out = append(out, e)
		}
	}
	return out
}

// AtHour returns entries on day whose effective hour is hour.
func AtHour(entries []diary.Entry, day time.Time, hour int, loc *time.Location) []diary.Entry {
	var out []diary.Entry
	for _, e := range OnDay(entries, day, loc) {
		if EffectiveHour(e, loc) == hour {
			out = append(out, e)
		}
	}
	return out
}

func HasEntryOn(entries []diary.Entry, day time.Time, loc *time.Location) bool {
	for _, e := range entries {
		if filter.SameDay(e.Date, day, loc) {
			return true
		}
	}
	return false
}

// HourRow is one line of the day view.
type HourRow struct {
	Hour    int
	Entries []diary.Entry
}

// DayGrid is the day view: 24 hour rows.
type DayGrid struct {
	Date time.Time
	Rows [24]HourRow
}

// Day buckets the entries of one day into hour rows.
func Day(entries []diary.Entry, day time.Time, loc *time.Location) DayGrid {
	g := DayGrid{Date: filter.StartOfDay(day, loc)}
	for h := range g.Rows {
		g.Rows[h].Hour = h
	}
	for _, e := range OnDay(entries, day, loc) {
		h := EffectiveHour(e, loc)
		g.Rows[h].Entries = append(g.Rows[h].Entries, e)
	}
	return g
}

// Count returns the number of entries in the grid.
func (g DayGrid) Count() int {
	n := 0
	for _, r := range g.Rows {
		n += len(r.Entries)
	}
	return n
}

// DayColumn is one day of the week view.
type DayColumn struct {
	Date    time.Time
	Entries []diary.Entry
}

// WeekGrid is the week view: seven day columns.
type WeekGrid struct {
	Start   time.Time
	Columns [7]DayColumn
}

// StartOfWeek returns midnight of the first day of t's week.
func StartOfWeek(t time.Time, first time.Weekday, loc *time.Location) time.Time {
	d := filter.StartOfDay(t, loc)
	off := (int(d.Weekday()) - int(first) + 7) % 7
	return d.AddDate(0, 0, -off)
}

// Week groups the entries of day's week into columns. Entries in a column
// are ordered by effective hour, ties by date.
func Week(entries []diary.Entry, day time.Time, first time.Weekday, loc *time.Location) WeekGrid {
	g := WeekGrid{Start: StartOfWeek(day, first, loc)}
	for i := range g.Columns {
		d := g.Start.AddDate(0, 0, i)
		g.Columns[i] = DayColumn{Date: d, Entries: byHour(OnDay(entries, d, loc), loc)}
	}
	return g
}

func byHour(es []diary.Entry, loc *time.Location) []diary.Entry {
	// insertion sort; a day holds a handful of entries
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && less(es[j], es[j-1], loc); j-- {
			es[j], es[j-1] = es[j-1], es[j]
		}
	}
	return es
}

func less(a, b diary.Entry, loc *time.Location) bool {
	ha, hb := EffectiveHour(a, loc), EffectiveHour(b, loc)
	if ha != hb {
		return ha < hb
	}
	return a.Date.Before(b.Date)
}

// MonthCell is one square of the month grid.
type MonthCell struct {
	Date    time.Time
	InMonth bool
	Count   int
}

// MonthGrid is the month view: six weeks of seven days, always covering the month.
type MonthGrid struct {
	Month time.Time
	Cells [6][7]MonthCell
}

// Month lays out the month containing day.
func Month(entries []diary.Entry, day time.Time, first time.Weekday, loc *time.Location) MonthGrid {
	y, m, _ := day.In(loc).Date()
	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	g := MonthGrid{Month: firstOfMonth}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[DayKey(e.Date, loc)]++
	}

	cur := StartOfWeek(firstOfMonth, first, loc)
	for w := 0; w < 6; w++ {
		for d := 0; d < 7; d++ {
			g.Cells[w][d] = MonthCell{
				Date:    cur,
				InMonth: cur.Month() == m,
				Count:   counts[DayKey(cur, loc)],
			}
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return g
}

// DayKey formats t's calendar day in loc as 2006-01-02.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Weekdays returns the column headers starting at first.
func Weekdays(first time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(first) + i) % 7)
	}
	return out
}

// Shift moves the cursor by n units of the view (days, weeks or months).
func Shift(cursor time.Time, v View, n int) time.Time {
	switch v {
	case ViewWeek:
		return cursor.AddDate(0, 0, 7*n)
	case ViewMonth:
		y, m, d := cursor.Date()
		target := time.Date(y, m+time.Month(n), 1, cursor.Hour(), cursor.Minute(), 0, 0, cursor.Location())
		// clamp to the last day so Jan 31 + 1 month lands on Feb 28/29
		last := target.AddDate(0, 1, -1).Day()
		if d > last {
			d = last
		}
		return time.Date(target.Year(), target.Month(), d, cursor.Hour(), cursor.Minute(), 0, 0, cursor.Location())
	default:
		return cursor.AddDate(0, 0, n)
	}
}
