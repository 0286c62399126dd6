// Package filter narrows the entry collection by text, type and date.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/diary"
)

// TypeAll disables the type predicate.
const TypeAll = "all"

// DateMode selects how DateFilter bounds are interpreted.
type DateMode string

const (
	DateNone   DateMode = "none"
	DateSingle DateMode = "single"
	DateRange  DateMode = "range"
)

// DateFilter restricts entries to one calendar day or an inclusive range of days.
type DateFilter struct {
	Mode  DateMode   `json:"type"`
	Start *time.Time `json:"startDate,omitempty"`
	End   *time.Time `json:"endDate,omitempty"`
}

// Spec is the active search. Its JSON form is what the diaryFilters key caches.
type Spec struct {
	Search string     `json:"searchTerm"`
	Type   string     `json:"typeFilter"`
	Date   DateFilter `json:"dateFilter"`
}

// Single returns a filter matching the calendar day of d.
func Single(d time.Time) DateFilter {
	return DateFilter{Mode: DateSingle, Start: &d}
}

// Range returns an inclusive day range; reversed bounds are swapped.
func Range(from, to time.Time) DateFilter {
	if to.Before(from) {
		from, to = to, from
	}
	return DateFilter{Mode: DateRange, Start: &from, End: &to}
}

// IsZero reports whether s lets every entry through.
func (s Spec) IsZero() bool {
	return s.Search == "" && s.typeAll() && s.dateMode() == DateNone
}

func (s Spec) typeAll() bool { return s.Type == "" || s.Type == TypeAll }

func (s Spec) dateMode() DateMode {
	if s.Date.Mode == "" {
		return DateNone
	}
	return s.Date.Mode
}

// Describe renders the date filter the way the filter button labels it.
func (s Spec) Describe() string {
	switch s.dateMode() {
	case DateSingle:
		if s.Date.Start != nil {
			return s.Date.Start.Format("2006.01.02")
		}
	case DateRange:
		if s.Date.Start != nil && s.Date.End != nil {
			return fmt.Sprintf("%s - %s", s.Date.Start.Format("01.02"), s.Date.End.Format("01.02"))
		}
	}
	return "any date"
}

// Apply returns the entries matching every predicate of s, in input order.
// The input slice is never modified.
func Apply(entries []diary.Entry, s Spec, loc *time.Location) []diary.Entry {
	if loc == nil {
		loc = time.Local
	}
	term := strings.ToLower(s.Search)
	out := make([]diary.Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesText(e, term) || !s.matchesType(e) || !s.matchesDate(e, loc) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Match reports whether a single entry passes s.
func Match(e diary.Entry, s Spec, loc *time.Location) bool {
	return len(Apply([]diary.Entry{e}, s, loc)) == 1
}

func matchesText(e diary.Entry, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Content), term)
}

func (s Spec) matchesType(e diary.Entry) bool {
	return s.typeAll() || string(e.Type) == s.Type
}

func (s Spec) matchesDate(e diary.Entry, loc *time.Location) bool {
	d := s.Date
	switch s.dateMode() {
	case DateSingle:
		if d.Start == nil {
			return true
		}
		return SameDay(e.Date, *d.Start, loc)
	case DateRange:
		if d.Start == nil || d.End == nil {
			return true
		}
		from, to := StartOfDay(*d.Start, loc), EndOfDay(*d.End, loc)
		if to.Before(from) {
			from, to = StartOfDay(*d.End, loc), EndOfDay(*d.Start, loc)
		}
		return !e.Date.Before(from) && !e.Date.After(to)
	}
	return true
}

// SameDay compares calendar days in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay is the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SortByDateDesc orders newest first. Equal dates keep their relative order.
func SortByDateDesc(entries []diary.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
