package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	agoPattern    = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks|m|month|months|y|year|years)\s+ago$`)
	dateLayouts   = []string{"2006-01-02", "2006/01/02", "2006.01.02", "01.02", "Jan 2, 2006", "2 Jan 2006", "January 2, 2006", "2006-01-02 15:04", time.RFC3339}
	weekdayByName = map[string]time.Weekday{}
)

func init() {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		weekdayByName[name] = d
		weekdayByName[name[:3]] = d
	}
}

// ParseFlexibleDate understands "today", "yesterday", "tomorrow", "3 days ago",
// "last monday", ISO dates and a few human layouts. Results without a time of
// day are midnight in loc. "01.02" is month.day of now's year.
func ParseFlexibleDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "now":
		return now, nil
	}

	if m := agoPattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'd':
			return today.AddDate(0, 0, -n), nil
		case 'w':
			return today.AddDate(0, 0, -7*n), nil
		case 'm':
			return today.AddDate(0, -n, 0), nil
		case 'y':
			return today.AddDate(-n, 0, 0), nil
		}
	}

	if rest, ok := strings.CutPrefix(input, "last "); ok {
		if wd, ok := weekdayByName[rest]; ok {
			back := (int(now.Weekday()) - int(wd) + 7) % 7
			if back == 0 {
				back = 7
			}
			return today.AddDate(0, 0, -back), nil
		}
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, input, loc)
		if err != nil {
			// month names are parsed case-sensitively
			t, err = time.ParseInLocation(layout, titleWords(input), loc)
		}
		if err != nil {
			continue
		}
		if layout == "01.02" {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// GetDateRange returns the first and last day (both midnight, inclusive) of a preset.
func GetDateRange(preset string, now time.Time, first time.Weekday, loc *time.Location) (time.Time, time.Time, error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(preset) {
	case "today":
		return today, today, nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case "week", "this-week":
		off := (int(today.Weekday()) - int(first) + 7) % 7
		start := today.AddDate(0, 0, -off)
		return start, start.AddDate(0, 0, 6), nil
	case "month", "this-month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, -1), nil
	case "year", "this-year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, -1), nil
	case "last7days", "last-7-days":
		return today.AddDate(0, 0, -6), today, nil
	case "last30days", "last-30-days":
		return today.AddDate(0, 0, -29), today, nil
	case "last90days", "last-90-days":
		return today.AddDate(0, 0, -89), today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date preset: %s", preset)
	}
}
