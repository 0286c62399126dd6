package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/notify"
)

// NextAt computes the next occurrence of the reminder time that falls on a
// configured workday and is not a holiday. It returns the zero time when no
// day within a year qualifies.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 21, 0
	if t, err := time.ParseInLocation("15:04", cfg.Reminder.Time, loc); err == nil {
		hour, min = t.Hour(), t.Minute()
	}
	workdays := map[string]bool{}
	for _, d := range cfg.Reminder.Workdays {
		d = strings.TrimSpace(d)
		if len(d) >= 3 {
			workdays[strings.ToLower(d[:3])] = true
		}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Reminder.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}
	ok := func(t time.Time) bool {
		return workdays[strings.ToLower(t.Weekday().String()[:3])] && !holidays[t.Format("2006-01-02")]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for i := 0; i < 366; i++ {
		if ok(cand) {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return time.Time{}
}

// DueSlots returns today's schedule entries whose effective hour is now's hour.
func DueSlots(entries []diary.Entry, now time.Time, loc *time.Location) []diary.Entry {
	var out []diary.Entry
	for _, e := range calendar.AtHour(entries, now, now.In(loc).Hour(), loc) {
		if e.Type == diary.TypeSchedule {
			out = append(out, e)
		}
	}
	return out
}

// WrittenOn counts entries on now's calendar day.
func WrittenOn(entries []diary.Entry, now time.Time, loc *time.Location) int {
	n := 0
	for _, e := range entries {
		if filter.SameDay(e.Date, now, loc) {
			n++
		}
	}
	return n
}

// NextHour is the next top of the hour on the wall clock of loc.
func NextHour(now time.Time, loc *time.Location) time.Time {
	l := now.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour()+1, 0, 0, 0, loc)
}

// Runner fires the daily reminder and the hourly schedule alerts.
type Runner struct {
	Config   config.Config
	Notifier notify.Notifier
	// Entries is called at every firing so it sees fresh data.
	Entries func() []diary.Entry
	Log     *log.Logger
	Now     func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	loc := r.Config.Location()
	for {
		now := r.now()
		nextHour := NextHour(now, loc)
		next := nextHour
		daily := NextAt(now, r.Config)
		if r.Config.Reminder.Enabled && !daily.IsZero() && daily.Before(next) {
			next = daily
		}

		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}

		fired := r.now()
		if r.Config.Reminder.Enabled && !daily.IsZero() && !fired.Before(daily) {
			r.FireDaily(fired)
		}
		if !fired.Before(nextHour) {
			r.FireSlots(fired)
		}
	}
}

// FireDaily sends the diary reminder.
func (r *Runner) FireDaily(now time.Time) {
	title, msg := notify.FormatDailyPrompt(WrittenOn(r.entries(), now, r.Config.Location()))
	r.send(title, msg)
}

// FireSlots sends one notification for schedule entries due this hour, if any.
func (r *Runner) FireSlots(now time.Time) {
	loc := r.Config.Location()
	due := DueSlots(r.entries(), now, loc)
	if len(due) == 0 {
		return
	}
	title, msg := notify.FormatSlot(now.In(loc).Hour(), due)
	r.send(title, msg)
}

func (r *Runner) entries() []diary.Entry {
	if r.Entries == nil {
		return nil
	}
	return r.Entries()
}

func (r *Runner) send(title, msg string) {
	if err := r.Notifier.Notify(title, msg); err != nil && r.Log != nil {
		r.Log.Warn("notification failed", "err", err)
	}
	if r.Log != nil {
		r.Log.Debug("notified", "title", title)
	}
}
