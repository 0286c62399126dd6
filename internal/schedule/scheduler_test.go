package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/diary"
)

func utcConfig() config.Config {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Reminder.Enabled = true
	cfg.Reminder.Time = "21:00"
	cfg.Reminder.Workdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	return cfg
}

func TestNextAt(t *testing.T) {
	cfg := utcConfig()
	fri := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 5, 21, 0, 0, 0, time.UTC), NextAt(fri, cfg))

	// after the reminder on Friday, skip the weekend
	late := time.Date(2024, 1, 5, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 8, 21, 0, 0, 0, time.UTC), NextAt(late, cfg))

	cfg.Reminder.Holidays = []string{"2024-01-08"}
	assert.Equal(t, time.Date(2024, 1, 9, 21, 0, 0, 0, time.UTC), NextAt(late, cfg))
}

func TestNextAtNoWorkdays(t *testing.T) {
	cfg := utcConfig()
	cfg.Reminder.Workdays = nil
	assert.True(t, NextAt(time.Now(), cfg).IsZero())
}

func TestDueSlots(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	entries := []diary.Entry{
		{ID: "a", Type: diary.TypeSchedule, Date: day, TimeSlot: diary.Slot(14)},
		{ID: "b", Type: diary.TypeDaily, Date: day.Add(14 * time.Hour)},
		{ID: "c", Type: diary.TypeSchedule, Date: day.AddDate(0, 0, 1), TimeSlot: diary.Slot(14)},
	}
	due := DueSlots(entries, day.Add(14*time.Hour+20*time.Minute), time.UTC)
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].ID)
	assert.Equal(t, 2, WrittenOn(entries, day, time.UTC))
}

type recorder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recorder) Notify(title, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, title)
	return r.err
}

func TestFire(t *testing.T) {
	cfg := utcConfig()
	now := time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC)
	rec := &recorder{err: errors.New("no dbus")}
	r := &Runner{
		Config:   cfg,
		Notifier: rec,
		Entries: func() []diary.Entry {
			return []diary.Entry{{Title: "Gym", Type: diary.TypeSchedule, Date: now, TimeSlot: diary.Slot(14)}}
		},
	}
	r.FireSlots(now)
	r.FireSlots(now.Add(time.Hour))
	r.FireDaily(now)
	assert.Equal(t, []string{"📅 14:00 schedule", "Daily diary reminder"}, rec.calls)
}

func TestNextHourUsesWallClock(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 1, 5, 10, 10, 0, 0, ist)
	assert.Equal(t, time.Date(2024, 1, 5, 11, 0, 0, 0, ist), NextHour(now, ist))

	acst := time.FixedZone("ACST", 9*3600+1800)
	late := time.Date(2024, 1, 5, 23, 45, 0, 0, acst)
	assert.Equal(t, time.Date(2024, 1, 6, 0, 0, 0, 0, acst), NextHour(late, acst))

	assert.Equal(t, time.Date(2024, 1, 5, 11, 0, 0, 0, time.UTC),
		NextHour(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), time.UTC))
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{Config: utcConfig(), Notifier: &recorder{}}
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
