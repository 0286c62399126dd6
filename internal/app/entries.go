package app

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/store"
)

// Draft is what the write screen collects before an entry exists.
type Draft struct {
	Type     diary.Type
	Title    string
	Content  string
	Emotion  string
	Date     *time.Time
	TimeSlot *int
	Period   *diary.PeriodLog
	Tasks    []diary.Task
}

// Entries returns a copy of the collection, newest first.
func (a *App) Entries() []diary.Entry {
	out := make([]diary.Entry, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Clone()
	}
	return out
}

func (a *App) Entry(id string) (diary.Entry, bool) {
	for _, e := range a.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return diary.Entry{}, false
}

// Filtered applies s to the collection, keeping newest-first order.
func (a *App) Filtered(s filter.Spec) []diary.Entry {
	return filter.Apply(a.Entries(), s, a.loc)
}

// Titles returns distinct non-empty titles, newest first, for autocompletion.
func (a *App) Titles() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range a.entries {
		t := strings.TrimSpace(e.Title)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Create validates and stores a new entry. A blank title falls back to the
// pending quick title; missing date and slot fall back to the selected-date
// and selected-slot hints, then to now.
func (a *App) Create(ctx context.Context, d Draft) (diary.Entry, error) {
	if !d.Type.Valid() {
		return diary.Entry{}, apperr.Validation("ENTRY_TYPE", "choose a diary type")
	}
	now := a.Now()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		var pending string
		if _, err := store.Take(ctx, a.kv, store.KeyPendingTitle, &pending); err != nil {
			a.log.Warn("pending title unreadable", "err", err)
		}
		title = pending
	} else {
		_ = a.kv.Delete(ctx, store.KeyPendingTitle)
	}

	date := now
	if d.Date != nil {
		date = *d.Date
	} else if sel, ok := a.TakeSelectedDate(ctx); ok {
		date = mergeDay(sel, now, a.loc)
	}

	slot := d.TimeSlot
	if slot == nil {
		var h int
		if ok, _ := store.Take(ctx, a.kv, store.KeySelectedTimeSlot, &h); ok {
			slot = diary.Slot(h)
		}
	}

	emotion := d.Emotion
	if emotion == "" {
		emotion = diary.DefaultEmotion
	}

	e := diary.Entry{
		ID:       diary.NewID(now, diary.IDSet(a.entries)),
		Title:    title,
		Content:  d.Content,
		Type:     d.Type,
		Date:     date,
		Emotion:  emotion,
		TimeSlot: slot,
		Period:   d.Period,
		Tasks:    d.Tasks,
	}
	if e.Type == diary.TypePeriod && e.Period == nil {
		e.Period = diary.NewPeriodLog()
	}
	if err := e.Validate(); err != nil {
		return diary.Entry{}, err
	}
	if err := a.repo.Upsert(ctx, e); err != nil {
		a.log.Error("create entry", "id", e.ID, "err", err)
		return diary.Entry{}, err
	}

	a.entries = append(a.entries, e)
	filter.SortByDateDesc(a.entries)
	_ = a.kv.Delete(ctx, store.KeyCurrentTitle)
	if slot != nil {
		// bring the home screen back to the day view at the new entry
		_ = store.SetJSON(ctx, a.kv, store.KeyScrollToTime, *slot)
		_ = store.SetJSON(ctx, a.kv, store.KeySwitchToDay, true)
	}
	a.log.Debug("entry saved", "id", e.ID, "type", e.Type)
	return e.Clone(), nil
}

// mergeDay keeps the calendar day of day and the clock time of clock.
func mergeDay(day, clock time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	c := clock.In(loc)
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, loc)
}

// Update replaces an existing entry and stamps LastModified. On failure the
// collection is left as it was.
func (a *App) Update(ctx context.Context, e diary.Entry) (diary.Entry, error) {
	idx := a.index(e.ID)
	if idx < 0 {
		return diary.Entry{}, apperr.ErrNotFound
	}
	e = e.Clone()
	now := a.Now()
	e.LastModified = &now
	if err := e.Validate(); err != nil {
		return diary.Entry{}, err
	}
	if err := a.repo.Upsert(ctx, e); err != nil {
		a.log.Error("update entry", "id", e.ID, "err", err)
		return diary.Entry{}, err
	}
	a.entries[idx] = e
	filter.SortByDateDesc(a.entries)
	a.log.Debug("entry updated", "id", e.ID)
	return e.Clone(), nil
}

// Delete removes an entry. On failure the collection is left as it was.
func (a *App) Delete(ctx context.Context, id string) error {
	idx := a.index(id)
	if idx < 0 {
		return apperr.ErrNotFound
	}
	if err := a.repo.Delete(ctx, id); err != nil {
		a.log.Error("delete entry", "id", id, "err", err)
		return err
	}
	a.entries = append(a.entries[:idx:idx], a.entries[idx+1:]...)
	a.log.Debug("entry deleted", "id", id)
	return nil
}

func (a *App) index(id string) int {
	for i, e := range a.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SaveFilters caches the last used search on the my-diaries screen.
func (a *App) SaveFilters(ctx context.Context, s filter.Spec) error {
	return store.SetJSON(ctx, a.kv, store.KeyFilters, s)
}

// LoadFilters returns the cached search, or the pass-through spec.
func (a *App) LoadFilters(ctx context.Context) (filter.Spec, error) {
	s := filter.Spec{Type: filter.TypeAll, Date: filter.DateFilter{Mode: filter.DateNone}}
	if _, err := store.GetJSON(ctx, a.kv, store.KeyFilters, &s); err != nil {
		return filter.Spec{Type: filter.TypeAll, Date: filter.DateFilter{Mode: filter.DateNone}}, err
	}
	return s, nil
}

func (a *App) ResetFilters(ctx context.Context) error {
	return a.kv.Delete(ctx, store.KeyFilters)
}
