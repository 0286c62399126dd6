// Package diary holds the diary entry model and its invariants.
package diary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
)

// Entry is one diary record.
type Entry struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Content string    `json:"content" yaml:"content"`
	Type    Type      `json:"type" yaml:"type"`
	Date    time.Time `json:"date" yaml:"date"`
	Emotion string    `json:"emotion" yaml:"emotion"`
	// TimeSlot pins the entry to an hour of the day (schedule entries).
	TimeSlot     *int       `json:"timeSlot,omitempty" yaml:"timeSlot,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Period       *PeriodLog `json:"period,omitempty" yaml:"period,omitempty"`
	Tasks        []Task     `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// Slot returns a pointer to h, for filling TimeSlot.
func Slot(h int) *int { return &h }

// Validate checks the invariants every stored entry must satisfy.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return apperr.Validation("ENTRY_ID", "entry id is empty")
	}
	if e.Date.IsZero() {
		return apperr.Validation("ENTRY_DATE", "entry date is missing")
	}
	if !e.Type.Valid() {
		return apperr.Validation("ENTRY_TYPE", fmt.Sprintf("unknown entry type %q", e.Type))
	}
	if e.TimeSlot != nil && (*e.TimeSlot < 0 || *e.TimeSlot > 23) {
		return apperr.Validation("ENTRY_SLOT", fmt.Sprintf("time slot %d is outside 0-23", *e.TimeSlot))
	}
	if e.Period != nil {
		if err := e.Period.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DisplayTitle falls back to the type label when the title is blank.
func (e Entry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return e.Type.Label()
}

// Clone returns a deep copy so callers can edit without aliasing the collection.
func (e Entry) Clone() Entry {
	c := e
	if e.TimeSlot != nil {
		c.TimeSlot = Slot(*e.TimeSlot)
	}
	if e.LastModified != nil {
		lm := *e.LastModified
		c.LastModified = &lm
	}
	if e.Period != nil {
		p := *e.Period
		p.Symptoms = append([]Symptom(nil), e.Period.Symptoms...)
		c.Period = &p
	}
	if e.Tasks != nil {
		c.Tasks = append([]Task(nil), e.Tasks...)
	}
	return c
}

// NewID derives an id from now's millisecond timestamp, bumping it until it
// does not collide with any id in taken.
func NewID(now time.Time, taken func(string) bool) string {
	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if taken == nil || !taken(id) {
			return id
		}
		n++
	}
}

// IDSet builds a lookup usable with NewID.
func IDSet(entries []Entry) func(string) bool {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.ID] = struct{}{}
	}
	return func(id string) bool {
		_, ok := seen[id]
		return ok
	}
}
