package diary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/apperr"
)

func validEntry() Entry {
	return Entry{
		ID:      "1704448800000",
		Title:   "Trip",
		Content: "Seoul",
		Type:    TypeDaily,
		Date:    time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		Emotion: DefaultEmotion,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
		ok     bool
	}{
		{"valid", func(*Entry) {}, true},
		{"empty id", func(e *Entry) { e.ID = " " }, false},
		{"zero date", func(e *Entry) { e.Date = time.Time{} }, false},
		{"unknown type", func(e *Entry) { e.Type = "dream" }, false},
		{"slot 23", func(e *Entry) { e.TimeSlot = Slot(23) }, true},
		{"slot 24", func(e *Entry) { e.TimeSlot = Slot(24) }, false},
		{"slot -1", func(e *Entry) { e.TimeSlot = Slot(-1) }, false},
		{"bad flow", func(e *Entry) { e.Period = &PeriodLog{Flow: 5} }, false},
		{"good period", func(e *Entry) { e.Period = NewPeriodLog() }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := e.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsValidation(err), "want validation error, got %v", err)
			}
		})
	}
}

func TestJSONShape(t *testing.T) {
	e := validEntry()
	e.TimeSlot = Slot(14)
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(14), raw["timeSlot"])
	assert.NotContains(t, raw, "lastModified")
	assert.NotContains(t, raw, "period")
}

func TestNewIDSkipsCollisions(t *testing.T) {
	now := time.UnixMilli(1000)
	taken := IDSet([]Entry{{ID: "1000"}, {ID: "1001"}})
	assert.Equal(t, "1002", NewID(now, taken))
	assert.Equal(t, "1000", NewID(now, nil))
}

func TestCloneDoesNotAlias(t *testing.T) {
	e := validEntry()
	e.TimeSlot = Slot(9)
	e.Period = NewPeriodLog()
	e.Tasks = []Task{{ID: "a", Text: "run"}}

	c := e.Clone()
	*c.TimeSlot = 10
	c.Period.Flow = 4
	c.Tasks[0].Completed = true

	assert.Equal(t, 9, *e.TimeSlot)
	assert.Equal(t, DefaultFlow, e.Period.Flow)
	assert.False(t, e.Tasks[0].Completed)
}

func TestDisplayTitle(t *testing.T) {
	e := validEntry()
	e.Title = ""
	assert.Equal(t, TypeDaily.Label(), e.DisplayTitle())
}
