package utils

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ramanasai/diary/internal/diary"
)

func testRenderer(f OutputFormat) *Renderer {
	cfg := DefaultRenderConfig()
	cfg.Format = f
	cfg.Color = false
	cfg.Width = 80
	cfg.Location = time.UTC
	cfg.Now = func() time.Time { return time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC) }
	return NewRenderer(cfg)
}

func testList() *EntryList {
	lm := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	entries := []diary.Entry{
		{ID: "2", Title: "Plan", Content: "gym, then \"groceries\"", Type: diary.TypeSchedule,
			Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Emotion: "🤔", TimeSlot: diary.Slot(14),
			Tasks: []diary.Task{{ID: "a", Text: "gym", Completed: true}, {ID: "b", Text: "groceries"}}},
		{ID: "1", Title: "Trip", Content: "Seoul", Type: diary.TypeDaily,
			Date: time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC), Emotion: "😊", LastModified: &lm},
	}
	return &EntryList{Entries: entries, Total: len(entries), Page: NewPage(len(entries), 10, 1)}
}

func TestRenderDefault(t *testing.T) {
	out, err := testRenderer(FormatDefault).RenderEntryList(testList())
	require.NoError(t, err)
	assert.Contains(t, out, "My Diaries")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "@14:00")
	assert.Contains(t, out, "1/2 tasks done")
	assert.Contains(t, out, "edited 3 hours ago")
}

func TestRenderEmpty(t *testing.T) {
	out, err := testRenderer(FormatDefault).RenderEntryList(&EntryList{})
	require.NoError(t, err)
	assert.Contains(t, out, "No diaries yet")
}

func TestRenderJSON(t *testing.T) {
	out, err := testRenderer(FormatJSON).RenderEntryList(testList())
	require.NoError(t, err)
	var back struct {
		Entries []diary.Entry `json:"entries"`
		Total   int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, 2, back.Total)
	assert.Equal(t, 14, *back.Entries[0].TimeSlot)
}

func TestRenderYAML(t *testing.T) {
	out, err := testRenderer(FormatYAML).RenderEntryList(testList())
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, 2, back["total"])
	assert.Contains(t, out, "timeSlot: 14")
}

func TestRenderCSVQuotes(t *testing.T) {
	out, err := testRenderer(FormatCSV).RenderEntryList(testList())
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, `gym, then "groceries"`, rows[1][4])
	assert.Equal(t, "14", rows[1][6])
}

func TestRenderTableAndQuiet(t *testing.T) {
	out, err := testRenderer(FormatTable).RenderEntryList(testList())
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Trip")

	out, err = testRenderer(FormatQuiet).RenderEntryList(testList())
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestRenderEntryFull(t *testing.T) {
	e := testList().Entries[0]
	out := testRenderer(FormatDefault).RenderEntry(e, true)
	assert.Contains(t, out, "[x] gym")
	assert.Contains(t, out, "[ ] groceries")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo", 5))
	assert.Equal(t, "hél…", Truncate("héllo", 4))
}
