package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/utils"
)

func TestParseSlot(t *testing.T) {
	s, err := parseSlot("")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = parseSlot("14:00")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 14, *s)

	s, err = parseSlot(" 0 ")
	require.NoError(t, err)
	assert.Equal(t, 0, *s)

	for _, bad := range []string{"24", "-1", "noon", "14:30"} {
		_, err := parseSlot(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("y\n"), &out, "Delete?"))
	assert.True(t, confirm(strings.NewReader("YES\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader("\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Delete?"))
	assert.Contains(t, out.String(), "Delete? [y/N]")
}

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	entries := []diary.Entry{
		{Type: diary.TypeEmotion, Emotion: "😊", Date: day},
		{Type: diary.TypeEmotion, Emotion: "😢", Date: day},
		{Type: diary.TypeDaily, Emotion: "😊", Date: day},
		{Type: diary.TypeSchedule, Date: day, Tasks: []diary.Task{
			{ID: "a", Text: "milk", Completed: true},
			{ID: "b", Text: "call"},
		}},
	}
	s := summarize(entries)
	assert.Equal(t, 2, s.byType[diary.TypeEmotion])
	assert.Equal(t, 1, s.byType[diary.TypeDaily])
	require.Len(t, s.moods, 2)
	assert.Equal(t, moodCount{"😊", 2}, s.moods[0])
	assert.Equal(t, 2, s.tasks)
	assert.Equal(t, 1, s.done)
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}

// execute runs the root command against a throwaway diskv store.
func execute(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgFile, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandFlow(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	data := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(cfgFile, []byte("storage:\n  backend: diskv\n  data_dir: "+data+"\ntimezone: UTC\n"), 0o600))

	_, err := execute(t, cfgFile, "signup", "--nickname", "Mina", "--gender", "female")
	require.Error(t, err, "signup before consent")

	out, err := execute(t, cfgFile, "consent", "--accept-all")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")

	out, err = execute(t, cfgFile, "signup", "--nickname", "Mina", "--gender", "female")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Mina")

	out, err = execute(t, cfgFile, "write", "daily", "Walked", "along", "the", "river", "--title", "Sunday")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Sunday")

	out, err = execute(t, cfgFile, "list", "--format", "json")
	require.NoError(t, err)
	var list utils.EntryList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "Sunday", list.Entries[0].Title)
	assert.Equal(t, "Walked along the river", list.Entries[0].Content)

	_, err = execute(t, cfgFile, "theme", "custom", "--primary", "#112233")
	assert.Error(t, err, "custom colours need premium")

	_, err = execute(t, cfgFile, "premium", "subscribe")
	require.NoError(t, err)
	out, err = execute(t, cfgFile, "theme", "custom", "--primary", "#112233")
	require.NoError(t, err)
	assert.Contains(t, out, "#112233")

	out, err = execute(t, cfgFile, "delete", list.Entries[0].ID, "--yes")
	require.NoError(t, err)

	out, err = execute(t, cfgFile, "list", "--format", "json")
	require.NoError(t, err)
	list = utils.EntryList{}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Empty(t, list.Entries)
}
