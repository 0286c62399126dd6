package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
)

func entry(id string, day int) diary.Entry {
	return diary.Entry{
		ID:      id,
		Title:   "title " + id,
		Content: "content",
		Type:    diary.TypeDaily,
		Date:    time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC),
		Emotion: diary.DefaultEmotion,
	}
}

// kvs runs a test against every KV implementation.
func kvs(t *testing.T) map[string]KV {
	disk, err := OpenDiskKV(t.TempDir())
	require.NoError(t, err)
	return map[string]KV{"memory": NewMemory(), "diskv": disk}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvs(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, KeyUser)
			assert.ErrorIs(t, err, ErrNoKey)

			require.NoError(t, kv.Set(ctx, KeyUser, []byte(`{"nickname":"mina"}`)))
			v, err := kv.Get(ctx, KeyUser)
			require.NoError(t, err)
			assert.JSONEq(t, `{"nickname":"mina"}`, string(v))

			require.NoError(t, kv.Delete(ctx, KeyUser))
			require.NoError(t, kv.Delete(ctx, KeyUser))
			_, err = kv.Get(ctx, KeyUser)
			assert.ErrorIs(t, err, ErrNoKey)
		})
	}
}

func TestTakeConsumesOnce(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, SetJSON(ctx, kv, KeyScrollToTime, 14))

	var h int
	ok, err := Take(ctx, kv, KeyScrollToTime, &h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 14, h)

	ok, err = Take(ctx, kv, KeyScrollToTime, &h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetJSONDecodeError(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, KeyFilters, []byte("{not json")))
	var v map[string]any
	_, err := GetJSON(ctx, kv, KeyFilters, &v)
	assert.Error(t, err)
}

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvs(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewKVRepository(kv)

			all, err := repo.All(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			require.NoError(t, repo.Upsert(ctx, entry("1", 5)))
			require.NoError(t, repo.Upsert(ctx, entry("2", 6)))

			edited := entry("1", 5)
			edited.Title = "edited"
			require.NoError(t, repo.Upsert(ctx, edited))

			all, err = repo.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "edited", all[0].Title)

			got, err := repo.Get(ctx, "2")
			require.NoError(t, err)
			assert.Equal(t, "title 2", got.Title)

			require.NoError(t, repo.Delete(ctx, "1"))
			_, err = repo.Get(ctx, "1")
			assert.True(t, errors.Is(err, apperr.ErrNotFound))
			assert.True(t, errors.Is(repo.Delete(ctx, "1"), apperr.ErrNotFound))

			// the whole collection lives under one key
			raw, err := kv.Get(ctx, KeyEntries)
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"id":"2"`)
		})
	}
}

func TestKVRepositoryRejectsInvalid(t *testing.T) {
	repo := NewKVRepository(NewMemory())
	bad := entry("1", 5)
	bad.TimeSlot = diary.Slot(30)
	err := repo.Upsert(context.Background(), bad)
	assert.True(t, apperr.IsValidation(err))
}

type failingKV struct{ *Memory }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestKVRepositoryWriteFailureIsStorageError(t *testing.T) {
	repo := NewKVRepository(failingKV{NewMemory()})
	err := repo.Upsert(context.Background(), entry("1", 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSaveFailed))
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
}

func TestDiskBackend(t *testing.T) {
	b, err := OpenDiskBackend(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Repository().Upsert(context.Background(), entry("1", 5)))
	_, err = b.KV().Get(context.Background(), KeyEntries)
	assert.NoError(t, err)
}

func TestKeyForPath(t *testing.T) {
	dir := "/data"
	k, ok := keyForPath(dir, "/data/diaryEntries")
	assert.True(t, ok)
	assert.Equal(t, KeyEntries, k)

	_, ok = keyForPath(dir, "/data/.tmp/diskv-123")
	assert.False(t, ok)
	_, ok = keyForPath(dir, "/data/diary.log")
	assert.False(t, ok)

	k, ok = keyForPath(dir, "/data/diary.db-wal")
	assert.True(t, ok)
	assert.Empty(t, k)
}

func TestWatchReportsWrittenKey(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenDiskKV(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, KeyTheme, []byte(`{}`)))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-ch:
			if c.Key == KeyTheme {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change")
		}
	}
}

func TestDiskBackendSeesWritesFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tui, err := OpenDiskBackend(dir)
	require.NoError(t, err)
	cli, err := OpenDiskBackend(dir)
	require.NoError(t, err)

	require.NoError(t, tui.Repository().Upsert(ctx, entry("1", 5)))
	_, err = tui.Repository().All(ctx)
	require.NoError(t, err)

	require.NoError(t, cli.Repository().Upsert(ctx, entry("2", 6)))

	got, err := tui.Repository().All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, tui.Repository().Upsert(ctx, entry("3", 7)))
	got, err = cli.Repository().All(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids)
}
