package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/profile"
	"github.com/ramanasai/diary/internal/store"
	"github.com/ramanasai/diary/internal/theme"
)

var fixedNow = time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)

// flakyRepo wraps a repository and fails writes on demand.
type flakyRepo struct {
	store.Repository
	fail bool
}

func (r *flakyRepo) Upsert(ctx context.Context, e diary.Entry) error {
	if r.fail {
		return apperr.ErrSaveFailed
	}
	return r.Repository.Upsert(ctx, e)
}

func (r *flakyRepo) Delete(ctx context.Context, id string) error {
	if r.fail {
		return apperr.ErrDeleteFailed
	}
	return r.Repository.Delete(ctx, id)
}

func newTestApp(t *testing.T) (*App, *flakyRepo, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	repo := &flakyRepo{Repository: store.NewKVRepository(kv)}
	a := New(repo, kv, WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))
	require.NoError(t, a.Load(context.Background()))
	return a, repo, kv
}

func TestCreateAssignsIDAndDate(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	e, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "Trip", Content: "Seoul"})
	require.NoError(t, err)
	assert.Equal(t, "1704450600000", e.ID)
	assert.Equal(t, fixedNow, e.Date)
	assert.Equal(t, diary.DefaultEmotion, e.Emotion)

	e2, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "Again"})
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Len(t, a.Entries(), 2)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	a, _, _ := newTestApp(t)
	_, err := a.Create(context.Background(), Draft{Type: "poem"})
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, a.Entries())
}

func TestEntriesSortedNewestFirst(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	older := fixedNow.AddDate(0, 0, -3)
	newer := fixedNow.AddDate(0, 0, 2)
	_, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "old", Date: &older})
	require.NoError(t, err)
	_, err = a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "new", Date: &newer})
	require.NoError(t, err)
	_, err = a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "mid"})
	require.NoError(t, err)

	var titles []string
	for _, e := range a.Entries() {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, titles)
}

func TestQuickTitleBridge(t *testing.T) {
	a, _, kv := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SetQuickTitle(ctx, "  Rainy day "))
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, a.BeginWrite(ctx, &day, diary.Slot(14)))
	assert.Equal(t, "Rainy day", a.PendingTitle(ctx))

	e, err := a.Create(ctx, Draft{Type: diary.TypeSchedule})
	require.NoError(t, err)
	assert.Equal(t, "Rainy day", e.Title)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), e.Date)
	require.NotNil(t, e.TimeSlot)
	assert.Equal(t, 14, *e.TimeSlot)

	// hints are consumed once
	for _, k := range []string{store.KeyPendingTitle, store.KeySelectedDate, store.KeySelectedTimeSlot, store.KeyCurrentTitle} {
		_, err := kv.Get(ctx, k)
		assert.ErrorIs(t, err, store.ErrNoKey, k)
	}

	h, ok := a.TakeScrollTarget(ctx)
	assert.True(t, ok)
	assert.Equal(t, 14, h)
	_, ok = a.TakeScrollTarget(ctx)
	assert.False(t, ok)
}

func TestUpdateStampsLastModified(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	e, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "x"})
	require.NoError(t, err)

	e.Content = "edited"
	got, err := a.Update(ctx, e)
	require.NoError(t, err)
	require.NotNil(t, got.LastModified)
	assert.Equal(t, fixedNow, *got.LastModified)

	stored, ok := a.Entry(e.ID)
	require.True(t, ok)
	assert.Equal(t, "edited", stored.Content)
}

func TestFailedWritesLeaveCollectionUnchanged(t *testing.T) {
	a, repo, _ := newTestApp(t)
	ctx := context.Background()
	e, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "keep", Content: "original"})
	require.NoError(t, err)
	before := a.Entries()

	repo.fail = true

	_, err = a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "lost"})
	assert.True(t, errors.Is(err, apperr.ErrSaveFailed))

	e.Content = "changed"
	_, err = a.Update(ctx, e)
	assert.True(t, errors.Is(err, apperr.ErrSaveFailed))
	assert.False(t, apperr.IsValidation(err))

	err = a.Delete(ctx, e.ID)
	assert.True(t, errors.Is(err, apperr.ErrDeleteFailed))

	assert.Equal(t, before, a.Entries())
}

func TestDelete(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	e, err := a.Create(ctx, Draft{Type: diary.TypeDaily})
	require.NoError(t, err)

	require.NoError(t, a.Delete(ctx, e.ID))
	assert.Empty(t, a.Entries())
	assert.True(t, errors.Is(a.Delete(ctx, e.ID), apperr.ErrNotFound))

	// persisted, not just in memory
	require.NoError(t, a.Reload(ctx))
	assert.Empty(t, a.Entries())
}

func TestFilteredAndFilterCache(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	_, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: "Trip", Content: "Seoul"})
	require.NoError(t, err)
	_, err = a.Create(ctx, Draft{Type: diary.TypeGratitude, Title: "Thanks"})
	require.NoError(t, err)

	s := filter.Spec{Search: "seoul", Type: filter.TypeAll}
	assert.Len(t, a.Filtered(s), 1)

	require.NoError(t, a.SaveFilters(ctx, s))
	got, err := a.LoadFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "seoul", got.Search)

	require.NoError(t, a.ResetFilters(ctx))
	got, err = a.LoadFilters(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSignupRequiresConsent(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	u := profile.User{Nickname: "mina", Gender: profile.Female}

	assert.True(t, errors.Is(a.Signup(ctx, u), apperr.ErrConsentRequired))

	g := consent.NewGate()
	g.SetAll(true)
	rec, err := g.Continue(fixedNow)
	require.NoError(t, err)
	require.NoError(t, a.AcceptConsent(ctx, rec))

	assert.True(t, errors.Is(a.Signup(ctx, profile.User{Gender: profile.Female}), apperr.ErrNicknameRequired))
	require.NoError(t, a.Signup(ctx, u))

	got, ok := a.User()
	require.True(t, ok)
	assert.Equal(t, "mina", got.Nickname)
	assert.Equal(t, fixedNow, got.JoinedAt)
	assert.Contains(t, a.Types(), diary.TypePeriod)
}

func TestSkipAndLogout(t *testing.T) {
	a, _, kv := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.SkipSignup(ctx))
	u, ok := a.User()
	require.True(t, ok)
	assert.Equal(t, profile.Female, u.Gender)

	// survives a reload
	b := New(store.NewKVRepository(kv), kv)
	require.NoError(t, b.Load(ctx))
	_, ok = b.User()
	assert.True(t, ok)

	require.NoError(t, a.Logout(ctx))
	_, ok = a.User()
	assert.False(t, ok)
	assert.NotContains(t, a.Types(), diary.TypePeriod)
}

func TestThemes(t *testing.T) {
	a, _, kv := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SetTheme(ctx, "green"))
	assert.Equal(t, "green", a.Theme().Current)
	assert.True(t, apperr.IsValidation(a.SetTheme(ctx, "neon")))

	custom := theme.DefaultPalette
	custom.Primary = "#000000"
	assert.True(t, errors.Is(a.SetCustomColors(ctx, custom), ErrPremiumRequired))

	require.NoError(t, a.SkipSignup(ctx))
	require.NoError(t, a.Subscribe(ctx))
	require.NoError(t, a.SetCustomColors(ctx, custom))
	assert.Equal(t, theme.Custom, a.Theme().Current)

	b := New(store.NewKVRepository(kv), kv)
	require.NoError(t, b.Load(ctx))
	assert.Equal(t, "#000000", b.Theme().Colors.Primary)

	require.NoError(t, a.ResetTheme(ctx))
	assert.Equal(t, theme.DefaultState(), a.Theme())
}

func TestTitles(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	for _, title := range []string{"Run", "Run", "", "Walk"} {
		_, err := a.Create(ctx, Draft{Type: diary.TypeDaily, Title: title})
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []string{"Run", "Walk"}, a.Titles())
}
