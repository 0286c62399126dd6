package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/store"
)

var testNow = time.Date(2024, 1, 5, 14, 20, 0, 0, time.UTC)

type brokenRepo struct {
	store.Repository
	broken bool
}

func (r *brokenRepo) Upsert(ctx context.Context, e diary.Entry) error {
	if r.broken {
		return apperr.ErrSaveFailed
	}
	return r.Repository.Upsert(ctx, e)
}

type fixture struct {
	app  *app.App
	repo *brokenRepo
}

func newFixture(t *testing.T, signedUp bool) fixture {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := &brokenRepo{Repository: store.NewKVRepository(kv)}
	a := app.New(repo, kv, app.WithClock(func() time.Time { return testNow }), app.WithLocation(time.UTC))
	require.NoError(t, a.Load(ctx))
	if signedUp {
		require.NoError(t, a.AcceptConsent(ctx, consent.Record{AcceptedAt: testNow}))
		require.NoError(t, a.SkipSignup(ctx))
	}
	return fixture{app: a, repo: repo}
}

func (f fixture) model() Model {
	return New(context.Background(), Options{App: f.app, Config: config.Default()})
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, key(k))
	}
	return m
}

func TestFreshStartShowsConsent(t *testing.T) {
	m := newFixture(t, false).model()
	assert.Equal(t, screenConsent, m.screen)
}

func TestConsentBlocksUntilRequiredChecked(t *testing.T) {
	f := newFixture(t, false)
	m := press(t, f.model(), "c")

	top, ok := m.modals.Top()
	require.True(t, ok)
	assert.Equal(t, ModalAlert, top.Kind)
	assert.Equal(t, screenConsent, m.screen)

	m = press(t, m, "enter") // dismiss
	m = press(t, m, " ", "c") // agree to all, continue
	assert.Equal(t, screenAccount, m.screen)

	_, accepted, err := f.app.ConsentAccepted(context.Background())
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestConsentDocumentConfirmChecksItem(t *testing.T) {
	m := newFixture(t, false).model()
	m = press(t, m, "down", "enter")
	top, ok := m.modals.Top()
	require.True(t, ok)
	assert.Equal(t, ModalDocument, top.Kind)

	m = press(t, m, "enter")
	assert.True(t, m.modals.Empty())
	assert.True(t, m.gate.Checked(consent.Terms))
}

func TestSignupRequiresNickname(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.app.AcceptConsent(context.Background(), consent.Record{AcceptedAt: testNow}))
	m := f.model()
	require.Equal(t, screenSignup, m.screen)

	m = press(t, m, "ctrl+s")
	top, ok := m.modals.Top()
	require.True(t, ok)
	assert.Equal(t, ModalAlert, top.Kind)

	m = press(t, m, "enter", "J", "i", "n", "tab", "tab", "f", "ctrl+s")
	assert.Equal(t, screenHome, m.screen)
	u, ok := f.app.User()
	require.True(t, ok)
	assert.Equal(t, "Jin", u.Nickname)
}

func TestWriteFromDayViewUsesSlot(t *testing.T) {
	f := newFixture(t, true)
	m := f.model()
	require.Equal(t, screenHome, m.screen)

	m = press(t, m, "n")
	top, ok := m.modals.Top()
	require.True(t, ok)
	require.Equal(t, ModalTypeChooser, top.Kind)

	m = press(t, m, "enter", "T", "r", "i", "p", "ctrl+s")
	assert.True(t, m.busy)
	assert.Empty(t, f.app.Entries(), "nothing is written before the save delay")

	m = send(t, m, commitMsg{op: opSave})
	require.Len(t, f.app.Entries(), 1)
	e := f.app.Entries()[0]
	assert.Equal(t, "Trip", e.Title)
	require.NotNil(t, e.TimeSlot)
	assert.Equal(t, 14, *e.TimeSlot)
	assert.Equal(t, screenHome, m.screen)
	assert.Equal(t, 14, m.hour)
	assert.Equal(t, "Diary saved", m.toast)
}

func TestSaveFailureIsToastAndKeepsForm(t *testing.T) {
	f := newFixture(t, true)
	f.repo.broken = true
	m := press(t, f.model(), "n", "enter", "x", "ctrl+s")
	m = send(t, m, commitMsg{op: opSave})

	assert.Empty(t, f.app.Entries())
	assert.True(t, m.modals.Empty(), "storage failures do not block")
	assert.True(t, m.toastErr)
	assert.Equal(t, screenWrite, m.screen)
}

func TestDeleteAfterConfirm(t *testing.T) {
	f := newFixture(t, true)
	e, err := f.app.Create(context.Background(), app.Draft{Type: diary.TypeDaily, Title: "Old"})
	require.NoError(t, err)

	m := f.model()
	m.openDetail(e.ID)
	m = press(t, m, "d")
	top, _ := m.modals.Top()
	require.Equal(t, ModalConfirm, top.Kind)

	m = press(t, m, "y")
	assert.True(t, m.busy)
	m = send(t, m, commitMsg{op: opDelete, target: e.ID})

	assert.Empty(t, f.app.Entries())
	assert.True(t, m.modals.Empty())
}

func TestEditFromDetail(t *testing.T) {
	f := newFixture(t, true)
	e, err := f.app.Create(context.Background(), app.Draft{Type: diary.TypeDaily, Title: "Old"})
	require.NoError(t, err)

	m := f.model()
	m.openDetail(e.ID)
	m = press(t, m, "e")
	require.Equal(t, screenWrite, m.screen)
	assert.Equal(t, "Old", m.w.title.Value())

	m = press(t, m, "!", "ctrl+s")
	m = send(t, m, commitMsg{op: opSave})

	got, ok := f.app.Entry(e.ID)
	require.True(t, ok)
	assert.Equal(t, "Old!", got.Title)
	assert.NotNil(t, got.LastModified)
	assert.Equal(t, screenHome, m.screen)
}

func TestCustomThemeNeedsPremium(t *testing.T) {
	f := newFixture(t, true)
	m := f.model()
	m.openTheme()
	top, _ := m.modals.Top()
	top.Cursor = len(themeRows()) - 1

	m = press(t, m, "enter")
	top, _ = m.modals.Top()
	assert.Equal(t, ModalPremium, top.Kind)

	m = press(t, m, "s")
	assert.True(t, f.app.Premium())
	top, _ = m.modals.Top()
	assert.Equal(t, ModalTheme, top.Kind, "focus returns to the theme chooser")
}

func TestListFilterIsCached(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.app.Create(ctx, app.Draft{Type: diary.TypeDaily, Title: "Trip"})
	require.NoError(t, err)
	_, err = f.app.Create(ctx, app.Draft{Type: diary.TypeGratitude, Title: "Thanks"})
	require.NoError(t, err)

	m := press(t, f.model(), "L")
	require.Equal(t, screenList, m.screen)
	assert.Len(t, m.l.results, 2)

	m = press(t, m, "tab", "t", "r", "i")
	assert.Len(t, m.l.results, 1)

	spec, err := f.app.LoadFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tri", spec.Search)

	m = press(t, m, "esc", "L")
	assert.Equal(t, "tri", m.l.search.Value())
}
