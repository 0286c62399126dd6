// Package app is the application state shared by the CLI and the TUI: the
// signed-up user, the theme, the entry collection and the navigation hints,
// all persisted through an injected store.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/logging"
	"github.com/ramanasai/diary/internal/profile"
	"github.com/ramanasai/diary/internal/store"
	"github.com/ramanasai/diary/internal/theme"
)

type App struct {
	repo store.Repository
	kv   store.KV
	log  *log.Logger
	now  func() time.Time
	loc  *time.Location

	entries []diary.Entry // newest first
	user    *profile.User
	theme   theme.State
}

type Option func(*App)

func WithLogger(l *log.Logger) Option { return func(a *App) { a.log = l } }

func WithClock(now func() time.Time) Option { return func(a *App) { a.now = now } }

func WithLocation(loc *time.Location) Option { return func(a *App) { a.loc = loc } }

func New(repo store.Repository, kv store.KV, opts ...Option) *App {
	a := &App{
		repo:  repo,
		kv:    kv,
		log:   logging.Discard(),
		now:   time.Now,
		loc:   time.Local,
		theme: theme.DefaultState(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Load reads the profile, theme and entries.
func (a *App) Load(ctx context.Context) error {
	var u profile.User
	ok, err := store.GetJSON(ctx, a.kv, store.KeyUser, &u)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	a.user = nil
	if ok {
		a.user = &u
	}

	st := theme.DefaultState()
	if _, err := store.GetJSON(ctx, a.kv, store.KeyTheme, &st); err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	a.theme = st

	return a.Reload(ctx)
}

// Reload re-reads the entry collection, e.g. after another process wrote it.
func (a *App) Reload(ctx context.Context) error {
	entries, err := a.repo.All(ctx)
	if err != nil {
		return err
	}
	filter.SortByDateDesc(entries)
	a.entries = entries
	a.log.Debug("entries loaded", "count", len(entries))
	return nil
}

func (a *App) Location() *time.Location { return a.loc }

func (a *App) Now() time.Time { return a.now().In(a.loc) }
