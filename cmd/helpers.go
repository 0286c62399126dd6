package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/db"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/encryption"
	"github.com/ramanasai/diary/internal/store"
	"github.com/ramanasai/diary/internal/utils"
)

// session is an opened backend plus the loaded application state.
type session struct {
	app     *app.App
	backend store.Backend
}

func (s *session) Close() error { return s.backend.Close() }

// openBackend opens the storage selected in the config. The sqlite backend
// seals titles and contents when a passphrase is present.
func openBackend(c config.Config) (store.Backend, error) {
	dir := c.Storage.DataDir
	switch c.Storage.Backend {
	case config.BackendDiskv:
		b, err := store.OpenDiskBackend(dir)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		var sealer db.Sealer
		if pass := c.Passphrase(); pass != "" {
			s, err := encryption.New(pass, dir)
			if err != nil {
				return nil, err
			}
			sealer = s
		}
		b, err := db.Open(dir, sealer)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func openSession(ctx context.Context) (*session, error) {
	b, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	a := app.New(b.Repository(), b.KV(), app.WithLogger(logger), app.WithLocation(cfg.Location()))
	if err := a.Load(ctx); err != nil {
		_ = b.Close()
		return nil, err
	}
	return &session{app: a, backend: b}, nil
}

// withSession opens the store, runs fn and closes the store again.
func withSession(ctx context.Context, fn func(a *app.App) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.app)
}

// newRenderer builds a renderer in the user's theme.
func newRenderer(a *app.App, format string, noColor bool) (*utils.Renderer, error) {
	rc := utils.DefaultRenderConfig()
	if format != "" {
		f, err := utils.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		rc.Format = f
	}
	rc.Color = !noColor && isTerminal(os.Stdout)
	rc.Palette = a.Theme().Colors
	rc.Location = a.Location()
	rc.Now = a.Now
	return utils.NewRenderer(rc), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseDay accepts anything ParseFlexibleDate does; empty means today.
func parseDay(s string, a *app.App) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return a.Now(), nil
	}
	t, err := utils.ParseFlexibleDate(s, a.Now(), a.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// parseSlot reads an hour as "14" or "14:00".
func parseSlot(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	s = strings.TrimSuffix(s, ":00")
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return nil, fmt.Errorf("time slot must be an hour between 0 and 23, got %q", s)
	}
	return diary.Slot(h), nil
}

// confirm asks a yes/no question on r, defaulting to no.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// readContent joins args, or reads stdin when it is piped.
func readContent(args []string, in *os.File) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isTerminal(in) {
		return "", nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}
