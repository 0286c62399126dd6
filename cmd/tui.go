package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/logging"
	"github.com/ramanasai/diary/internal/notify"
	"github.com/ramanasai/diary/internal/store"
	"github.com/ramanasai/diary/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// stderr belongs to the alt screen; log to a file instead
		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		l, f, err := logging.OpenFile(cfg.Storage.DataDir, level)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = l

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		changes, err := store.Watch(ctx, cfg.Storage.DataDir)
		if err != nil {
			logger.Warn("file watcher unavailable", "err", err)
			changes = nil
		}

		snap := &ui.Snapshot{}
		snap.Set(s.app.Entries())
		r := newRunner(s.app, notify.Desktop{}, snap.Get)
		go func() {
			if err := r.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("reminder runner stopped", "err", err)
			}
		}()

		return ui.Run(ctx, ui.Options{
			App:      s.app,
			Config:   cfg,
			Log:      logger,
			Changes:  changes,
			Snapshot: snap,
		})
	},
}
