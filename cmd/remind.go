package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/notify"
	"github.com/ramanasai/diary/internal/schedule"
)

var (
	remindOnce  bool
	remindSound bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder loop in the foreground",
	Long: `Send the daily diary reminder and hourly schedule alerts until interrupted.

The daily reminder is on when reminder.enabled is set in the config or the
profile reminder is turned on (diary profile --reminder on).

Examples:
  diary remind          # keep running, Ctrl-C to stop
  diary remind --once   # send today's reminder and this hour's alerts now`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return withSession(ctx, func(a *app.App) error {
			r := newRunner(a, notify.Desktop{Sound: remindSound}, a.Entries)
			if remindOnce {
				now := a.Now()
				r.FireDaily(now)
				r.FireSlots(now)
				return nil
			}
			if next := schedule.NextAt(a.Now(), r.Config); r.Config.Reminder.Enabled && !next.IsZero() {
				fmt.Fprintf(os.Stderr, "next reminder at %s\n", next.Format("Mon 2006-01-02 15:04"))
			}
			if err := r.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		})
	},
}

// newRunner builds the reminder runner. The profile toggle turns the daily
// reminder on even when the config leaves it off.
func newRunner(a *app.App, n notify.Notifier, entries func() []diary.Entry) *schedule.Runner {
	c := cfg
	if u, ok := a.User(); ok && u.Reminder {
		c.Reminder.Enabled = true
	}
	return &schedule.Runner{
		Config:   c,
		Notifier: n,
		Entries:  entries,
		Log:      logger,
		Now:      a.Now,
	}
}

func init() {
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "fire once and exit")
	remindCmd.Flags().BoolVar(&remindSound, "sound", false, "use alerts with sound")
}
