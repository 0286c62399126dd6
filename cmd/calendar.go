package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/ui"
)

// calendarCommand prints one calendar view for the day given as argument.
func calendarCommand(view calendar.View, short string) *cobra.Command {
	return &cobra.Command{
		Use:   view.String() + " [date]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(a *app.App) error {
				arg := ""
				if len(args) == 1 {
					arg = args[0]
				}
				day, err := parseDay(arg, a)
				if err != nil {
					return err
				}
				v := ui.CalendarView{
					Entries: a.Entries(),
					Cursor:  day,
					Today:   a.Now(),
					Hour:    -1,
					First:   cfg.WeekStart(),
					Loc:     a.Location(),
					Theme:   ui.NewTheme(a.Theme().Colors),
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.RenderCalendar(view, v))
				return nil
			})
		},
	}
}

var (
	dayCmd   = calendarCommand(calendar.ViewDay, "Show a day hour by hour")
	weekCmd  = calendarCommand(calendar.ViewWeek, "Show a week")
	monthCmd = calendarCommand(calendar.ViewMonth, "Show a month grid")
)
