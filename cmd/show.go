package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/utils"
)

var (
	showFormat  string
	showNoColor bool
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			e, ok := a.Entry(args[0])
			if !ok {
				return apperr.ErrNotFound
			}
			r, err := newRenderer(a, showFormat, showNoColor)
			if err != nil {
				return err
			}
			switch showFormat {
			case "", string(utils.FormatDefault):
				fmt.Fprint(cmd.OutOrStdout(), r.RenderEntry(e, true))
				return nil
			}
			out, err := r.RenderEntryList(&utils.EntryList{Entries: []diary.Entry{e}, Total: 1})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "default|json|yaml|csv|table")
	showCmd.Flags().BoolVar(&showNoColor, "no-color", false, "Disable colours")
}
