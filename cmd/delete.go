package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			e, ok := a.Entry(args[0])
			if !ok {
				return apperr.ErrNotFound
			}
			if !deleteYes {
				if !isTerminal(os.Stdin) {
					return apperr.Validation("CONFIRM", "refusing to delete without --yes")
				}
				q := fmt.Sprintf("Delete %s %q from %s?", e.Type.Emoji(), e.DisplayTitle(), e.Date.In(a.Location()).Format("2006.01.02"))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), q) {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
			}
			if err := a.Delete(cmd.Context(), e.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}
