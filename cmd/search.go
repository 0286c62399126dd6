package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
)

var searchType string

// searchCmd is list --search with the query as arguments.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search titles and contents",
	Long: `Examples:
	diary search busan
	diary search "job interview" --type emotion
	diary search walk --preset last30days --format compact`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			spec, err := buildSpec(a, strings.Join(args, " "), searchType)
			if err != nil {
				return err
			}
			return printEntries(cmd, a, a.Filtered(spec), spec)
		})
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "Diary type or all")
	searchCmd.Flags().StringVarP(&listPreset, "preset", "p", "", "Date preset, see list --help")
	searchCmd.Flags().StringVar(&listFrom, "from", "", "Range start (inclusive)")
	searchCmd.Flags().StringVar(&listTo, "to", "", "Range end (inclusive)")
	addOutputFlags(searchCmd)
}
