package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/utils"
)

var (
	listSearch  string
	listType    string
	listDate    string
	listFrom    string
	listTo      string
	listPreset  string
	listPage    int
	listLimit   int
	listFormat  string
	listNoColor bool
	listSaved   bool
	listSave    bool
	listReset   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries, newest first",
	Long: `Examples:
	diary list                                   # everything
	diary list --type emotion                    # one diary type
	diary list --date yesterday                  # one day
	diary list --from 2024-01-01 --to 2024-01-31 # inclusive range
	diary list --preset this-week --format table
	diary list --search trip --save              # remember this search
	diary list --saved                           # reuse the remembered search`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			ctx := cmd.Context()
			if listReset {
				if err := a.ResetFilters(ctx); err != nil {
					return err
				}
			}

			var spec filter.Spec
			var err error
			if listSaved {
				spec, err = a.LoadFilters(ctx)
			} else {
				spec, err = buildSpec(a, listSearch, listType)
			}
			if err != nil {
				return err
			}
			if listSave {
				if err := a.SaveFilters(ctx, spec); err != nil {
					return err
				}
			}
			return printEntries(cmd, a, a.Filtered(spec), spec)
		})
	},
}

// buildSpec turns the list flags into a filter.
func buildSpec(a *app.App, search, typ string) (filter.Spec, error) {
	spec := filter.Spec{Search: search, Type: filter.TypeAll, Date: filter.DateFilter{Mode: filter.DateNone}}
	if typ != "" && typ != filter.TypeAll {
		t, ok := diary.ParseType(typ)
		if !ok {
			return spec, fmt.Errorf("unknown type %q", typ)
		}
		spec.Type = string(t)
	}

	switch {
	case listPreset != "":
		from, to, err := utils.GetDateRange(listPreset, a.Now(), cfg.WeekStart(), a.Location())
		if err != nil {
			return spec, err
		}
		spec.Date = filter.Range(from, to)
	case listDate != "":
		d, err := parseDay(listDate, a)
		if err != nil {
			return spec, err
		}
		spec.Date = filter.Single(d)
	case listFrom != "" || listTo != "":
		df := filter.DateFilter{Mode: filter.DateRange}
		if listFrom != "" {
			d, err := parseDay(listFrom, a)
			if err != nil {
				return spec, err
			}
			df.Start = &d
		}
		if listTo != "" {
			d, err := parseDay(listTo, a)
			if err != nil {
				return spec, err
			}
			df.End = &d
		}
		if df.Start != nil && df.End != nil {
			df = filter.Range(*df.Start, *df.End)
		}
		spec.Date = df
	}
	return spec, nil
}

func printEntries(cmd *cobra.Command, a *app.App, entries []diary.Entry, spec filter.Spec) error {
	r, err := newRenderer(a, listFormat, listNoColor)
	if err != nil {
		return err
	}
	limit := listLimit
	if limit <= 0 || limit > 1000 {
		limit = 20
	}
	items, page := utils.Paginate(entries, limit, listPage)

	desc := ""
	if !spec.IsZero() {
		var parts []string
		if s := strings.TrimSpace(spec.Search); s != "" {
			parts = append(parts, fmt.Sprintf("%q", s))
		}
		if spec.Type != "" && spec.Type != filter.TypeAll {
			parts = append(parts, spec.Type)
		}
		parts = append(parts, spec.Describe())
		desc = strings.Join(parts, " · ")
	}

	out, err := r.RenderEntryList(&utils.EntryList{Entries: items, Total: len(entries), Page: page, Filter: desc})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().IntVar(&listPage, "page", 1, "Page number")
	c.Flags().IntVarP(&listLimit, "limit", "n", 20, "Entries per page")
	c.Flags().StringVarP(&listFormat, "format", "f", "", "default|table|json|yaml|csv|compact|quiet")
	c.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colours")
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Search title and content")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Diary type or all")
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "Single day: today, yesterday, 2024-01-05…")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Range start (inclusive)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Range end (inclusive)")
	listCmd.Flags().StringVarP(&listPreset, "preset", "p", "", "today|yesterday|this-week|this-month|this-year|last7days|last30days|last90days")
	listCmd.Flags().BoolVar(&listSaved, "saved", false, "Use the remembered filters")
	listCmd.Flags().BoolVar(&listSave, "save", false, "Remember these filters")
	listCmd.Flags().BoolVar(&listReset, "reset", false, "Forget the remembered filters")
	addOutputFlags(listCmd)
}
