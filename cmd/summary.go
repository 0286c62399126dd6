package cmd

import (
	"fmt"
	"sort"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/filter"
	"github.com/ramanasai/diary/internal/utils"
)

var summaryPreset string

// summaryCmd prints a per-type breakdown, the mood mix and task progress.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summary of a period (today by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			from, to, err := utils.GetDateRange(summaryPreset, a.Now(), cfg.WeekStart(), a.Location())
			if err != nil {
				return err
			}
			entries := a.Filtered(filter.Spec{Date: filter.Range(from, to)})
			s := summarize(entries)
			out := cmd.OutOrStdout()

			if from.Equal(to) {
				fmt.Fprintf(out, "%s:\n", from.Format("2006-01-02"))
			} else {
				fmt.Fprintf(out, "%s – %s:\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
			}
			t := uitable.New()
			t.AddRow("  TYPE", "ENTRIES")
			for _, ty := range diary.AllTypes {
				if n := s.byType[ty]; n > 0 {
					t.AddRow("  "+ty.Emoji()+" "+ty.Label(), n)
				}
			}
			t.AddRow("  TOTAL", len(entries))
			fmt.Fprintln(out, t)

			if len(s.moods) > 0 {
				fmt.Fprint(out, "\nMood:")
				for _, m := range s.moods {
					fmt.Fprintf(out, "  %s %s×%d", m.emoji, diary.EmotionName(m.emoji), m.n)
				}
				fmt.Fprintln(out)
			}
			if s.tasks > 0 {
				fmt.Fprintf(out, "Tasks: %d of %d done\n", s.done, s.tasks)
			}
			return nil
		})
	},
}

type moodCount struct {
	emoji string
	n     int
}

type summary struct {
	byType      map[diary.Type]int
	moods       []moodCount // most frequent first
	tasks, done int
}

func summarize(entries []diary.Entry) summary {
	s := summary{byType: map[diary.Type]int{}}
	moods := map[string]int{}
	for _, e := range entries {
		s.byType[e.Type]++
		if e.Emotion != "" {
			moods[e.Emotion]++
		}
		s.tasks += len(e.Tasks)
		s.done += diary.TaskList(e.Tasks).Done()
	}
	for em, n := range moods {
		s.moods = append(s.moods, moodCount{em, n})
	}
	sort.Slice(s.moods, func(i, j int) bool {
		if s.moods[i].n != s.moods[j].n {
			return s.moods[i].n > s.moods[j].n
		}
		return s.moods[i].emoji < s.moods[j].emoji
	})
	return s
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryPreset, "preset", "p", "today", "today|yesterday|this-week|this-month|this-year|last7days|last30days|last90days")
}
