package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
)

var (
	writeTitle    string
	writeEmotion  string
	writeDate     string
	writeSlot     string
	writeTasks    []string
	writeSymptoms []string
	writeFlow     int
	writePain     int
)

var writeCmd = &cobra.Command{
	Use:   "write <type> [content]",
	Short: "Write a diary entry",
	Long: `Types: daily, emotion, gratitude, period, schedule.

Examples:
	diary write daily "Walked along the river" --title "Sunday"
	diary write emotion "Nervous about the interview" --emotion anxious
	diary write schedule --slot 14 --task "buy milk" --task "call mom"
	diary write period --symptom cramps --flow 3 --pain 5
	echo "long text" | diary write gratitude --date yesterday`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := diary.ParseType(args[0])
		if !ok {
			return apperr.Validation("ENTRY_TYPE", fmt.Sprintf("unknown diary type %q", args[0]))
		}
		content, err := readContent(args[1:], os.Stdin)
		if err != nil {
			return err
		}

		return withSession(cmd.Context(), func(a *app.App) error {
			d := app.Draft{Type: t, Title: writeTitle, Content: content}

			if writeEmotion != "" {
				em, ok := diary.LookupEmotion(writeEmotion)
				if !ok {
					return apperr.Validation("EMOTION", fmt.Sprintf("unknown emotion %q", writeEmotion))
				}
				d.Emotion = em.Emoji
			}
			if writeDate != "" {
				day, err := parseDay(writeDate, a)
				if err != nil {
					return err
				}
				d.Date = &day
			}
			if d.TimeSlot, err = parseSlot(writeSlot); err != nil {
				return err
			}
			if t == diary.TypePeriod {
				p := diary.NewPeriodLog()
				for _, s := range writeSymptoms {
					p.Toggle(diary.Symptom(strings.ToLower(s)))
				}
				if cmd.Flags().Changed("flow") {
					p.Flow = writeFlow
				}
				if cmd.Flags().Changed("pain") {
					p.Pain = writePain
				}
				d.Period = p
			}
			if len(writeTasks) > 0 {
				var tl diary.TaskList
				for _, text := range writeTasks {
					tl.Add(text)
				}
				d.Tasks = tl
			}

			e, err := a.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s (%s)\n", e.Type.Emoji(), e.DisplayTitle(), e.ID)
			return nil
		})
	},
}

func init() {
	writeCmd.Flags().StringVarP(&writeTitle, "title", "t", "", "Title (defaults to the quick title set on the home screen)")
	writeCmd.Flags().StringVarP(&writeEmotion, "emotion", "e", "", "Emotion name or emoji, e.g. happy or 😊")
	writeCmd.Flags().StringVarP(&writeDate, "date", "d", "", "Date: today, yesterday, 2024-01-05, 3 days ago…")
	writeCmd.Flags().StringVarP(&writeSlot, "slot", "s", "", "Hour of day to pin the entry to (0-23)")
	writeCmd.Flags().StringArrayVar(&writeTasks, "task", nil, "Task text (repeatable)")
	writeCmd.Flags().StringSliceVar(&writeSymptoms, "symptom", nil, "Period symptoms: cramps,headache,backache,fatigue,bloating,mood")
	writeCmd.Flags().IntVar(&writeFlow, "flow", diary.DefaultFlow, "Period flow 1-4")
	writeCmd.Flags().IntVar(&writePain, "pain", diary.DefaultPain, "Period pain 0-10")
}
