package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
)

var (
	editTitle       string
	editContent     string
	editEmotion     string
	editDate        string
	editSlot        string
	editClearSlot   bool
	editAddTasks    []string
	editToggleTasks []string
	editRemoveTasks []string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing entry",
	Long: `Examples:
	diary edit 1704450600000 --title "Busan trip"
	diary edit 1704450600000 --content "Rewritten"
	diary edit 1704450600000 --add-task "pack" --toggle-task 3f2a9c1d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if !f.Changed("title") && !f.Changed("content") && !f.Changed("emotion") && !f.Changed("date") &&
			!f.Changed("slot") && !editClearSlot && len(editAddTasks)+len(editToggleTasks)+len(editRemoveTasks) == 0 {
			return apperr.Validation("NOTHING_TO_EDIT", "nothing to update, specify at least one field")
		}

		return withSession(cmd.Context(), func(a *app.App) error {
			e, ok := a.Entry(args[0])
			if !ok {
				return apperr.ErrNotFound
			}
			if f.Changed("title") {
				e.Title = editTitle
			}
			if f.Changed("content") {
				e.Content = editContent
			}
			if f.Changed("emotion") {
				em, ok := diary.LookupEmotion(editEmotion)
				if !ok {
					return apperr.Validation("EMOTION", fmt.Sprintf("unknown emotion %q", editEmotion))
				}
				e.Emotion = em.Emoji
			}
			if f.Changed("date") {
				d, err := parseDay(editDate, a)
				if err != nil {
					return err
				}
				e.Date = d
			}
			if editClearSlot {
				e.TimeSlot = nil
			} else if f.Changed("slot") {
				s, err := parseSlot(editSlot)
				if err != nil {
					return err
				}
				e.TimeSlot = s
			}

			tl := diary.TaskList(e.Tasks)
			for _, text := range editAddTasks {
				tl.Add(text)
			}
			for _, id := range editToggleTasks {
				tl.Toggle(id)
			}
			for _, id := range editRemoveTasks {
				tl.Remove(id)
			}
			e.Tasks = tl

			saved, err := a.Update(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", saved.DisplayTitle(), saved.ID)
			return nil
		})
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVarP(&editEmotion, "emotion", "e", "", "New emotion")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "Move to another day")
	editCmd.Flags().StringVarP(&editSlot, "slot", "s", "", "Pin to an hour (0-23)")
	editCmd.Flags().BoolVar(&editClearSlot, "clear-slot", false, "Unpin from its hour")
	editCmd.Flags().StringArrayVar(&editAddTasks, "add-task", nil, "Add a task (repeatable)")
	editCmd.Flags().StringArrayVar(&editToggleTasks, "toggle-task", nil, "Toggle a task by id (repeatable)")
	editCmd.Flags().StringArrayVar(&editRemoveTasks, "remove-task", nil, "Remove a task by id (repeatable)")
}
