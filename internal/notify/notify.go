package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/ramanasai/diary/internal/diary"
)

// AppName titles alert-style notifications.
const AppName = "Diary"

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop notifies through the OS notification centre.
type Desktop struct {
	// Sound uses an alert (with sound) instead of a silent notification.
	Sound bool
}

func (d Desktop) Notify(title, message string) error {
	if d.Sound {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Done(message string) error {
	return beeep.Alert(AppName, message, "")
}

// FormatDailyPrompt builds the evening reminder. written is the number of
// entries already made today.
func FormatDailyPrompt(written int) (string, string) {
	title := "Daily diary reminder"
	if written == 0 {
		return title, "You haven't written today. How was your day?"
	}
	return title, fmt.Sprintf("You wrote %d %s today. Anything else to add?", written, plural(written, "entry", "entries"))
}

// FormatSlot builds the notification for schedule entries due this hour.
func FormatSlot(hour int, due []diary.Entry) (string, string) {
	title := fmt.Sprintf("📅 %02d:00 schedule", hour)
	var lines []string
	for _, e := range due {
		line := e.DisplayTitle()
		if open := len(e.Tasks) - diary.TaskList(e.Tasks).Done(); open > 0 {
			line += fmt.Sprintf(" (%d open %s)", open, plural(open, "task", "tasks"))
		}
		lines = append(lines, line)
	}
	return title, strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
