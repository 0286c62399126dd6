package diary

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one line of a schedule entry's checklist.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// TaskList is the editable checklist behind a schedule entry.
type TaskList []Task

// Add appends a task; blank text is ignored and reported as false.
func (l *TaskList) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	*l = append(*l, Task{ID: uuid.NewString()[:8], Text: text})
	return true
}

func (l TaskList) Toggle(id string) {
	for i := range l {
		if l[i].ID == id {
			l[i].Completed = !l[i].Completed
			return
		}
	}
}

func (l *TaskList) Remove(id string) {
	out := (*l)[:0]
	for _, t := range *l {
		if t.ID != id {
			out = append(out, t)
		}
	}
	*l = out
}

// Done counts completed tasks.
func (l TaskList) Done() int {
	n := 0
	for _, t := range l {
		if t.Completed {
			n++
		}
	}
	return n
}
