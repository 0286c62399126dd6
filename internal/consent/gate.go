// Package consent implements the agreement screen's state machine: required
// items must all be checked before the user may continue.
package consent

import (
	"fmt"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
)

// Gate tracks which items are checked and the "agree to all" box.
type Gate struct {
	checked map[string]bool
	all     bool
}

func NewGate() *Gate {
	g := &Gate{checked: make(map[string]bool, len(Items))}
	for _, it := range Items {
		g.checked[it.ID] = false
	}
	return g
}

// SetAll sets every item, required or not, to v.
func (g *Gate) SetAll(v bool) {
	g.all = v
	for id := range g.checked {
		g.checked[id] = v
	}
}

// Set changes one item and recomputes the aggregate box, which is checked
// exactly when every required item is.
func (g *Gate) Set(id string, v bool) error {
	if _, ok := g.checked[id]; !ok {
		return fmt.Errorf("unknown consent item %q", id)
	}
	g.checked[id] = v
	g.all = g.RequiredSatisfied()
	return nil
}

// Toggle flips one item.
func (g *Gate) Toggle(id string) error {
	return g.Set(id, !g.checked[id])
}

// Confirm is called when the user accepts an item's document.
func (g *Gate) Confirm(id string) error {
	return g.Set(id, true)
}

func (g *Gate) Checked(id string) bool { return g.checked[id] }

// All reports the state of the aggregate box.
func (g *Gate) All() bool { return g.all }

func (g *Gate) RequiredSatisfied() bool {
	for _, it := range Items {
		if it.Required && !g.checked[it.ID] {
			return false
		}
	}
	return true
}

// Missing lists unchecked required items in display order.
func (g *Gate) Missing() []string {
	var out []string
	for _, it := range Items {
		if it.Required && !g.checked[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// Continue returns the record to persist, or a validation error leaving the
// gate untouched when any required item is unchecked.
func (g *Gate) Continue(now time.Time) (Record, error) {
	if !g.RequiredSatisfied() {
		return Record{}, apperr.ErrConsentRequired
	}
	return Record{AcceptedAt: now, Marketing: g.checked[Marketing]}, nil
}

// Record is what gets stored once the gate is passed.
type Record struct {
	AcceptedAt time.Time `json:"acceptedAt"`
	Marketing  bool      `json:"marketing"`
}
