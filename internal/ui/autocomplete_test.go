package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles() []string { return []string{"Trip to Busan", "Morning run", "trip notes", "Run club"} }

func TestMatchTitles(t *testing.T) {
	src := MatchTitles(titles)

	assert.Equal(t, []string{"Trip to Busan", "trip notes"}, src("trip", 5))
	assert.Equal(t, []string{"Morning run"}, src("RUN", 1))
	assert.Empty(t, src("  ", 5))
	assert.Empty(t, src("run club", 5), "an exact match is not suggested")
}

func TestAutocompleteAcceptsSuggestion(t *testing.T) {
	ac := NewAutocomplete(MatchTitles(titles), 3)
	ac.Focus()

	ac, cmd := ac.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bus")})
	require.NotNil(t, cmd)
	assert.Equal(t, "bus", ac.Value())

	ac, _ = ac.Update(AutocompleteMsg{Suggestions: MatchTitles(titles)("bus", 3)})
	require.True(t, ac.Showing())

	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Trip to Busan", ac.Value())
	assert.False(t, ac.Showing())
}

func TestAutocompleteEscapeHidesSuggestions(t *testing.T) {
	ac := NewAutocomplete(MatchTitles(titles), 3)
	ac.Focus()
	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	ac, _ = ac.Update(AutocompleteMsg{Suggestions: []string{"Trip to Busan"}})
	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ac.Showing())
	assert.Equal(t, "t", ac.Value())
}
