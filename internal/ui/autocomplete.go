package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AutocompleteModel represents a text input with autocomplete functionality
type AutocompleteModel struct {
	input          textinput.Model
	suggestions    []string
	showing        bool
	selected       int
	source         SuggestionSource
	style          lipgloss.Style
	selectedStyle  lipgloss.Style
	maxSuggestions int
}

// SuggestionSource returns candidates for the current query.
type SuggestionSource func(query string, limit int) []string

// AutocompleteMsg is a message to update suggestions
type AutocompleteMsg struct {
	Suggestions []string
}

// MatchTitles builds a source over a title list, matching case-insensitively
// anywhere in the title and skipping exact matches.
func MatchTitles(titles func() []string) SuggestionSource {
	return func(query string, limit int) []string {
		q := strings.ToLower(strings.TrimSpace(query))
		if q == "" {
			return nil
		}
		var out []string
		for _, t := range titles() {
			lt := strings.ToLower(t)
			if lt == q || !strings.Contains(lt, q) {
				continue
			}
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
		return out
	}
}

// NewAutocomplete creates a new autocomplete input model
func NewAutocomplete(source SuggestionSource, maxSuggestions int) AutocompleteModel {
	input := textinput.New()
	input.Placeholder = "Type..."
	input.CharLimit = 100

	return AutocompleteModel{
		input:          input,
		source:         source,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		selectedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Update handles the autocomplete logic
func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			if m.showing && len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyShiftTab, tea.KeyUp:
			if m.showing && len(m.suggestions) > 0 {
				m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyEnter:
			if m.showing && len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[m.selected])
				m.input.CursorEnd()
				m.showing = false
				m.selected = 0
				return m, nil
			}
		case tea.KeyEscape:
			if m.showing {
				m.showing = false
				m.selected = 0
				return m, nil
			}
		case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
			oldValue := m.input.Value()
			m.input, cmd = m.input.Update(msg)

			if m.input.Value() != oldValue {
				return m, tea.Batch(cmd, m.fetchSuggestions())
			}
			return m, cmd
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case AutocompleteMsg:
		m.suggestions = msg.Suggestions
		m.showing = len(m.suggestions) > 0 && m.input.Value() != ""
		m.selected = 0
		return m, nil

	default:
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// fetchSuggestions retrieves suggestions based on current input
func (m AutocompleteModel) fetchSuggestions() tea.Cmd {
	query := m.input.Value()
	source, limit := m.source, m.maxSuggestions
	return func() tea.Msg {
		if source == nil || query == "" {
			return AutocompleteMsg{}
		}
		return AutocompleteMsg{Suggestions: source(query, limit)}
	}
}

// View renders the autocomplete input and suggestions
func (m AutocompleteModel) View() string {
	var content strings.Builder

	content.WriteString(m.input.View())

	if m.showing && len(m.suggestions) > 0 {
		for i, suggestion := range m.suggestions {
			if i >= m.maxSuggestions {
				break
			}
			content.WriteString("\n")
			if i == m.selected {
				content.WriteString(m.selectedStyle.Render("▶ " + suggestion))
			} else {
				content.WriteString(m.style.Render("  " + suggestion))
			}
		}
	}

	return content.String()
}

func (m AutocompleteModel) Value() string {
	return m.input.Value()
}

func (m *AutocompleteModel) SetValue(value string) {
	m.input.SetValue(value)
}

func (m *AutocompleteModel) Focus() tea.Cmd {
	m.showing = false
	m.selected = 0
	return m.input.Focus()
}

func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.showing = false
	m.selected = 0
}

func (m AutocompleteModel) Focused() bool {
	return m.input.Focused()
}

func (m *AutocompleteModel) SetWidth(width int) {
	m.input.Width = width
}

func (m *AutocompleteModel) SetPlaceholder(placeholder string) {
	m.input.Placeholder = placeholder
}

func (m AutocompleteModel) Suggestions() []string {
	return m.suggestions
}

// Showing returns whether suggestions are currently displayed
func (m AutocompleteModel) Showing() bool {
	return m.showing
}
