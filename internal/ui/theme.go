package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/diary/internal/theme"
)

type Theme struct {
	Palette    theme.Palette
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Border     lipgloss.Style
	Hint       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	Toast      lipgloss.Style
	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
}

// NewTheme derives every style from the five palette colours.
func NewTheme(p theme.Palette) Theme {
	primary := lipgloss.Color(p.Primary)
	secondary := lipgloss.Color(p.Secondary)
	accent := lipgloss.Color(p.Accent)
	return Theme{
		Palette:    p,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Label:      lipgloss.NewStyle().Faint(true).Foreground(secondary),
		Value:      lipgloss.NewStyle().Foreground(primary),
		Border:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(secondary).Padding(0, 1),
		Hint:       lipgloss.NewStyle().Faint(true).Foreground(secondary),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		Tab:        lipgloss.NewStyle().Padding(0, 2).Foreground(secondary),
		TabActive:  lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(accent),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:      lipgloss.NewStyle().Faint(true),
		Toast:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(p.Surface)).Background(primary),
		ModalBox:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
	}
}

var DefaultTheme = NewTheme(theme.DefaultPalette)

func colorBlock(c string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■")
}
