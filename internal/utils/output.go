package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/theme"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// Formats lists the accepted --format values.
var Formats = []OutputFormat{FormatDefault, FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatCompact, FormatQuiet}

func ParseFormat(s string) (OutputFormat, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	Color    bool
	Palette  theme.Palette
	Location *time.Location
	Now      func() time.Time
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 80
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   true,
		Color:    true,
		Palette:  theme.DefaultPalette,
		Location: time.Local,
		Now:      time.Now,
	}
}

// EntryList is a page of entries plus what produced it.
type EntryList struct {
	Entries []diary.Entry `json:"entries" yaml:"entries"`
	Total   int           `json:"total" yaml:"total"`
	Page    Page          `json:"-" yaml:"-"`
	Filter  string        `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Type      lipgloss.Style
	Text      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles derives the style set from a palette. Without colour every style is plain.
func NewStyles(p theme.Palette, color bool) Styles {
	if !color {
		bold := lipgloss.NewStyle().Bold(true)
		plain := lipgloss.NewStyle()
		return Styles{Title: bold, Separator: plain, Meta: plain, Type: bold, Text: plain, Success: plain, Error: plain}
	}
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Secondary)),
		Meta:      lipgloss.NewStyle().Faint(true),
		Type:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Text:      lipgloss.NewStyle(),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Renderer{config: config, styles: NewStyles(config.Palette, config.Color)}
}

func (r *Renderer) Styles() Styles { return r.styles }

// RenderEntryList renders a list of entries according to the configured format
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatYAML:
		return r.renderYAML(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	case FormatQuiet:
		return r.renderQuiet(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 100)))
}

func (r *Renderer) renderDefault(list *EntryList) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("My Diaries"))
	if list.Filter != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render(list.Filter))
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	if len(list.Entries) == 0 {
		b.WriteString(r.styles.Meta.Render("No diaries yet. Start with `diary write daily`."))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range list.Entries {
		b.WriteString(r.RenderEntry(e, false))
		b.WriteString(r.rule())
		b.WriteString("\n")
	}

	if list.Page.TotalPages > 1 {
		b.WriteString(r.styles.Meta.Render(list.Page.Summary()))
		b.WriteString("\n")
		if nav := list.Page.Navigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderEntry renders one entry card. full includes the whole content and
// the period and task details.
func (r *Renderer) RenderEntry(e diary.Entry, full bool) string {
	var b strings.Builder
	loc := r.config.Location

	var meta []string
	if r.config.ShowID {
		meta = append(meta, r.styles.Meta.Render("["+e.ID+"]"))
	}
	meta = append(meta,
		r.styles.Meta.Render(e.Date.In(loc).Format("2006.01.02 15:04")),
		r.styles.Type.Render(e.Type.Emoji()+" "+e.Type.Label()),
	)
	if e.TimeSlot != nil {
		meta = append(meta, r.styles.Meta.Render(fmt.Sprintf("@%02d:00", *e.TimeSlot)))
	}
	if e.Emotion != "" {
		meta = append(meta, e.Emotion)
	}
	b.WriteString(strings.Join(meta, "  "))
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(r.styles.Title.Render(e.DisplayTitle()))
	b.WriteString("\n")

	content := e.Content
	if !full {
		content = Truncate(strings.ReplaceAll(content, "\n", " "), r.config.Width-4)
	}
	if content != "" {
		for _, line := range strings.Split(content, "\n") {
			b.WriteString(r.styles.Text.Render("  " + line))
			b.WriteString("\n")
		}
	}

	if full && e.Period != nil {
		syms := make([]string, len(e.Period.Symptoms))
		for i, s := range e.Period.Symptoms {
			syms[i] = string(s)
		}
		b.WriteString(r.styles.Meta.Render(fmt.Sprintf("  flow %d/%d · pain %d/%d · %s",
			e.Period.Flow, diary.MaxFlow, e.Period.Pain, diary.MaxPain, strings.Join(syms, ", "))))
		b.WriteString("\n")
	}
	if full {
		for _, t := range e.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", box, t.Text))
		}
	} else if len(e.Tasks) > 0 {
		b.WriteString(r.styles.Meta.Render(fmt.Sprintf("  %d/%d tasks done", diary.TaskList(e.Tasks).Done(), len(e.Tasks))))
		b.WriteString("\n")
	}

	if e.LastModified != nil {
		b.WriteString(r.styles.Meta.Render("  edited " + humanize.RelTime(*e.LastModified, r.config.Now(), "ago", "from now")))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderJSON(list *EntryList) (string, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderYAML(list *EntryList) (string, error) {
	data, err := yaml.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "date", "type", "title", "content", "emotion", "time_slot", "last_modified"})
	for _, e := range list.Entries {
		slot, lm := "", ""
		if e.TimeSlot != nil {
			slot = strconv.Itoa(*e.TimeSlot)
		}
		if e.LastModified != nil {
			lm = e.LastModified.Format(time.RFC3339)
		}
		_ = w.Write([]string{e.ID, e.Date.Format(time.RFC3339), string(e.Type), e.Title, e.Content, e.Emotion, slot, lm})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderTable(list *EntryList) string {
	t := uitable.New()
	t.MaxColWidth = uint(max(r.config.Width/3, 20))
	t.Wrap = false
	t.AddRow("ID", "DATE", "TYPE", "MOOD", "TITLE", "CONTENT")
	for _, e := range list.Entries {
		t.AddRow(e.ID, e.Date.In(r.config.Location).Format("2006-01-02 15:04"), string(e.Type), e.Emotion,
			e.DisplayTitle(), strings.ReplaceAll(e.Content, "\n", " "))
	}
	return t.String() + "\n"
}

func (r *Renderer) renderCompact(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		line := fmt.Sprintf("%s %s %s %s",
			r.styles.Meta.Render(e.Date.In(r.config.Location).Format("01.02 15:04")),
			e.Type.Emoji(),
			r.styles.Title.Render(e.DisplayTitle()),
			Truncate(strings.ReplaceAll(e.Content, "\n", " "), 60))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderQuiet prints ids only, for scripting.
func (r *Renderer) renderQuiet(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(e.ID)
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate shortens s to at most n runes, ending in an ellipsis when cut.
func Truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	if n <= 1 {
		return string(rs[:n])
	}
	return string(rs[:n-1]) + "…"
}
