// Package theme holds the colour palettes a user can pick.
package theme

import (
	"fmt"
	"regexp"
	"sort"
)

// Palette is the five colours every screen is drawn with.
type Palette struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Accent     string `json:"accent" yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Surface    string `json:"surface" yaml:"surface"`
}

const (
	Default = "default"
	Custom  = "custom"
)

var DefaultPalette = Palette{"#374151", "#6B7280", "#3B82F6", "#FAFAFA", "#FFFFFF"}

var presets = map[string]Palette{
	Default:  DefaultPalette,
	"purple": {"#7C3AED", "#A78BFA", "#8B5CF6", "#FAF5FF", "#FFFFFF"},
	"pink":   {"#EC4899", "#F472B6", "#F97316", "#FDF2F8", "#FFFFFF"},
	"green":  {"#059669", "#34D399", "#10B981", "#F0FDF4", "#FFFFFF"},
	"blue":   {"#2563EB", "#60A5FA", "#3B82F6", "#EFF6FF", "#FFFFFF"},
	"orange": {"#EA580C", "#FB923C", "#F97316", "#FFF7ED", "#FFFFFF"},
}

// Presets lists preset names, default first.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		if n != Default {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return append([]string{Default}, names...)
}

// Preset returns the palette for name.
func Preset(name string) (Palette, bool) {
	p, ok := presets[name]
	return p, ok
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (p Palette) Validate() error {
	for name, c := range map[string]string{
		"primary": p.Primary, "secondary": p.Secondary, "accent": p.Accent,
		"background": p.Background, "surface": p.Surface,
	} {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%s colour %q is not #RRGGBB", name, c)
		}
	}
	return nil
}

// State is persisted under the diary-theme key.
type State struct {
	Current string  `json:"currentTheme"`
	Colors  Palette `json:"customColors"`
}

func DefaultState() State {
	return State{Current: Default, Colors: DefaultPalette}
}

// Select switches to a preset. Unknown names fall back to the default palette
// but keep the requested name.
func Select(name string) State {
	p, ok := presets[name]
	if !ok {
		p = DefaultPalette
	}
	return State{Current: name, Colors: p}
}

// WithCustom switches to a user-defined palette.
func WithCustom(p Palette) (State, error) {
	if err := p.Validate(); err != nil {
		return State{}, err
	}
	return State{Current: Custom, Colors: p}, nil
}
