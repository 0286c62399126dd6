package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the current theme and the presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			cur := a.Theme()
			out := cmd.OutOrStdout()
			t := uitable.New()
			t.AddRow("", "THEME", "COLOURS")
			for _, name := range theme.Presets() {
				p, _ := theme.Preset(name)
				t.AddRow(marker(cur.Current == name), name, swatches(p))
			}
			if cur.Current == theme.Custom {
				t.AddRow(marker(true), theme.Custom, swatches(cur.Colors))
			}
			fmt.Fprintln(out, t)
			return nil
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Switch to a preset theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			if err := a.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", args[0])
			return nil
		})
	},
}

var customColors theme.Palette

var themeCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Use your own colours (premium)",
	Long: `Use your own colours. Unset flags keep the current colour.

Example:
  diary theme custom --primary "#7C3AED" --accent "#F97316"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			p := a.Theme().Colors
			f := cmd.Flags()
			if f.Changed("primary") {
				p.Primary = customColors.Primary
			}
			if f.Changed("secondary") {
				p.Secondary = customColors.Secondary
			}
			if f.Changed("accent") {
				p.Accent = customColors.Accent
			}
			if f.Changed("background") {
				p.Background = customColors.Background
			}
			if f.Changed("surface") {
				p.Surface = customColors.Surface
			}
			if err := a.SetCustomColors(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Custom theme saved: %s\n", swatches(p))
			return nil
		})
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Back to the default theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			if err := a.ResetTheme(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Theme reset.")
			return nil
		})
	},
}

func marker(on bool) string {
	if on {
		return "*"
	}
	return ""
}

func swatches(p theme.Palette) string {
	out := ""
	for _, c := range []string{p.Primary, p.Secondary, p.Accent, p.Background, p.Surface} {
		if isTerminal(os.Stdout) {
			out += lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■") + " "
		}
		out += c + " "
	}
	return out
}

func init() {
	f := themeCustomCmd.Flags()
	f.StringVar(&customColors.Primary, "primary", "", "#RRGGBB")
	f.StringVar(&customColors.Secondary, "secondary", "", "#RRGGBB")
	f.StringVar(&customColors.Accent, "accent", "", "#RRGGBB")
	f.StringVar(&customColors.Background, "background", "", "#RRGGBB")
	f.StringVar(&customColors.Surface, "surface", "", "#RRGGBB")

	themeCmd.AddCommand(themeSetCmd, themeCustomCmd, themeResetCmd)
}
