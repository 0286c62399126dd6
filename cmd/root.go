package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/logging"
	"github.com/ramanasai/diary/internal/version"
)

var (
	cfgPath  string
	logLevel string

	cfg    config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "diary",
	Short:         "Personal diary with day, week and month views",
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		level := c.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		l, err := logging.New(os.Stderr, level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		cfg, logger = c, l
		logger.Debug("config loaded", "backend", cfg.Storage.Backend, "data_dir", cfg.Storage.DataDir)
		return nil
	},
}

var errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))

// Execute runs the root command and prints the user-facing error, if any.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+apperr.UserMessage(err)))
		if logger != nil {
			logger.Debug("command failed", "err", err)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/diary/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	rootCmd.AddCommand(
		writeCmd, listCmd, searchCmd, showCmd, editCmd, deleteCmd,
		dayCmd, weekCmd, monthCmd, summaryCmd,
		consentCmd, signupCmd, profileCmd, logoutCmd,
		themeCmd, premiumCmd, remindCmd, tuiCmd, versionCmd,
	)
}
