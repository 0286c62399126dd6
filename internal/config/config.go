package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "21:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue",...]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-01"]
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sqlite | diskv
	DataDir string `mapstructure:"data_dir"`
}

type SecurityConfig struct {
	// PassphraseEnv names the environment variable holding the lock passphrase.
	PassphraseEnv string `mapstructure:"passphrase_env"`
}

type UIConfig struct {
	SaveDelay    time.Duration `mapstructure:"save_delay"`
	LoadingDelay time.Duration `mapstructure:"loading_delay"`
	WeekStartsOn int           `mapstructure:"week_starts_on"` // 0 = Sunday
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Theme    string         `mapstructure:"theme"`
	Timezone string         `mapstructure:"timezone"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Security SecurityConfig `mapstructure:"security"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

func Default() Config {
	return Config{
		Theme: "default",
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DataDir: "~/.local/share/diary",
		},
		Security: SecurityConfig{PassphraseEnv: "DIARY_PASSPHRASE"},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "21:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
		UI: UIConfig{
			SaveDelay:    500 * time.Millisecond,
			LoadingDelay: 2 * time.Second,
			WeekStartsOn: 0,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// DefaultPath returns ~/.config/diary/config.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "diary", "config.yaml"), nil
}

// Load reads the config at path (DefaultPath when empty). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("DIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("security.passphrase_env", cfg.Security.PassphraseEnv)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("ui.save_delay", cfg.UI.SaveDelay)
	v.SetDefault("ui.loading_delay", cfg.UI.LoadingDelay)
	v.SetDefault("ui.week_starts_on", cfg.UI.WeekStartsOn)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, statErr := os.Stat(path); statErr == nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Storage.DataDir, err = homedir.Expand(cfg.Storage.DataDir)
	if err != nil {
		return cfg, fmt.Errorf("expand data dir: %w", err)
	}

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		cfg.Reminder.Workdays[i] = normalizeWeekday(d)
	}
	return cfg, cfg.Validate()
}

func normalizeWeekday(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) > 3 {
		d = d[:3]
	}
	if d == "" {
		return d
	}
	return strings.ToUpper(d[:1]) + d[1:]
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendDiskv:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendSQLite, BackendDiskv)
	}
	if c.UI.WeekStartsOn < 0 || c.UI.WeekStartsOn > 6 {
		return fmt.Errorf("ui.week_starts_on must be 0-6, got %d", c.UI.WeekStartsOn)
	}
	if _, err := time.Parse("15:04", c.Reminder.Time); err != nil {
		return fmt.Errorf("reminder.time %q: want HH:MM", c.Reminder.Time)
	}
	return nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// WeekStart returns the configured first day of the week.
func (c Config) WeekStart() time.Weekday {
	return time.Weekday(c.UI.WeekStartsOn)
}

// Passphrase returns the lock passphrase from the environment, if any.
func (c Config) Passphrase() string {
	if c.Security.PassphraseEnv == "" {
		return ""
	}
	return os.Getenv(c.Security.PassphraseEnv)
}
