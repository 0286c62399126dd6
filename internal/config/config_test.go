package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.SaveDelay)
	assert.Equal(t, 2*time.Second, cfg.UI.LoadingDelay)
	assert.Equal(t, time.Sunday, cfg.WeekStart())
	assert.NotContains(t, cfg.Storage.DataDir, "~")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
theme: purple
timezone: Asia/Seoul
storage:
  backend: diskv
  data_dir: ` + dir + `
reminder:
  enabled: true
  time: "20:30"
  workdays: [monday, TUE]
ui:
  save_delay: 10ms
  week_starts_on: 1
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "purple", cfg.Theme)
	assert.Equal(t, BackendDiskv, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, []string{"Mon", "Tue"}, cfg.Reminder.Workdays)
	assert.Equal(t, 10*time.Millisecond, cfg.UI.SaveDelay)
	assert.Equal(t, time.Monday, cfg.WeekStart())
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.UI.WeekStartsOn = 7
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Reminder.Time = "9pm"
	assert.Error(t, cfg.Validate())
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.Local, cfg.Location())
}

func TestPassphrase(t *testing.T) {
	t.Setenv("DIARY_TEST_PASS", "hunter2")
	cfg := Default()
	cfg.Security.PassphraseEnv = "DIARY_TEST_PASS"
	assert.Equal(t, "hunter2", cfg.Passphrase())
}
