package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	home := t.TempDir()
	return &Loader{configPath: filepath.Join(home, "cfg", "config.yml"), homeDir: home}, home
}

func TestLoader_CreatesDefaults(t *testing.T) {
	loader, home := newTestLoader(t)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFilesystem, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, defaultDataDirName, "board"), cfg.Storage.BoardPath)
	assert.Equal(t, []string{"Today", "Tomorrow", "TODO"}, cfg.Board.DefaultSections)
	assert.NotEmpty(t, cfg.Auth.TokenSecret)

	info, err := os.Stat(loader.GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Auth.TokenSecret, again.Auth.TokenSecret, "generated secret is persisted")
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	loader, home := newTestLoader(t)
	content := `
storage:
  backend: sqlite
  database_path: ~/db/board.db
auth:
  token_secret: s3cret
logging:
  level: debug
`
	require.NoError(t, os.MkdirAll(filepath.Dir(loader.GetConfigPath()), 0o755))
	require.NoError(t, os.WriteFile(loader.GetConfigPath(), []byte(content), 0o600))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "db", "board.db"), cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTLDuration())
	assert.Equal(t, []string{" "}, cfg.Keybindings.PickUp)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := Default("/home/test")
		c.Auth.TokenSecret = "x"
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"sqlite without path", func(c *Config) { c.Storage.Backend = BackendSQLite; c.Storage.DatabasePath = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad ttl", func(c *Config) { c.Auth.TokenTTL = "forever" }},
		{"no secret", func(c *Config) { c.Auth.TokenSecret = "" }},
		{"no sections", func(c *Config) { c.Board.DefaultSections = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	c := Default("/home/test")
	assert.Equal(t, 200*time.Millisecond, c.WatchDebounceDuration())

	c.Daemon.WatchDebounce = "nonsense"
	assert.Equal(t, 200*time.Millisecond, c.WatchDebounceDuration())

	c.Daemon.WatchDebounce = "1s"
	assert.Equal(t, time.Second, c.WatchDebounceDuration())

	assert.Equal(t, "/home/test/.local/share/prioritizer/prioritizerd.sock", c.SocketPath())
}
