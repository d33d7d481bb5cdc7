package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	"GEMINI_API_KEY", "GOOGLE_API_KEY", "TALENTSCOUT_MODEL", "TALENTSCOUT_TEMPERATURE",
	"TALENTSCOUT_LOG_LEVEL", "TALENTSCOUT_LOG_FORMAT", "TALENTSCOUT_SESSION_TTL",
	"TALENTSCOUT_ENCRYPTION_KEY", "TALENTSCOUT_HTTP_ADDR", "TALENTSCOUT_MCP_ADDR",
	"TALENTSCOUT_MCP_BASE_URL", "TALENTSCOUT_REDIS_URL", "TALENTSCOUT_REDIS_PREFIX",
	"TALENTSCOUT_REDIS_TTL", "TALENTSCOUT_REDIS_LOCK_TTL",
}

// clearEnv blanks every bound variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.Equal(t, DefaultMCPAddr, cfg.MCP.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.Redis.LockTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Nil(t, cfg.Temperature)

	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "talentscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: gemini-2.0-flash
temperature: 0.4
redis:
  url: redis://localhost:6379/0
  ttl: 5m
  lock_ttl: 3m
http:
  addr: ":9000"
`), 0o644))

	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("TALENTSCOUT_HTTP_ADDR", ":9999")

	cfg, err := Load(Options{File: path, EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.4, *cfg.Temperature, 1e-9)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 3*time.Minute, cfg.Redis.LockTTL)
	assert.Equal(t, "talentscout:session:", cfg.Redis.Prefix, "defaults survive a partial section")
	assert.Equal(t, ":9999", cfg.HTTP.Addr, "environment wins over the file")
	assert.Equal(t, "google-key", cfg.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_GeminiKeyPreferred(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that exist, even when empty.
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	require.NoError(t, os.Unsetenv("TALENTSCOUT_SESSION_TTL"))
	t.Cleanup(func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("TALENTSCOUT_SESSION_TTL")
	})

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY=from-dotenv\nTALENTSCOUT_SESSION_TTL=90s\n"), 0o644))

	cfg, err := Load(Options{EnvFiles: []string{envFile, filepath.Join(dir, "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(Options{File: filepath.Join(dir, "nope.yaml"), EnvFiles: []string{}})
		assert.Error(t, err)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modle: x\n"), 0o644))
		_, err := Load(Options{File: path, EnvFiles: []string{}})
		assert.ErrorContains(t, err, "modle")
	})

	t.Run("Bad Duration", func(t *testing.T) {
		t.Setenv("TALENTSCOUT_REDIS_TTL", "soon")
		_, err := Load(Options{EnvFiles: []string{}})
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	temp := 3.0
	cfg := &Config{APIKey: "k", LogFormat: "xml", Temperature: &temp, SessionTTL: -time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorContains(t, err, "temperature")
	assert.ErrorContains(t, err, "log_format")
	assert.ErrorContains(t, err, "negative")
}
