// Package config loads the TalentScout runtime configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML file,
// a .env file, then the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no Gemini key is configured.
var ErrMissingAPIKey = errors.New("missing API key: set GEMINI_API_KEY or GOOGLE_API_KEY")

// Defaults.
const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultLogLevel   = "info"
	DefaultHTTPAddr   = ":8080"
	DefaultMCPAddr    = ":8081"
	DefaultRedisTTL   = 30 * time.Minute
	DefaultLockTTL    = 2 * time.Minute
	DefaultSessionTTL = 30 * time.Minute
)

// Config is the resolved configuration.
type Config struct {
	APIKey        string        `mapstructure:"api_key" yaml:"api_key"`
	Model         string        `mapstructure:"model" yaml:"model"`
	Temperature   *float64      `mapstructure:"temperature" yaml:"temperature"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat     string        `mapstructure:"log_format" yaml:"log_format"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	EncryptionKey string        `mapstructure:"encryption_key" yaml:"encryption_key"`

	HTTP  HTTPConfig  `mapstructure:"http" yaml:"http"`
	MCP   MCPConfig   `mapstructure:"mcp" yaml:"mcp"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// HTTPConfig configures the session API server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// MCPConfig configures the MCP SSE transport.
type MCPConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// RedisConfig configures the shared session store. An empty URL keeps sessions in memory.
type RedisConfig struct {
	URL    string        `mapstructure:"url" yaml:"url"`
	Prefix string        `mapstructure:"prefix" yaml:"prefix"`
	TTL    time.Duration `mapstructure:"ttl" yaml:"ttl"`

	// LockTTL is the lease of per-session locks shared by replicas.
	// It must outlast the slowest question generation.
	LockTTL time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

// envBindings maps environment variables to config keys.
// When several variables bind the same key, the first one set wins.
var envBindings = []struct {
	key  string
	vars []string
}{
	{"api_key", []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
	{"model", []string{"TALENTSCOUT_MODEL"}},
	{"temperature", []string{"TALENTSCOUT_TEMPERATURE"}},
	{"log_level", []string{"TALENTSCOUT_LOG_LEVEL"}},
	{"log_format", []string{"TALENTSCOUT_LOG_FORMAT"}},
	{"session_ttl", []string{"TALENTSCOUT_SESSION_TTL"}},
	{"encryption_key", []string{"TALENTSCOUT_ENCRYPTION_KEY"}},
	{"http.addr", []string{"TALENTSCOUT_HTTP_ADDR"}},
	{"mcp.addr", []string{"TALENTSCOUT_MCP_ADDR"}},
	{"mcp.base_url", []string{"TALENTSCOUT_MCP_BASE_URL"}},
	{"redis.url", []string{"TALENTSCOUT_REDIS_URL"}},
	{"redis.prefix", []string{"TALENTSCOUT_REDIS_PREFIX"}},
	{"redis.ttl", []string{"TALENTSCOUT_REDIS_TTL"}},
	{"redis.lock_ttl", []string{"TALENTSCOUT_REDIS_LOCK_TTL"}},
}

// Options selects the files Load reads.
type Options struct {
	// File is an optional YAML config file. A missing file is an error.
	File string

	// EnvFiles are dotenv files loaded into the environment; missing files are ignored.
	// Defaults to ".env".
	EnvFiles []string
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if err := loadDotEnv(opts.EnvFiles); err != nil {
		return nil, err
	}

	raw := defaults()

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", opts.File, err)
		}
		merge(raw, fromFile)
	}

	for _, b := range envBindings {
		for _, name := range b.vars {
			if v, ok := os.LookupEnv(name); ok && v != "" {
				set(raw, b.key, v)
				break
			}
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration errors that prevent serving conversations.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		errs = append(errs, fmt.Errorf("temperature %.2f out of range [0, 2]", *c.Temperature))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.SessionTTL < 0 || c.Redis.TTL < 0 || c.Redis.LockTTL < 0 {
		errs = append(errs, errors.New("ttl values must not be negative"))
	}
	return errors.Join(errs...)
}

func defaults() map[string]any {
	return map[string]any{
		"model":       DefaultModel,
		"log_level":   DefaultLogLevel,
		"log_format":  "text",
		"session_ttl": DefaultSessionTTL.String(),
		"http": map[string]any{
			"addr": DefaultHTTPAddr,
		},
		"mcp": map[string]any{
			"addr": DefaultMCPAddr,
		},
		"redis": map[string]any{
			"prefix":   "talentscout:session:",
			"ttl":      DefaultRedisTTL.String(),
			"lock_ttl": DefaultLockTTL.String(),
		},
	}
}

func loadDotEnv(files []string) error {
	if files == nil {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		// Load never overrides variables already set in the process.
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// set assigns a dotted key such as "redis.url".
func set(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
