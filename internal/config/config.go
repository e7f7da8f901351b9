package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the data directory.
const FileName = "config.yaml"

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "RPGDASH_"

// Local backends
const (
	LocalSQLite = "sqlite"
	LocalFile   = "file"
)

// Remote backends. An empty backend keeps the dashboard local-only.
const (
	RemoteNone   = ""
	RemoteSQLite = "sqlite"
	RemoteS3     = "s3"
)

// Config is the rpgdash configuration. File values are loaded first and
// environment variables override them.
type Config struct {
	DataDir string       `yaml:"-"`
	Local   LocalConfig  `yaml:"local" envPrefix:"LOCAL_"`
	Remote  RemoteConfig `yaml:"remote" envPrefix:"REMOTE_"`
	Auth    AuthConfig   `yaml:"auth" envPrefix:"AUTH_"`
	Log     LogConfig    `yaml:"log" envPrefix:"LOG_"`
}

// LocalConfig selects where the working copy of the document lives.
type LocalConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Key     string `yaml:"key,omitempty" env:"KEY"`
	Path    string `yaml:"path,omitempty" env:"PATH"` // defaults inside DataDir
}

// RemoteConfig selects the per-user mirror.
type RemoteConfig struct {
	Backend  string        `yaml:"backend,omitempty" env:"BACKEND"`
	Path     string        `yaml:"path,omitempty" env:"PATH"` // sqlite backend only
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
	S3       S3Config      `yaml:"s3,omitempty" envPrefix:"S3_"`
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint,omitempty" env:"ENDPOINT"`
	Bucket    string `yaml:"bucket,omitempty" env:"BUCKET"`
	Prefix    string `yaml:"prefix,omitempty" env:"PREFIX"`
	Region    string `yaml:"region,omitempty" env:"REGION"`
	AccessKey string `yaml:"access_key,omitempty" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key,omitempty" env:"SECRET_KEY"`
	UseSSL    bool   `yaml:"use_ssl" env:"USE_SSL"`
}

// AuthConfig holds the session signing settings. An empty secret leaves
// authentication unconfigured.
type AuthConfig struct {
	Secret string `yaml:"secret,omitempty" env:"SECRET"`
	Issuer string `yaml:"issuer" env:"ISSUER"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // "console" or "json"
}

// Default returns the configuration used when no file is present.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Local:   LocalConfig{Backend: LocalSQLite},
		Remote: RemoteConfig{
			Timeout:  10 * time.Second,
			Debounce: 600 * time.Millisecond,
			S3:       S3Config{Prefix: "rpg-data", UseSSL: true},
		},
		Auth: AuthConfig{Issuer: "rpgdash"},
		Log:  LogConfig{Level: "warn", Format: "console"},
	}
}

// DefaultDataDir returns ~/.rpgdash.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rpgdash"), nil
}

// ResolveDataDir picks the data directory: an explicit flag first, then
// RPGDASH_DATA_DIR, then the home default.
func ResolveDataDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if dir := os.Getenv(EnvPrefix + "DATA_DIR"); dir != "" {
		return dir, nil
	}
	return DefaultDataDir()
}

// LoadConfig reads config.yaml from dataDir, falling back to defaults when
// the file does not exist, then applies RPGDASH_* environment overrides.
func LoadConfig(dataDir string) (*Config, error) {
	return LoadConfigFile(dataDir, filepath.Join(dataDir, FileName))
}

// LoadConfigFile is LoadConfig with an explicit file path.
func LoadConfigFile(dataDir, path string) (*Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.yaml to the data directory.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfg.DataDir, FileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.Local.Backend {
	case LocalSQLite, LocalFile:
	default:
		return fmt.Errorf("unknown local backend %q", c.Local.Backend)
	}
	switch c.Remote.Backend {
	case RemoteNone, RemoteSQLite:
	case RemoteS3:
		if c.Remote.S3.Endpoint == "" || c.Remote.S3.Bucket == "" {
			return fmt.Errorf("s3 remote requires an endpoint and a bucket")
		}
	default:
		return fmt.Errorf("unknown remote backend %q", c.Remote.Backend)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Remote.Debounce < 0 || c.Remote.Timeout < 0 {
		return fmt.Errorf("remote durations must not be negative")
	}
	return nil
}

// LocalPath returns the local slot location for the configured backend.
func (c *Config) LocalPath() string {
	if c.Local.Path != "" {
		return c.Local.Path
	}
	if c.Local.Backend == LocalFile {
		return filepath.Join(c.DataDir, "slots.json")
	}
	return filepath.Join(c.DataDir, "rpgdash.db")
}

// RemotePath returns the sqlite mirror location.
func (c *Config) RemotePath() string {
	if c.Remote.Path != "" {
		return c.Remote.Path
	}
	return filepath.Join(c.DataDir, "remote.db")
}

// AuthConfigured reports whether sessions can be signed and verified.
func (c *Config) AuthConfigured() bool {
	return c.Auth.Secret != ""
}
