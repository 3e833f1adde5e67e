package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "WRITERFOLIO_"
	defaultConfigFile = "writerfolio.yml"
)

// Upload strategies. A pre-upload sends the image to the upload endpoint first
// and stores the returned URL; inline embeds the file in the record request.
const (
	UploadPreUpload = "preupload"
	UploadInline    = "inline"
)

// Provider exposes configuration values to the rest of the application.
// Handlers and services depend on this interface so tests can substitute it.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetSessionSecret() string
	GetSessionMaxAge() int
	GetUploadStrategy() string
	GetUploadMaxBytes() int64
	GetUploadAllowedTypes() []string
	GetUploadStagingDir() string
	GetUploadRetries() int
	GetActivityDBPath() string
	GetActivityCapacity() int
}

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `koanf:"server" yaml:"server"`
	API      APIConfig      `koanf:"api" yaml:"api"`
	Session  SessionConfig  `koanf:"session" yaml:"session"`
	Upload   UploadConfig   `koanf:"upload" yaml:"upload"`
	Activity ActivityConfig `koanf:"activity" yaml:"activity"`
}

type ServerConfig struct {
	Addr    string `koanf:"addr" yaml:"addr"`
	BaseURL string `koanf:"base_url" yaml:"base_url"`
}

// APIConfig points at the content backend.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

type SessionConfig struct {
	Secret string `koanf:"secret" yaml:"secret"`
	MaxAge int    `koanf:"max_age" yaml:"max_age"`
}

// UploadConfig controls how admin image uploads are staged and forwarded.
type UploadConfig struct {
	Strategy     string   `koanf:"strategy" yaml:"strategy"`
	MaxBytes     int64    `koanf:"max_bytes" yaml:"max_bytes"`
	AllowedTypes []string `koanf:"allowed_types" yaml:"allowed_types"`
	StagingDir   string   `koanf:"staging_dir" yaml:"staging_dir"`
	Retries      int      `koanf:"retries" yaml:"retries"`
}

// ActivityConfig selects where the admin activity feed is kept. An empty
// DBPath keeps the feed in memory only.
type ActivityConfig struct {
	DBPath   string `koanf:"db_path" yaml:"db_path"`
	Capacity int    `koanf:"capacity" yaml:"capacity"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8080",
			BaseURL: "http://localhost:8080",
		},
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			MaxAge: 86400 * 7,
		},
		Upload: UploadConfig{
			Strategy:     UploadPreUpload,
			MaxBytes:     5 << 20,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
			StagingDir:   os.TempDir(),
			Retries:      2,
		},
		Activity: ActivityConfig{
			Capacity: 50,
		},
	}
}

// New loads configuration from .env, the optional YAML file named by
// WRITERFOLIO_CONFIG and WRITERFOLIO_* environment variables, in that order.
// It exits the process when the result is invalid.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	path := os.Getenv(envPrefix + "CONFIG")
	if path == "" {
		path = defaultConfigFile
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Load reads the YAML file at path (if it exists) over the defaults and then
// overlays environment variables. WRITERFOLIO_API_BASE_URL maps to api.base_url.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey turns WRITERFOLIO_UPLOAD_MAX_BYTES into upload.max_bytes. Only the
// first underscore separates the section, the rest belong to the key name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "config" {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url %q must be an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("session.secret must be at least 16 characters")
	}
	switch c.Upload.Strategy {
	case UploadPreUpload, UploadInline:
	default:
		return fmt.Errorf("invalid upload.strategy %q: must be %s or %s", c.Upload.Strategy, UploadPreUpload, UploadInline)
	}
	if c.Upload.MaxBytes < 0 {
		return fmt.Errorf("upload.max_bytes must be non-negative")
	}
	if c.Upload.Retries < 0 {
		return fmt.Errorf("upload.retries must be non-negative")
	}
	if c.Activity.Capacity <= 0 {
		return fmt.Errorf("activity.capacity must be positive")
	}
	return nil
}

func (c *Config) GetServerAddr() string { return c.Server.Addr }
func (c *Config) GetAppBaseURL() string { return c.Server.BaseURL }
func (c *Config) GetAPIBaseURL() string { return c.API.BaseURL }
func (c *Config) GetAPITimeout() time.Duration { return c.API.Timeout }
func (c *Config) GetSessionSecret() string { return c.Session.Secret }
func (c *Config) GetSessionMaxAge() int { return c.Session.MaxAge }
func (c *Config) GetUploadStrategy() string { return c.Upload.Strategy }
func (c *Config) GetUploadMaxBytes() int64 { return c.Upload.MaxBytes }
func (c *Config) GetUploadAllowedTypes() []string { return c.Upload.AllowedTypes }
func (c *Config) GetUploadStagingDir() string { return c.Upload.StagingDir }
func (c *Config) GetUploadRetries() int { return c.Upload.Retries }
func (c *Config) GetActivityDBPath() string { return c.Activity.DBPath }
func (c *Config) GetActivityCapacity() int { return c.Activity.Capacity }
