// ABOUTME: Configuration loading and parsing for the cafe site
// ABOUTME: Supports YAML or TOML files with environment variable expansion, defaults, and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the config location.
const EnvConfigPath = "CAFESITE_CONFIG"

// Config represents the complete cafe site configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale" toml:"tailscale"`
	Database  DatabaseConfig  `yaml:"database" toml:"database"`
	Site      SiteConfig      `yaml:"site" toml:"site"`
	Admin     AdminConfig     `yaml:"admin" toml:"admin"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr" toml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"-" toml:"-"`

	ShutdownTimeoutRaw string `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// TailscaleConfig holds Tailscale tsnet configuration
type TailscaleConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Hostname  string `yaml:"hostname" toml:"hostname"`
	AuthKey   string `yaml:"auth_key" toml:"auth_key"`
	StateDir  string `yaml:"state_dir" toml:"state_dir"`
	Ephemeral bool   `yaml:"ephemeral" toml:"ephemeral"`
	HTTPS     bool   `yaml:"https" toml:"https"` // serve on :443 with tailnet certs
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Driver string `yaml:"driver" toml:"driver"` // "sqlite" (pure Go) or "sqlite3" (cgo)
}

// SiteConfig holds public site settings
type SiteConfig struct {
	Name    string `yaml:"name" toml:"name"`
	BaseURL string `yaml:"base_url" toml:"base_url"`
}

// AdminConfig holds admin panel settings
type AdminConfig struct {
	// SessionSecret signs session cookies. Empty means a random per-process secret.
	SessionSecret   string        `yaml:"session_secret" toml:"session_secret"`
	SessionLifetime time.Duration `yaml:"-" toml:"-"`

	SessionLifetimeRaw string `yaml:"session_lifetime" toml:"session_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Defaults applied by Load for unset fields.
const (
	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultDriver          = "sqlite"
	DefaultSiteName        = "Cafe"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultSessionLifetime = 12 * time.Hour
)

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are parsed as TOML; everything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, formatFor(path))
}

// Parse decodes raw configuration bytes in the given format ("yaml" or "toml").
func Parse(data []byte, format string) (*Config, error) {
	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	var cfg Config
	switch format {
	case "toml":
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" && !c.Tailscale.Enabled {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}
	if c.Site.Name == "" {
		c.Site.Name = DefaultSiteName
	}
	if c.Admin.SessionLifetime == 0 {
		c.Admin.SessionLifetime = DefaultSessionLifetime
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if !c.Tailscale.Enabled && c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required (or enable tailscale)")
	}

	// Tailscale requires a hostname
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	switch c.Database.Driver {
	case "", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("database.driver must be sqlite or sqlite3, got %q", c.Database.Driver)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Site.BaseURL != "" && !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base_url must start with http:// or https://")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Server.ShutdownTimeoutRaw != "" {
		cfg.Server.ShutdownTimeout, err = time.ParseDuration(cfg.Server.ShutdownTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing shutdown_timeout %q: %w", cfg.Server.ShutdownTimeoutRaw, err)
		}
	}

	if cfg.Admin.SessionLifetimeRaw != "" {
		cfg.Admin.SessionLifetime, err = time.ParseDuration(cfg.Admin.SessionLifetimeRaw)
		if err != nil {
			return fmt.Errorf("parsing session_lifetime %q: %w", cfg.Admin.SessionLifetimeRaw, err)
		}
	}

	return nil
}

// DefaultPath resolves the config file location: $CAFESITE_CONFIG, then
// $XDG_CONFIG_HOME/cafesite/site.yaml, then ~/.config/cafesite/site.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cafesite", "site.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cafesite", "site.yaml"), nil
}

// DefaultDatabasePath is where `cafesite init` points the database.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cafesite.db"
	}
	return filepath.Join(home, ".local", "share", "cafesite", "site.db")
}

// Starter renders a commented YAML config with the given session secret.
func Starter(dbPath, sessionSecret string) string {
	return fmt.Sprintf(`# cafesite configuration

server:
  http_addr: "%s"
  shutdown_timeout: "5s"

database:
  path: "%s"
  driver: "sqlite"   # or "sqlite3" for the cgo driver

site:
  name: "%s"
  base_url: ""

admin:
  session_secret: "%s"
  session_lifetime: "12h"

logging:
  level: "info"
  format: "text"     # or "json"

tailscale:
  enabled: false
  hostname: "cafesite"
  auth_key: "${TS_AUTHKEY}"
  ephemeral: false
  https: false
`, DefaultHTTPAddr, dbPath, DefaultSiteName, sessionSecret)
}
