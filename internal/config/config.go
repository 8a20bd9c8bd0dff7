package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config defines server configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Transport   TransportConfig   `yaml:"transport"`
	DB          DBConfig          `yaml:"db"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Log         LogConfig         `yaml:"log"`
	Portal      PortalConfig      `yaml:"portal"`
	Notify      NotifyConfig      `yaml:"notify"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// DBConfig locates the ballot database. The default keeps ballots in memory.
type DBConfig struct {
	Path string `yaml:"path"`
}

// PreferencesConfig locates the durable preference database.
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// PortalConfig is the static portal setup loaded at start.
type PortalConfig struct {
	BaseURL            string   `yaml:"base_url"`
	Corporations       []string `yaml:"corporations"`
	DefaultCorporation string   `yaml:"default_corporation"`
	SeedDemo           bool     `yaml:"seed_demo"`
}

type NotifyConfig struct {
	ToastDuration time.Duration `yaml:"toast_duration"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		DB: DBConfig{
			Path: ":memory:",
		},
		Preferences: PreferencesConfig{
			Path: "~/.ballotdesk/preferences.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Portal: PortalConfig{
			BaseURL: "http://localhost:8080",
			Corporations: []string{
				"OC-123 Sunset Towers",
				"OC-456 Harbour View",
				"OC-789 Garden Court",
			},
			DefaultCorporation: "OC-123 Sunset Towers",
			SeedDemo:           true,
		},
		Notify: NotifyConfig{
			ToastDuration: 3 * time.Second,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("BALLOTDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("BALLOTDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BALLOTDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BALLOTDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("BALLOTDESK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("BALLOTDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if prefPath := os.Getenv("BALLOTDESK_PREFERENCES_PATH"); prefPath != "" {
		cfg.Preferences.Path = prefPath
	}
	if level := os.Getenv("BALLOTDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("BALLOTDESK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if baseURL := os.Getenv("BALLOTDESK_BASE_URL"); baseURL != "" {
		cfg.Portal.BaseURL = baseURL
	}

	var err error
	if cfg.Preferences.Path, err = expandPath(cfg.Preferences.Path); err != nil {
		return Config{}, err
	}
	if cfg.DB.Path, err = expandPath(cfg.DB.Path); err != nil {
		return Config{}, err
	}
	if cfg.Log.Path, err = expandPath(cfg.Log.Path); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values the server can't start with.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%w: transport mode %q", ErrInvalidConfig, c.Transport.Mode)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if len(c.Portal.Corporations) == 0 {
		return fmt.Errorf("%w: no owners corporations configured", ErrInvalidConfig)
	}
	if c.Preferences.Path == "" {
		return fmt.Errorf("%w: preferences path is empty", ErrInvalidConfig)
	}
	return nil
}

func expandPath(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return path, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", path, err)
	}
	return expanded, nil
}

func loadFromFile(path string, cfg *Config) error {
	path, err := expandPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
