package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "http://127.0.0.1:8000"
	DefaultTimeout      = 30 * time.Second
	DefaultTickInterval = 100 * time.Millisecond
	DefaultLogLevel     = "info"

	settingsFile = "config.yaml"
)

type Config struct {
	DataDir      string
	BaseURL      string
	Timeout      time.Duration
	DBPath       string
	LogPath      string
	LogLevel     string
	TickInterval time.Duration
}

// fileSettings mirrors config.yaml. Zero values leave the defaults in place.
type fileSettings struct {
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
	LogLevel string `yaml:"log_level"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:      dataDir,
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		DBPath:       filepath.Join(dataDir, "crux.db"),
		LogPath:      filepath.Join(dataDir, "crux.log"),
		LogLevel:     DefaultLogLevel,
		TickInterval: DefaultTickInterval,
	}, nil
}

// DefaultDataDir returns ~/.crux, falling back to ./.crux when the home
// directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".crux"
	}
	return filepath.Join(home, ".crux")
}

// SettingsPath is the location of the optional YAML settings file.
func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, settingsFile)
}

// Load builds the defaults for dataDir, then overlays config.yaml and the
// CRUX_* environment variables, in that order.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(cfg.SettingsPath()); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	settings := fileSettings{}
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return c.overlay(settings.BaseURL, settings.Timeout, settings.LogLevel)
}

func (c *Config) applyEnv() error {
	return c.overlay(os.Getenv("CRUX_BASE_URL"), os.Getenv("CRUX_TIMEOUT"), os.Getenv("CRUX_LOG_LEVEL"))
}

func (c *Config) overlay(baseURL, timeout, logLevel string) error {
	if v := strings.TrimSpace(baseURL); v != "" {
		c.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(logLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Override applies command-line values on top of everything else.
func (c *Config) Override(baseURL string, timeout time.Duration, logLevel string) error {
	if timeout > 0 {
		c.Timeout = timeout
	}
	if err := c.overlay(baseURL, "", logLevel); err != nil {
		return err
	}
	return c.Validate()
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Save writes the overridable settings back to config.yaml.
func (c Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := yaml.Marshal(fileSettings{
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout.String(),
		LogLevel: c.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
