package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"ghsearch/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Token      string             `toml:"token,omitempty"` // falls back to GITHUB_TOKEN
	Search     SearchSettings     `toml:"search"`
	Background BackgroundSettings `toml:"background"`
	HTTP       HTTPSettings       `toml:"http"`
	UISettings UISettings         `toml:"ui"`
}

// SearchSettings controls how typed text becomes search requests
type SearchSettings struct {
	BaseURL        string `toml:"base_url"`
	DebounceMs     int    `toml:"debounce_ms"`
	MinQueryLength int    `toml:"min_query_length"`
	LatestWins     bool   `toml:"latest_wins"`
}

// BackgroundSettings controls the unrelated periodic requests
type BackgroundSettings struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	IntervalMs int    `toml:"interval_ms"`
	Count      int    `toml:"count"`
}

// HTTPSettings controls the network driver
type HTTPSettings struct {
	TimeoutMs   int `toml:"timeout_ms"`
	MaxInFlight int `toml:"max_in_flight"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen  bool   `toml:"alt_screen"`
	Hyperlinks bool   `toml:"hyperlinks"`
	LogFile    string `toml:"log_file"`
}

// Debounce returns the quiet period before a search is issued
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// BackgroundInterval returns the period between background requests
func (c *Config) BackgroundInterval() time.Duration {
	return time.Duration(c.Background.IntervalMs) * time.Millisecond
}

// Timeout returns the per-request HTTP timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMs) * time.Millisecond
}

// ResolveToken returns the configured token or GITHUB_TOKEN from the environment
func (c *Config) ResolveToken() string {
	if c.Token != "" {
		return c.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error
	if _, err := url.ParseRequestURI(c.Search.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("search.base_url: %w", err))
	}
	if c.Search.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("search.debounce_ms must not be negative, got %d", c.Search.DebounceMs))
	}
	if c.Search.MinQueryLength < 1 {
		errs = append(errs, fmt.Errorf("search.min_query_length must be at least 1, got %d", c.Search.MinQueryLength))
	}
	if c.Background.Enabled {
		if _, err := url.ParseRequestURI(c.Background.URL); err != nil {
			errs = append(errs, fmt.Errorf("background.url: %w", err))
		}
		if c.Background.IntervalMs <= 0 {
			errs = append(errs, fmt.Errorf("background.interval_ms must be positive, got %d", c.Background.IntervalMs))
		}
		if c.Background.Count < 0 {
			errs = append(errs, fmt.Errorf("background.count must not be negative, got %d", c.Background.Count))
		}
	}
	if c.HTTP.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout_ms must be positive, got %d", c.HTTP.TimeoutMs))
	}
	if c.HTTP.MaxInFlight < 1 {
		errs = append(errs, fmt.Errorf("http.max_in_flight must be at least 1, got %d", c.HTTP.MaxInFlight))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns <user config dir>/ghsearch/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "ghsearch", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service for path with event bus support.
// An empty path selects DefaultPath.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file, returning the
// defaults when the file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			BaseURL:        "https://api.github.com/search/repositories",
			DebounceMs:     500,
			MinQueryLength: 1,
		},
		Background: BackgroundSettings{
			Enabled:    true,
			URL:        "http://www.google.com",
			IntervalMs: 1000,
			Count:      2,
		},
		HTTP: HTTPSettings{
			TimeoutMs:   10000,
			MaxInFlight: 4,
		},
		UISettings: UISettings{
			AltScreen:  true,
			Hyperlinks: true,
			LogFile:    "ghsearch.log",
		},
	}
}
