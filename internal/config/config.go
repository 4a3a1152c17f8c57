// Package config provides configuration management for skiff with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0o755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0o644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for skiff.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Zoom      ZoomConfig      `mapstructure:"zoom" yaml:"zoom"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search"`
	URL       URLConfig       `mapstructure:"url" yaml:"url"`
	Content   ContentConfig   `mapstructure:"content" yaml:"content"`
	Fonts     FontsConfig     `mapstructure:"fonts" yaml:"fonts"`
	Tabs      TabsConfig      `mapstructure:"tabs" yaml:"tabs"`
	Inspector InspectorConfig `mapstructure:"inspector" yaml:"inspector"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// Backend names the engine implementation tabs are built on.
type Backend string

const (
	BackendWebKit   Backend = "webkit"
	BackendChromium Backend = "chromium"
	BackendLite     Backend = "lite"
)

// EngineConfig selects and tunes the engine backend.
type EngineConfig struct {
	Backend   Backend `mapstructure:"backend" yaml:"backend"`
	UserAgent string  `mapstructure:"user_agent" yaml:"user_agent"`
	// RemoteDebuggingURL attaches the chromium backend to a running
	// browser instead of spawning one.
	RemoteDebuggingURL string `mapstructure:"remote_debugging_url" yaml:"remote_debugging_url"`
	Headless           bool   `mapstructure:"headless" yaml:"headless"`
	// FetchTimeout bounds a single page fetch in the lite backend.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
}

// ZoomConfig holds the zoom level ladder.
type ZoomConfig struct {
	// Levels are the allowed zoom percentages, ascending.
	Levels []int `mapstructure:"levels" yaml:"levels"`
	// Default is the starting percentage.
	Default int `mapstructure:"default" yaml:"default"`
	// TextOnly zooms text without scaling images where the backend can.
	TextOnly bool `mapstructure:"text_only" yaml:"text_only"`
}

// SearchConfig holds find-in-page behavior.
type SearchConfig struct {
	// IgnoreCase is one of "smart", "always" or "never".
	IgnoreCase  string `mapstructure:"ignore_case" yaml:"ignore_case"`
	Incremental bool   `mapstructure:"incremental" yaml:"incremental"`
	WrapAround  bool   `mapstructure:"wrap_around" yaml:"wrap_around"`
}

// URLConfig holds address-bar input handling.
type URLConfig struct {
	// SearchEngines maps an engine name to a template whose "{}"
	// placeholder receives the query. The DEFAULT key is the fallback.
	SearchEngines map[string]string `mapstructure:"search_engines" yaml:"search_engines"`
	// AutoSearch is one of "naive", "schemeless" or "never".
	AutoSearch string `mapstructure:"auto_search" yaml:"auto_search"`
	// OpenBaseURL opens an engine's base URL when the term is empty.
	OpenBaseURL bool `mapstructure:"open_base_url" yaml:"open_base_url"`
}

// ContentConfig holds per-page content switches.
type ContentConfig struct {
	JavaScript bool `mapstructure:"javascript" yaml:"javascript"`
	Images     bool `mapstructure:"images" yaml:"images"`
	Mute       bool `mapstructure:"mute" yaml:"mute"`
}

// FontsConfig holds page font sizing.
type FontsConfig struct {
	DefaultSize int `mapstructure:"default_size" yaml:"default_size"`
	MinimumSize int `mapstructure:"minimum_size" yaml:"minimum_size"`
}

// TabsConfig holds tab presentation behavior.
type TabsConfig struct {
	// FaviconsShow is one of "always", "never" or "pinned".
	FaviconsShow string `mapstructure:"favicons_show" yaml:"favicons_show"`
	// PinnedFrozen blocks navigation in pinned tabs.
	PinnedFrozen bool `mapstructure:"pinned_frozen" yaml:"pinned_frozen"`
}

// InspectorConfig holds developer-tools defaults.
type InspectorConfig struct {
	// DefaultPosition is the dock position when none is saved:
	// right, left, top, bottom or window.
	DefaultPosition string `mapstructure:"default_position" yaml:"default_position"`
}

// HistoryConfig holds visit-log behavior.
type HistoryConfig struct {
	// MaxItems caps listings in the history command.
	MaxItems int `mapstructure:"max_items" yaml:"max_items"`
}

// DatabaseConfig holds storage file locations. Empty paths resolve to
// the XDG defaults at load time.
type DatabaseConfig struct {
	Path      string `mapstructure:"path" yaml:"path"`
	StatePath string `mapstructure:"state_path" yaml:"state_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// Dir, when set, additionally writes a per-session log file there.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("SKIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"engine.backend":              "ENGINE_BACKEND",
		"engine.user_agent":           "ENGINE_USER_AGENT",
		"engine.remote_debugging_url": "ENGINE_REMOTE_DEBUGGING_URL",
		"engine.headless":             "ENGINE_HEADLESS",
		"zoom.default":                "ZOOM_DEFAULT",
		"zoom.text_only":              "ZOOM_TEXT_ONLY",
		"search.ignore_case":          "SEARCH_IGNORE_CASE",
		"search.incremental":          "SEARCH_INCREMENTAL",
		"search.wrap_around":          "SEARCH_WRAP_AROUND",
		"content.javascript":          "CONTENT_JAVASCRIPT",
		"content.images":              "CONTENT_IMAGES",
		"content.mute":                "CONTENT_MUTE",
		"database.path":               "DATABASE_PATH",
		"database.state_path":         "DATABASE_STATE_PATH",
		"logging.level":               "LOGGING_LEVEL",
		"logging.format":              "LOGGING_FORMAT",
		"logging.dir":                 "LOGGING_DIR",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, "SKIFF_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// SetConfigFile pins the manager to an explicit config file instead of
// the search path. Must be called before Load. A missing explicit file
// is an error rather than a trigger for writing defaults.
func (m *Manager) SetConfigFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viper.SetConfigFile(path)
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the defaults so the user has a file to edit.
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes viper's merged settings, resolves empty paths and
// validates the result.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Database.StatePath == "" {
		statePath, err := GetStateFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get state path: %w", err)
		}
		config.Database.StatePath = statePath
	}

	config.Engine.Backend = Backend(strings.ToLower(string(config.Engine.Backend)))
	if config.Engine.Backend == "" {
		config.Engine.Backend = BackendWebKit
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("engine.backend", string(defaults.Engine.Backend))
	m.viper.SetDefault("engine.user_agent", defaults.Engine.UserAgent)
	m.viper.SetDefault("engine.remote_debugging_url", defaults.Engine.RemoteDebuggingURL)
	m.viper.SetDefault("engine.headless", defaults.Engine.Headless)
	m.viper.SetDefault("engine.fetch_timeout", defaults.Engine.FetchTimeout)

	m.viper.SetDefault("zoom.levels", defaults.Zoom.Levels)
	m.viper.SetDefault("zoom.default", defaults.Zoom.Default)
	m.viper.SetDefault("zoom.text_only", defaults.Zoom.TextOnly)

	m.viper.SetDefault("search.ignore_case", defaults.Search.IgnoreCase)
	m.viper.SetDefault("search.incremental", defaults.Search.Incremental)
	m.viper.SetDefault("search.wrap_around", defaults.Search.WrapAround)

	m.viper.SetDefault("url.search_engines", defaults.URL.SearchEngines)
	m.viper.SetDefault("url.auto_search", defaults.URL.AutoSearch)
	m.viper.SetDefault("url.open_base_url", defaults.URL.OpenBaseURL)

	m.viper.SetDefault("content.javascript", defaults.Content.JavaScript)
	m.viper.SetDefault("content.images", defaults.Content.Images)
	m.viper.SetDefault("content.mute", defaults.Content.Mute)

	m.viper.SetDefault("fonts.default_size", defaults.Fonts.DefaultSize)
	m.viper.SetDefault("fonts.minimum_size", defaults.Fonts.MinimumSize)

	m.viper.SetDefault("tabs.favicons_show", defaults.Tabs.FaviconsShow)
	m.viper.SetDefault("tabs.pinned_frozen", defaults.Tabs.PinnedFrozen)

	m.viper.SetDefault("inspector.default_position", defaults.Inspector.DefaultPosition)

	m.viper.SetDefault("history.max_items", defaults.History.MaxItems)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// createDefaultConfig writes the merged defaults as a starter config file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := m.viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// Watch starts watching the global configuration for changes.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnConfigChange registers a callback for global configuration changes.
func OnConfigChange(callback func(*Config)) {
	if globalManager == nil {
		return
	}
	globalManager.OnConfigChange(callback)
}
