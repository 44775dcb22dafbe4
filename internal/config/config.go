// Package config provides configuration management for shade with Viper integration.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/shade/pkg/colormode"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for shade.
type Config struct {
	ColorMode ColorModeConfig `mapstructure:"color_mode" yaml:"color_mode"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Cookie    CookieConfig    `mapstructure:"cookie" yaml:"cookie"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ColorModeConfig holds the mode resolution preferences.
type ColorModeConfig struct {
	// Initial is the author-declared starting mode: light, dark or system.
	Initial string `mapstructure:"initial" yaml:"initial"`
	// UseSystem forces the OS preference while it is known.
	UseSystem bool `mapstructure:"use_system" yaml:"use_system"`
}

// ModeConfig converts the raw settings into the core package's config.
// Unknown initial values read as light.
func (c ColorModeConfig) ModeConfig() colormode.Config {
	initial, ok := colormode.ParseInitialMode(strings.ToLower(c.Initial))
	if !ok {
		initial = colormode.InitialLight
	}
	return colormode.Config{
		Initial:   initial,
		UseSystem: c.UseSystem,
	}
}

// StorageKind selects the persistence backend.
type StorageKind string

const (
	StorageKindSQLite StorageKind = "sqlite"
	StorageKindCookie StorageKind = "cookie"
)

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Kind StorageKind `mapstructure:"kind" yaml:"kind"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// CookieConfig holds the cookie attributes used by the HTTP helpers.
type CookieConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Path     string `mapstructure:"path" yaml:"path"`
	Domain   string `mapstructure:"domain" yaml:"domain"`
	MaxAge   int    `mapstructure:"max_age" yaml:"max_age"`
	Secure   bool   `mapstructure:"secure" yaml:"secure"`
	SameSite string `mapstructure:"same_site" yaml:"same_site"`
}

// Options converts the cookie settings into the core package's options.
func (c CookieConfig) Options() colormode.CookieOptions {
	sameSite := http.SameSiteLaxMode
	switch strings.ToLower(c.SameSite) {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}
	return colormode.CookieOptions{
		Name:     c.Name,
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		SameSite: sameSite,
	}
}

// ServerConfig holds the demo SSR server configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
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

	// Configure Viper - supports yaml, json, toml automatically
	v.SetConfigName("config") // Will find config.toml, config.yaml, config.json, etc.

	// Add config paths
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Set up environment variable support
	v.SetEnvPrefix("SHADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	bindings := map[string]string{
		"color_mode.initial":    "COLOR_MODE_INITIAL",
		"color_mode.use_system": "COLOR_MODE_USE_SYSTEM",
		"storage.kind":          "STORAGE_KIND",
		"database.path":         "DATABASE_PATH",
		"cookie.name":           "COOKIE_NAME",
		"cookie.secure":         "COOKIE_SECURE",
		"server.addr":           "SERVER_ADDR",
		"logging.level":         "LOGGING_LEVEL",
		"logging.format":        "LOGGING_FORMAT",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, "SHADE_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Ensure directories exist
	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	// Set defaults
	m.setDefaults()

	// Read config file if it exists
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshalConfig reads the viper state into a normalized, validated Config.
func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set database path if not specified
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// normalizeConfig folds enumerated string values to their canonical form.
// Unknown values fall back to defaults rather than failing the load.
func normalizeConfig(config *Config) {
	config.ColorMode.Initial = strings.ToLower(config.ColorMode.Initial)
	if _, ok := colormode.ParseInitialMode(config.ColorMode.Initial); !ok {
		config.ColorMode.Initial = string(colormode.InitialLight)
	}

	switch StorageKind(strings.ToLower(string(config.Storage.Kind))) {
	case StorageKindCookie:
		config.Storage.Kind = StorageKindCookie
	default:
		config.Storage.Kind = StorageKindSQLite
	}

	if config.Cookie.Name == "" {
		config.Cookie.Name = colormode.StorageKey
	}
	if config.Cookie.Path == "" {
		config.Cookie.Path = "/"
	}
	if config.Cookie.MaxAge == 0 {
		config.Cookie.MaxAge = defaultCookieMaxAge
	}
	switch strings.ToLower(config.Cookie.SameSite) {
	case "strict", "none":
		config.Cookie.SameSite = strings.ToLower(config.Cookie.SameSite)
	default:
		config.Cookie.SameSite = "lax"
	}
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
		return nil // Already watching
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		// Reload config
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		// Notify callbacks
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

// reload reloads the configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Color mode defaults
	m.viper.SetDefault("color_mode.initial", defaults.ColorMode.Initial)
	m.viper.SetDefault("color_mode.use_system", defaults.ColorMode.UseSystem)

	// Storage defaults
	m.viper.SetDefault("storage.kind", string(defaults.Storage.Kind))

	// Cookie defaults
	m.viper.SetDefault("cookie.name", defaults.Cookie.Name)
	m.viper.SetDefault("cookie.path", defaults.Cookie.Path)
	m.viper.SetDefault("cookie.domain", defaults.Cookie.Domain)
	m.viper.SetDefault("cookie.max_age", defaults.Cookie.MaxAge)
	m.viper.SetDefault("cookie.secure", defaults.Cookie.Secure)
	m.viper.SetDefault("cookie.same_site", defaults.Cookie.SameSite)

	// Server defaults
	m.viper.SetDefault("server.addr", defaults.Server.Addr)

	// Logging defaults
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)

	// Ship the schema next to the config so editors can validate it.
	if err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to generate config schema: %v\n", err)
	}
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
		// Return defaults if not initialized
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
