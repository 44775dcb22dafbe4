// Package config provides default configuration values for shade.
package config

import (
	"github.com/bnema/shade/pkg/colormode"
)

// Default configuration constants
const (
	// Cookie defaults
	defaultCookieMaxAge = 365 * 24 * 60 * 60 // one year, in seconds

	// Server defaults
	defaultServerAddr = "127.0.0.1:8675"
)

// DefaultConfig returns the default configuration values for shade.
func DefaultConfig() *Config {
	return &Config{
		ColorMode: ColorModeConfig{
			Initial:   string(colormode.InitialLight),
			UseSystem: false,
		},
		Storage: StorageConfig{
			Kind: StorageKindSQLite,
		},
		Database: DatabaseConfig{
			Path: "", // resolved to the XDG data directory at load time
		},
		Cookie: CookieConfig{
			Name:     colormode.StorageKey,
			Path:     "/",
			MaxAge:   defaultCookieMaxAge,
			SameSite: "lax",
		},
		Server: ServerConfig{
			Addr: defaultServerAddr,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // console or json
		},
	}
}
