// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values after
// normalization. Enumerated strings are already canonical by the time
// this runs, so only structural problems are reported.
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Database.Path == "" {
		validationErrors = append(validationErrors, "database.path cannot be empty")
	}

	if config.Cookie.Name == "" {
		validationErrors = append(validationErrors, "cookie.name cannot be empty")
	}
	if strings.ContainsAny(config.Cookie.Name, " ;,=") {
		validationErrors = append(validationErrors, fmt.Sprintf("cookie.name contains invalid characters (got: %s)", config.Cookie.Name))
	}
	if config.Cookie.MaxAge < 0 {
		validationErrors = append(validationErrors, "cookie.max_age must be non-negative")
	}

	if config.Server.Addr == "" {
		validationErrors = append(validationErrors, "server.addr cannot be empty")
	}

	switch config.Logging.Format {
	case "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be 'console' or 'json' (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}
