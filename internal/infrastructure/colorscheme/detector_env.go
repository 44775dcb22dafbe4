package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "GTK_THEME"
	priorityEnv     = 20
)

// EnvDetector detects the color preference from the GTK_THEME
// environment variable. Users who set it have stated their theme
// explicitly, so it outranks the desktop setting.
type EnvDetector struct{}

// NewEnvDetector creates a new environment variable-based detector.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{}
}

// Name implements Detector.
func (*EnvDetector) Name() string {
	return detectorNameEnv
}

// Priority implements Detector.
func (*EnvDetector) Priority() int {
	return priorityEnv
}

// Available implements Detector.
// Returns true if the GTK_THEME environment variable is set.
func (*EnvDetector) Available() bool {
	return os.Getenv("GTK_THEME") != ""
}

// Detect implements Detector.
// Checks if GTK_THEME contains "dark" (case-insensitive).
func (*EnvDetector) Detect() (prefersDark, ok bool) {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme == "" {
		return false, false
	}

	prefersDark = strings.Contains(strings.ToLower(gtkTheme), "dark")
	return prefersDark, true
}
