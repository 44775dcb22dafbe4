//go:build darwin

package colorscheme

import (
	"os/exec"
	"strings"
)

const (
	detectorNameDefaults = "defaults"
	priorityDefaults     = 100
)

// DefaultsDetector reads the macOS appearance setting via the
// defaults command. AppleInterfaceStyle is only present while dark
// mode is active, so a missing key reads as light.
type DefaultsDetector struct{}

// NewDefaultsDetector creates a new macOS defaults detector.
func NewDefaultsDetector() *DefaultsDetector {
	return &DefaultsDetector{}
}

// Name implements Detector.
func (*DefaultsDetector) Name() string {
	return detectorNameDefaults
}

// Priority implements Detector.
func (*DefaultsDetector) Priority() int {
	return priorityDefaults
}

// Available implements Detector.
func (*DefaultsDetector) Available() bool {
	_, err := exec.LookPath("defaults")
	return err == nil
}

// Detect implements Detector.
func (d *DefaultsDetector) Detect() (prefersDark, ok bool) {
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		if _, exited := err.(*exec.ExitError); exited {
			// Key absent means the system is in light mode.
			return false, true
		}
		return false, false
	}
	return strings.TrimSpace(string(out)) == "Dark", true
}

func platformDetectors() []Detector {
	return []Detector{NewDefaultsDetector()}
}
