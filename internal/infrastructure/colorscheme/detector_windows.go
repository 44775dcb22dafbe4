//go:build windows

package colorscheme

import (
	"golang.org/x/sys/windows/registry"
)

const (
	detectorNameRegistry = "registry"
	priorityRegistry     = 100

	personalizeKeyPath = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	appsUseLightTheme  = "AppsUseLightTheme"
)

// RegistryDetector reads the Windows app theme from the per-user
// Personalize registry key.
type RegistryDetector struct{}

// NewRegistryDetector creates a new Windows registry detector.
func NewRegistryDetector() *RegistryDetector {
	return &RegistryDetector{}
}

// Name implements Detector.
func (*RegistryDetector) Name() string {
	return detectorNameRegistry
}

// Priority implements Detector.
func (*RegistryDetector) Priority() int {
	return priorityRegistry
}

// Available implements Detector.
func (*RegistryDetector) Available() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	_ = key.Close()
	return true
}

// Detect implements Detector.
func (d *RegistryDetector) Detect() (prefersDark, ok bool) {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, false
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(appsUseLightTheme)
	if err != nil {
		return false, false
	}
	return value == 0, true
}

func platformDetectors() []Detector {
	return []Detector{NewRegistryDetector()}
}
