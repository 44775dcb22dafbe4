package colorscheme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

const (
	detectorNameTerminal = "terminal"
	priorityTerminal     = 5
)

// TerminalDetector infers the preference from the terminal background
// color. It is the weakest signal: the terminal theme and the desktop
// theme are free to disagree, so it only serves as a last resort for
// TUI contexts.
type TerminalDetector struct{}

// NewTerminalDetector creates a new terminal background detector.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{}
}

// Name implements Detector.
func (*TerminalDetector) Name() string {
	return detectorNameTerminal
}

// Priority implements Detector.
func (*TerminalDetector) Priority() int {
	return priorityTerminal
}

// Available implements Detector.
// Returns true when stdout is attached to a terminal.
func (*TerminalDetector) Available() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Detect implements Detector.
func (d *TerminalDetector) Detect() (prefersDark, ok bool) {
	if !d.Available() {
		return false, false
	}
	return lipgloss.HasDarkBackground(), true
}
