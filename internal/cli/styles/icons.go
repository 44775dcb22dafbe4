// Package styles provides reusable lipgloss-based TUI components.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" //  tag
	IconGitBranch = "" //  git branch
	IconCalendar  = "" //  calendar
	IconGithub    = "" //  github
	IconGo        = "" //  go gopher
	IconArrow     = "" //  arrow right

	// Diagnostics
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info

	// Color modes
	IconSun     = "" // sun (light mode)
	IconMoon    = "" // moon (dark mode)
	IconDesktop = "" // desktop (system preference)

	// Storage / config
	IconConfig   = "" // config
	IconDatabase = "" // database
	IconCookie   = "" // cookie

	// UI
	IconCursor = "" // chevron-right
	IconClock  = "" // clock
)

// ModeIcon returns the icon for a color mode value.
func ModeIcon(dark bool) string {
	if dark {
		return IconMoon
	}
	return IconSun
}
