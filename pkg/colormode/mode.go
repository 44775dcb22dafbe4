// Package colormode determines, persists, and propagates the light/dark
// color mode of a UI. It reconciles the declared configuration, the
// platform preference, a previously persisted choice, and scoped
// overrides into a single resolved mode, and generates the pre-paint
// bootstrap markup that applies that mode before first render.
package colormode

// StorageKey is the well-known key under which the chosen mode is
// persisted. The local preference store, the cookie backend, and the
// browser localStorage entry all use it.
const StorageKey = "shade-color-mode"

// Mode is a fully resolved color mode, always one of the two concrete
// values. Subscribers never observe anything else.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode validates a raw value against the two mode literals.
// Anything else, including "system", reads as absent.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	}
	return "", false
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// IsDark reports whether the mode is dark.
func (m Mode) IsDark() bool {
	return m == ModeDark
}

// InitialMode is the declared startup mode. Unlike Mode it admits
// "system", which defers to the platform preference.
type InitialMode string

const (
	InitialLight  InitialMode = "light"
	InitialDark   InitialMode = "dark"
	InitialSystem InitialMode = "system"
)

// ParseInitialMode validates a raw value against the three declared
// mode literals.
func ParseInitialMode(raw string) (InitialMode, bool) {
	switch InitialMode(raw) {
	case InitialLight:
		return InitialLight, true
	case InitialDark:
		return InitialDark, true
	case InitialSystem:
		return InitialSystem, true
	}
	return "", false
}

// Config declares how the startup mode is chosen. It is supplied once
// per application instance and immutable thereafter.
type Config struct {
	// Initial is the declared startup mode. Defaults to light.
	Initial InitialMode

	// UseSystem forces the platform preference while set. It outranks
	// a persisted choice and the runtime marker.
	UseSystem bool
}

// DefaultConfig returns the stock configuration: start light, do not
// follow the platform.
func DefaultConfig() Config {
	return Config{Initial: InitialLight}
}

// Resolution sources, carried for logging and display. They never feed
// back into resolution.
const (
	SourceSystem  = "system"
	SourceMarker  = "marker"
	SourceStored  = "stored"
	SourceDefault = "default"
)

// Resolution is the outcome of one pass of the priority order.
type Resolution struct {
	// Mode is the resolved mode.
	Mode Mode

	// Source identifies which lookup produced it.
	Source string
}
