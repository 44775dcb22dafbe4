package colormode

import "context"

//go:generate mockgen -source=system.go -destination=mocks/mock_system.go -package=mocks

// SystemSource reports the platform's light/dark preference.
//
// Current returns false when the platform cannot report a preference,
// which selects the fallback branches of the priority order. Subscribe
// registers a callback for preference flips and returns its release;
// platforms without change events keep the callback registered but
// never invoke it.
type SystemSource interface {
	Current(ctx context.Context) (Mode, bool)
	Subscribe(fn func(Mode)) (unsubscribe func())
}
