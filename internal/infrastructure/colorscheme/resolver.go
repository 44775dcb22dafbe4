// Package colorscheme detects the platform's light/dark preference.
// Detectors contribute signals by priority; the resolver serves the
// first answer and feeds preference flips to subscribers.
package colorscheme

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

// Detector reports one platform signal for the light/dark preference.
// Multiple detectors can be registered with different priorities.
type Detector interface {
	// Name returns a human-readable name for this detector.
	Name() string

	// Priority returns the detector's priority.
	// Higher values = higher priority (checked first).
	Priority() int

	// Available returns true if this detector can be used.
	Available() bool

	// Detect returns the detected preference and whether detection succeeded.
	// Returns (_, false) if unavailable or detection failed.
	Detect() (prefersDark bool, ok bool)
}

// callbackWrapper wraps a callback function to enable pointer comparison for removal.
type callbackWrapper struct {
	fn func(colormode.Mode)
}

// Resolver queries detectors in priority order and reports the first
// answer. It implements colormode.SystemSource: when every detector
// fails, the preference is absent. The fallback decision belongs to the
// priority order in pkg/colormode, never to this package.
type Resolver struct {
	mu        sync.RWMutex
	detectors []Detector
	callbacks []*callbackWrapper
	current   colormode.Mode
	known     bool
}

// NewResolver creates a resolver over the given detectors.
func NewResolver(detectors ...Detector) *Resolver {
	return &Resolver{detectors: detectors}
}

// NewDefaultResolver creates a resolver with every detector that can
// work on this platform: the native desktop signal, the GTK_THEME
// variable, gsettings, and the terminal background.
func NewDefaultResolver() *Resolver {
	detectors := []Detector{
		NewEnvDetector(),
		NewGsettingsDetector(),
		NewTerminalDetector(),
	}
	detectors = append(detectors, platformDetectors()...)
	return NewResolver(detectors...)
}

// Current implements colormode.SystemSource.
func (r *Resolver) Current(_ context.Context) (colormode.Mode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.detectLocked()
}

// detectLocked queries detectors by priority. Caller must hold at least
// a read lock.
func (r *Resolver) detectLocked() (colormode.Mode, bool) {
	// Sort detectors by priority (highest first)
	sorted := make([]Detector, len(r.detectors))
	copy(sorted, r.detectors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, detector := range sorted {
		if !detector.Available() {
			continue
		}
		prefersDark, ok := detector.Detect()
		if !ok {
			continue
		}
		if prefersDark {
			return colormode.ModeDark, true
		}
		return colormode.ModeLight, true
	}

	return "", false
}

// RegisterDetector adds a detector to the resolver.
// Safe to call at any time; the next query re-evaluates.
func (r *Resolver) RegisterDetector(detector Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
}

// Refresh re-queries the detectors and notifies subscribers when the
// reported preference changed. Call it when a platform event suggests
// the preference may have flipped.
func (r *Resolver) Refresh(ctx context.Context) (colormode.Mode, bool) {
	r.mu.Lock()
	mode, known := r.detectLocked()
	changed := known != r.known || (known && mode != r.current)
	r.current = mode
	r.known = known

	// Copy callbacks to avoid holding the lock during invocation.
	// Subscribers hear only about transitions into a concrete value.
	var callbacks []*callbackWrapper
	if changed && known {
		callbacks = make([]*callbackWrapper, len(r.callbacks))
		copy(callbacks, r.callbacks)
	}
	r.mu.Unlock()

	if changed {
		logging.FromContext(ctx).Debug().
			Str("mode", string(mode)).
			Bool("known", known).
			Msg("system color preference changed")
	}
	for _, cb := range callbacks {
		cb.fn(mode)
	}
	return mode, known
}

// Subscribe implements colormode.SystemSource. The callback fires from
// Refresh whenever the preference flips. Returns a function to
// unregister the callback.
func (r *Resolver) Subscribe(fn func(colormode.Mode)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Wrap callback to enable pointer comparison for removal
	wrapper := &callbackWrapper{fn: fn}
	r.callbacks = append(r.callbacks, wrapper)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		for i, cb := range r.callbacks {
			if cb == wrapper {
				r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
				return
			}
		}
	}
}
