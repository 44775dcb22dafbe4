package colormode

import (
	"context"
	"sync"

	"github.com/bnema/shade/internal/logging"
)

// callbackWrapper wraps a subscriber to enable pointer comparison for
// removal.
type callbackWrapper struct {
	fn func(Mode)
}

// Engine owns the resolved mode for one application instance. It runs
// the priority order at initialization, serves reads through the
// override stack, persists explicit choices best-effort, and notifies
// subscribers on change.
//
// Create one engine per application instance with NewEngine and release
// it with Close. Methods are safe for concurrent use: system change
// events arrive on watcher goroutines, so the engine serializes
// mutation instead of assuming a single UI thread. Mutations apply in
// call order, last write wins.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	store  Store
	system SystemSource

	initialized bool
	closed      bool
	resolved    Mode
	source      string
	marker      Mode
	hasMarker   bool
	overrides   []Mode
	callbacks   []*callbackWrapper
	unsubscribe func()
}

// NewEngine creates an engine over the given signals. store and system
// may be nil, which read as permanently absent. Before Initialize runs,
// the engine reports the declared initial fallback.
func NewEngine(cfg Config, store Store, system SystemSource) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		system:   system,
		resolved: initialFallback(cfg.Initial),
		source:   SourceDefault,
	}
}

// Initialize resolves the mode and attaches the system subscription.
// bootstrapped carries the marker a bootstrap pass applied, empty when
// none ran. Repeated calls return the current resolved mode without
// re-running the lookups or re-subscribing.
func (e *Engine) Initialize(ctx context.Context, bootstrapped Mode) Mode {
	e.mu.Lock()
	if e.initialized || e.closed {
		m := e.resolved
		e.mu.Unlock()
		return m
	}

	if m, ok := ParseMode(string(bootstrapped)); ok {
		e.marker = m
		e.hasMarker = true
	}

	res := Resolve(e.cfg, e.markerLookup(), e.storedLookup(ctx), e.systemLookup(ctx))
	e.resolved = res.Mode
	e.source = res.Source
	e.initialized = true

	if e.system != nil {
		e.unsubscribe = e.system.Subscribe(e.onSystemChange)
	}
	e.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("mode", string(res.Mode)).
		Str("source", res.Source).
		Msg("color mode initialized")
	return res.Mode
}

// Current returns the effective mode: the innermost override when one
// is active, the resolved mode otherwise.
func (e *Engine) Current() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.effectiveLocked()
}

// Resolved returns the global resolved mode, ignoring overrides.
func (e *Engine) Resolved() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolved
}

// Source reports which lookup produced the resolved mode.
func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Marker returns the session's runtime marker, if one was applied by a
// bootstrap pass or an earlier Set.
func (e *Engine) Marker() (Mode, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.marker, e.hasMarker
}

// Set updates the resolved mode, records the runtime marker, persists
// the choice, and notifies subscribers with the effective mode.
// Persistence failures are logged and swallowed. Under an active
// override the effective mode stays pinned until the override pops.
// Invalid values are ignored.
func (e *Engine) Set(ctx context.Context, mode Mode) {
	m, ok := ParseMode(string(mode))
	if !ok {
		logging.FromContext(ctx).Debug().
			Str("value", string(mode)).
			Msg("ignoring invalid color mode")
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.resolved = m
	e.source = SourceMarker
	e.marker = m
	e.hasMarker = true
	store := e.store
	eff := e.effectiveLocked()
	callbacks := e.snapshotCallbacksLocked()
	e.mu.Unlock()

	if store != nil {
		if err := store.Set(ctx, m); err != nil {
			logging.FromContext(ctx).Debug().Err(err).
				Str("mode", string(m)).
				Msg("color mode persist failed")
		}
	}
	for _, cb := range callbacks {
		cb.fn(eff)
	}
}

// Toggle sets the opposite of the resolved mode and returns it. Two
// toggles land back on the original mode, each persisting one write.
func (e *Engine) Toggle(ctx context.Context) Mode {
	e.mu.Lock()
	next := e.resolved.Opposite()
	e.mu.Unlock()
	e.Set(ctx, next)
	return next
}

// Subscribe registers fn for effective mode changes and returns the
// unregister function. Callbacks run outside the engine lock.
func (e *Engine) Subscribe(fn func(Mode)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	wrapper := &callbackWrapper{fn: fn}
	e.callbacks = append(e.callbacks, wrapper)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		for i, cb := range e.callbacks {
			if cb == wrapper {
				e.callbacks = append(e.callbacks[:i], e.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Close releases the system subscription and drops all subscribers.
// Later events and mutations are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	unsub := e.unsubscribe
	e.unsubscribe = nil
	e.callbacks = nil
	e.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// onSystemChange applies a platform preference flip. Only the
// forced-system branch re-evaluates after initialization, so the event
// is dropped unless UseSystem is set. The platform change never writes
// to storage, that is reserved for explicit choices.
func (e *Engine) onSystemChange(mode Mode) {
	m, ok := ParseMode(string(mode))
	if !ok {
		return
	}

	e.mu.Lock()
	if !e.initialized || e.closed || !e.cfg.UseSystem {
		e.mu.Unlock()
		return
	}
	before := e.effectiveLocked()
	e.resolved = m
	e.source = SourceSystem
	after := e.effectiveLocked()
	callbacks := e.snapshotCallbacksLocked()
	e.mu.Unlock()

	if before == after {
		return
	}
	for _, cb := range callbacks {
		cb.fn(after)
	}
}

// effectiveLocked returns the mode subscribers observe. Caller must
// hold e.mu.
func (e *Engine) effectiveLocked() Mode {
	if n := len(e.overrides); n > 0 {
		return e.overrides[n-1]
	}
	return e.resolved
}

// snapshotCallbacksLocked copies the callback list so invocation can
// happen outside the lock. Caller must hold e.mu.
func (e *Engine) snapshotCallbacksLocked() []*callbackWrapper {
	callbacks := make([]*callbackWrapper, len(e.callbacks))
	copy(callbacks, e.callbacks)
	return callbacks
}

func (e *Engine) markerLookup() Lookup {
	return func() (Mode, bool) {
		return e.marker, e.hasMarker
	}
}

func (e *Engine) storedLookup(ctx context.Context) Lookup {
	if e.store == nil {
		return nil
	}
	return func() (Mode, bool) {
		return e.store.Get(ctx)
	}
}

func (e *Engine) systemLookup(ctx context.Context) Lookup {
	if e.system == nil {
		return nil
	}
	return func() (Mode, bool) {
		return e.system.Current(ctx)
	}
}
