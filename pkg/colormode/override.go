package colormode

import "sync"

// PushOverride pins mode for a subtree scope. Pushes nest and the
// innermost frame wins. Overrides shadow the resolved mode without
// touching storage or the runtime marker. Subscribers are notified only
// when the effective mode actually changes. Invalid values are ignored.
func (e *Engine) PushOverride(mode Mode) {
	m, ok := ParseMode(string(mode))
	if !ok {
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	before := e.effectiveLocked()
	e.overrides = append(e.overrides, m)
	after := e.effectiveLocked()
	callbacks := e.snapshotCallbacksLocked()
	e.mu.Unlock()

	e.notifyChanged(before, after, callbacks)
}

// PopOverride leaves the innermost override scope. Frames must pop in
// reverse push order. Popping an empty stack is a no-op, a scope may
// tear down more than once.
func (e *Engine) PopOverride() {
	e.mu.Lock()
	if e.closed || len(e.overrides) == 0 {
		e.mu.Unlock()
		return
	}
	before := e.effectiveLocked()
	e.overrides = e.overrides[:len(e.overrides)-1]
	after := e.effectiveLocked()
	callbacks := e.snapshotCallbacksLocked()
	e.mu.Unlock()

	e.notifyChanged(before, after, callbacks)
}

// Override pushes mode and returns the matching pop, for releasing the
// scope with defer. The release is safe to call more than once; only
// the first call pops.
func (e *Engine) Override(mode Mode) func() {
	if _, ok := ParseMode(string(mode)); !ok {
		return func() {}
	}
	e.PushOverride(mode)

	var once sync.Once
	return func() {
		once.Do(e.PopOverride)
	}
}

func (e *Engine) notifyChanged(before, after Mode, callbacks []*callbackWrapper) {
	if before == after {
		return
	}
	for _, cb := range callbacks {
		cb.fn(after)
	}
}
