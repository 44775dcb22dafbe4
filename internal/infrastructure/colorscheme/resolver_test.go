package colorscheme

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/shade/pkg/colormode"
)

// mockDetector implements Detector for testing.
type mockDetector struct {
	name        string
	priority    int
	available   bool
	prefersDark bool
	detectOk    bool
}

func (m *mockDetector) Name() string         { return m.name }
func (m *mockDetector) Priority() int        { return m.priority }
func (m *mockDetector) Available() bool      { return m.available }
func (m *mockDetector) Detect() (bool, bool) { return m.prefersDark, m.detectOk }

func TestResolver_CurrentPriorityOrder(t *testing.T) {
	low := &mockDetector{name: "low", priority: 1, available: true, prefersDark: false, detectOk: true}
	high := &mockDetector{name: "high", priority: 10, available: true, prefersDark: true, detectOk: true}

	resolver := NewResolver(low, high)

	mode, ok := resolver.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestResolver_CurrentSkipsUnavailable(t *testing.T) {
	unavailable := &mockDetector{name: "unavailable", priority: 10, available: false, prefersDark: true, detectOk: true}
	fallback := &mockDetector{name: "fallback", priority: 1, available: true, prefersDark: false, detectOk: true}

	resolver := NewResolver(unavailable, fallback)

	mode, ok := resolver.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeLight, mode)
}

func TestResolver_CurrentSkipsFailedDetection(t *testing.T) {
	failing := &mockDetector{name: "failing", priority: 10, available: true, prefersDark: true, detectOk: false}
	working := &mockDetector{name: "working", priority: 1, available: true, prefersDark: true, detectOk: true}

	resolver := NewResolver(failing, working)

	mode, ok := resolver.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestResolver_CurrentAbsentWhenNothingDetects(t *testing.T) {
	unavailable := &mockDetector{name: "unavailable", priority: 10, available: false}
	failing := &mockDetector{name: "failing", priority: 1, available: true, detectOk: false}

	resolver := NewResolver(unavailable, failing)

	_, ok := resolver.Current(context.Background())
	assert.False(t, ok)
}

func TestResolver_CurrentAbsentWithoutDetectors(t *testing.T) {
	resolver := NewResolver()

	_, ok := resolver.Current(context.Background())
	assert.False(t, ok)
}

func TestResolver_RegisterDetector(t *testing.T) {
	resolver := NewResolver()

	_, ok := resolver.Current(context.Background())
	require.False(t, ok)

	resolver.RegisterDetector(&mockDetector{name: "late", priority: 1, available: true, prefersDark: true, detectOk: true})

	mode, ok := resolver.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestResolver_RefreshNotifiesOnChange(t *testing.T) {
	detector := &mockDetector{name: "mock", priority: 1, available: true, prefersDark: false, detectOk: true}
	resolver := NewResolver(detector)

	// Seed the current value.
	_, ok := resolver.Refresh(context.Background())
	require.True(t, ok)

	var mu sync.Mutex
	var notified []colormode.Mode
	resolver.Subscribe(func(mode colormode.Mode) {
		mu.Lock()
		notified = append(notified, mode)
		mu.Unlock()
	})

	detector.prefersDark = true
	mode, ok := resolver.Refresh(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)

	mu.Lock()
	assert.Equal(t, []colormode.Mode{colormode.ModeDark}, notified)
	mu.Unlock()
}

func TestResolver_RefreshSkipsNotifyWhenUnchanged(t *testing.T) {
	detector := &mockDetector{name: "mock", priority: 1, available: true, prefersDark: true, detectOk: true}
	resolver := NewResolver(detector)

	_, ok := resolver.Refresh(context.Background())
	require.True(t, ok)

	calls := 0
	resolver.Subscribe(func(colormode.Mode) { calls++ })

	_, ok = resolver.Refresh(context.Background())
	require.True(t, ok)
	assert.Zero(t, calls)
}

func TestResolver_RefreshSkipsNotifyWhenPreferenceLost(t *testing.T) {
	detector := &mockDetector{name: "mock", priority: 1, available: true, prefersDark: true, detectOk: true}
	resolver := NewResolver(detector)

	_, ok := resolver.Refresh(context.Background())
	require.True(t, ok)

	calls := 0
	resolver.Subscribe(func(colormode.Mode) { calls++ })

	detector.detectOk = false
	_, ok = resolver.Refresh(context.Background())
	assert.False(t, ok)
	assert.Zero(t, calls)

	// Preference coming back counts as a change again.
	detector.detectOk = true
	detector.prefersDark = false
	mode, ok := resolver.Refresh(context.Background())
	require.True(t, ok)
	assert.Equal(t, colormode.ModeLight, mode)
	assert.Equal(t, 1, calls)
}

func TestResolver_Unsubscribe(t *testing.T) {
	detector := &mockDetector{name: "mock", priority: 1, available: true, prefersDark: false, detectOk: true}
	resolver := NewResolver(detector)

	_, ok := resolver.Refresh(context.Background())
	require.True(t, ok)

	calls := 0
	unsubscribe := resolver.Subscribe(func(colormode.Mode) { calls++ })
	unsubscribe()

	detector.prefersDark = true
	_, ok = resolver.Refresh(context.Background())
	require.True(t, ok)
	assert.Zero(t, calls)
}

func TestResolver_ConcurrentAccess(t *testing.T) {
	detector := &mockDetector{name: "mock", priority: 1, available: true, prefersDark: true, detectOk: true}
	resolver := NewResolver(detector)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				resolver.Current(context.Background())
				resolver.Refresh(context.Background())
				unsubscribe := resolver.Subscribe(func(colormode.Mode) {})
				unsubscribe()
			}
		}()
	}
	wg.Wait()
}

func TestParseMonitorLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantValue string
		wantOk    bool
	}{
		{
			name:      "quoted value",
			line:      "color-scheme: 'prefer-dark'",
			wantValue: "prefer-dark",
			wantOk:    true,
		},
		{
			name:      "double quoted value",
			line:      `color-scheme: "prefer-light"`,
			wantValue: "prefer-light",
			wantOk:    true,
		},
		{
			name:      "default value",
			line:      "color-scheme: 'default'",
			wantValue: "default",
			wantOk:    true,
		},
		{
			name:   "no separator",
			line:   "prefer-dark",
			wantOk: false,
		},
		{
			name:   "empty value",
			line:   "color-scheme:",
			wantOk: false,
		},
		{
			name:   "empty line",
			line:   "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := parseMonitorLine(tt.line)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}
