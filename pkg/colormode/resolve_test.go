package colormode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func present(m Mode) Lookup {
	return func() (Mode, bool) { return m, true }
}

func absent() Lookup {
	return func() (Mode, bool) { return "", false }
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		marker     Lookup
		stored     Lookup
		system     Lookup
		want       Mode
		wantSource string
	}{
		{
			name:       "forced system wins over marker and stored",
			cfg:        Config{Initial: InitialDark, UseSystem: true},
			marker:     present(ModeDark),
			stored:     present(ModeDark),
			system:     present(ModeLight),
			want:       ModeLight,
			wantSource: SourceSystem,
		},
		{
			name:       "forced system absent falls back to initial literal",
			cfg:        Config{Initial: InitialDark, UseSystem: true},
			marker:     present(ModeLight),
			stored:     present(ModeLight),
			system:     absent(),
			want:       ModeDark,
			wantSource: SourceDefault,
		},
		{
			name:       "forced system absent treats system initial as light",
			cfg:        Config{Initial: InitialSystem, UseSystem: true},
			system:     absent(),
			want:       ModeLight,
			wantSource: SourceDefault,
		},
		{
			name:       "marker outranks stored",
			cfg:        Config{Initial: InitialLight},
			marker:     present(ModeDark),
			stored:     present(ModeLight),
			system:     present(ModeLight),
			want:       ModeDark,
			wantSource: SourceMarker,
		},
		{
			name:       "stored outranks initial literal",
			cfg:        Config{Initial: InitialLight},
			marker:     absent(),
			stored:     present(ModeDark),
			want:       ModeDark,
			wantSource: SourceStored,
		},
		{
			name:       "system initial resolves the platform",
			cfg:        Config{Initial: InitialSystem},
			marker:     absent(),
			stored:     absent(),
			system:     present(ModeDark),
			want:       ModeDark,
			wantSource: SourceSystem,
		},
		{
			name:       "system initial falls back to light when absent",
			cfg:        Config{Initial: InitialSystem},
			system:     absent(),
			want:       ModeLight,
			wantSource: SourceDefault,
		},
		{
			name:       "initial literal is the last resort",
			cfg:        Config{Initial: InitialDark},
			want:       ModeDark,
			wantSource: SourceDefault,
		},
		{
			name:       "zero config resolves light",
			cfg:        Config{},
			want:       ModeLight,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.cfg, tt.marker, tt.stored, tt.system)
			assert.Equal(t, tt.want, res.Mode)
			assert.Equal(t, tt.wantSource, res.Source)
		})
	}
}

func TestResolve_NilLookupsReadAsAbsent(t *testing.T) {
	res := Resolve(Config{Initial: InitialSystem}, nil, nil, nil)
	assert.Equal(t, ModeLight, res.Mode)
	assert.Equal(t, SourceDefault, res.Source)
}

func TestResolve_ForcedSystemNeverConsultsStorage(t *testing.T) {
	stored := Lookup(func() (Mode, bool) {
		t.Fatal("stored lookup must not run while the system flag is set")
		return "", false
	})

	res := Resolve(Config{Initial: InitialLight, UseSystem: true}, nil, stored, present(ModeDark))
	assert.Equal(t, ModeDark, res.Mode)
}

func TestResolve_LazyLookups(t *testing.T) {
	var storedCalls, systemCalls int
	stored := Lookup(func() (Mode, bool) {
		storedCalls++
		return ModeDark, true
	})
	system := Lookup(func() (Mode, bool) {
		systemCalls++
		return ModeLight, true
	})

	// Marker short-circuits everything below it
	res := Resolve(Config{Initial: InitialSystem}, present(ModeLight), stored, system)
	assert.Equal(t, ModeLight, res.Mode)
	assert.Equal(t, 0, storedCalls)
	assert.Equal(t, 0, systemCalls)
}
