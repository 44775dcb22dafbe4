package colormode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Mode
		wantOk bool
	}{
		{name: "light", raw: "light", want: ModeLight, wantOk: true},
		{name: "dark", raw: "dark", want: ModeDark, wantOk: true},
		{name: "system is not a concrete mode", raw: "system", wantOk: false},
		{name: "empty", raw: "", wantOk: false},
		{name: "garbage", raw: "blue", wantOk: false},
		{name: "case sensitive", raw: "Dark", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMode(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMode_Opposite(t *testing.T) {
	assert.Equal(t, ModeDark, ModeLight.Opposite())
	assert.Equal(t, ModeLight, ModeDark.Opposite())

	// Opposite is an involution on the two concrete values
	assert.Equal(t, ModeLight, ModeLight.Opposite().Opposite())
	assert.Equal(t, ModeDark, ModeDark.Opposite().Opposite())
}

func TestMode_IsDark(t *testing.T) {
	assert.True(t, ModeDark.IsDark())
	assert.False(t, ModeLight.IsDark())
}

func TestParseInitialMode(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   InitialMode
		wantOk bool
	}{
		{name: "light", raw: "light", want: InitialLight, wantOk: true},
		{name: "dark", raw: "dark", want: InitialDark, wantOk: true},
		{name: "system", raw: "system", want: InitialSystem, wantOk: true},
		{name: "unknown", raw: "auto", wantOk: false},
		{name: "empty", raw: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInitialMode(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, InitialLight, cfg.Initial)
	assert.False(t, cfg.UseSystem)
}
