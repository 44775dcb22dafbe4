package styles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/shade/internal/cli/styles"
	"github.com/bnema/shade/pkg/colormode"
)

func TestStatusRenderer_RenderReport(t *testing.T) {
	theme := styles.NewTheme(colormode.ModeDark)
	r := styles.NewStatusRenderer(theme)

	out := r.RenderReport(styles.ModeReport{
		Effective:   colormode.ModeDark,
		Resolved:    colormode.ModeDark,
		Source:      "stored",
		Stored:      colormode.ModeDark,
		StoredKnown: true,
		SystemKnown: false,
	})

	require.Contains(t, out, "dark")
	require.Contains(t, out, "via stored")
	require.Contains(t, out, "absent")
}

func TestStatusRenderer_RenderReportShowsResolvedUnderOverride(t *testing.T) {
	theme := styles.NewTheme(colormode.ModeLight)
	r := styles.NewStatusRenderer(theme)

	out := r.RenderReport(styles.ModeReport{
		Effective: colormode.ModeDark,
		Resolved:  colormode.ModeLight,
		Source:    "default",
	})

	require.Contains(t, out, "resolved")
	require.Contains(t, out, "light")
}

func TestStatusRenderer_RenderModeChange(t *testing.T) {
	theme := styles.NewTheme(colormode.ModeLight)
	r := styles.NewStatusRenderer(theme)

	out := r.RenderModeChange(colormode.ModeLight, true)
	require.Contains(t, out, "light")
	assert.NotContains(t, out, "not persisted")

	out = r.RenderModeChange(colormode.ModeDark, false)
	require.Contains(t, out, "not persisted")
}

func TestStatusRenderer_RenderError(t *testing.T) {
	theme := styles.NewTheme(colormode.ModeLight)
	r := styles.NewStatusRenderer(theme)

	out := r.RenderError(errors.New("boom"))
	require.Contains(t, out, "boom")
}
