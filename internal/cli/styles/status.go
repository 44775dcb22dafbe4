package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/shade/pkg/colormode"
)

// StatusRenderer renders color mode status messages with styled output.
type StatusRenderer struct {
	theme *Theme
}

// NewStatusRenderer creates a new status renderer with the given theme.
func NewStatusRenderer(theme *Theme) *StatusRenderer {
	return &StatusRenderer{theme: theme}
}

// ModeReport is the full resolution state shown by the resolve command.
type ModeReport struct {
	Effective   colormode.Mode
	Resolved    colormode.Mode
	Source      string
	Stored      colormode.Mode
	StoredKnown bool
	System      colormode.Mode
	SystemKnown bool
	UseSystem   bool
}

// RenderReport renders the resolved mode with its inputs.
func (r *StatusRenderer) RenderReport(report ModeReport) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	modeStyle := r.theme.Highlight
	labelStyle := r.theme.Subtle
	valueStyle := r.theme.Normal

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"\n  %s %s %s\n\n",
		iconStyle.Render(ModeIcon(report.Effective.IsDark())),
		modeStyle.Render(string(report.Effective)),
		labelStyle.Render("via "+report.Source),
	))

	detail := func(label, value string) {
		sb.WriteString(fmt.Sprintf("    %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-10s", label)),
			valueStyle.Render(value),
		))
	}

	if report.Effective != report.Resolved {
		detail("resolved", string(report.Resolved))
	}
	detail("stored", orAbsent(report.Stored, report.StoredKnown))
	detail("system", orAbsent(report.System, report.SystemKnown))
	if report.UseSystem {
		detail("follow-os", "on")
	}

	return sb.String()
}

func orAbsent(mode colormode.Mode, known bool) string {
	if !known {
		return "absent"
	}
	return string(mode)
}

// RenderModeChange renders the confirmation after set/toggle.
func (r *StatusRenderer) RenderModeChange(mode colormode.Mode, persisted bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	modeStyle := r.theme.Highlight

	s := fmt.Sprintf(
		"\n  %s Color mode set to %s\n",
		iconStyle.Render(IconCheck),
		modeStyle.Render(string(mode)),
	)
	if !persisted {
		s += fmt.Sprintf("  %s %s\n",
			r.theme.WarningStyle.Render(IconWarning),
			r.theme.Subtle.Render("no local store configured; the choice is not persisted"),
		)
	}
	return s
}

// RenderConfigFile renders the config file path with its status.
func (r *StatusRenderer) RenderConfigFile(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	status := "not created yet, will be written on first run"
	if exists {
		status = "exists"
	}
	return fmt.Sprintf(
		"\n  %s Config %s\n  %s\n",
		iconStyle.Render(IconConfig),
		pathStyle.Render(path),
		r.theme.Subtle.Render(status),
	)
}

// RenderCreated renders a "file written" confirmation.
func (r *StatusRenderer) RenderCreated(label, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s %s %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Normal.Render(label),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *StatusRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
