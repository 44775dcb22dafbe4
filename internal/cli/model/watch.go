// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/shade/internal/cli/styles"
	"github.com/bnema/shade/internal/infrastructure/colorscheme"
	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

// WatchModel is the Bubble Tea model for the live color mode view.
type WatchModel struct {
	// UI components
	help  help.Model
	keys  watchKeyMap
	theme *styles.Theme

	// State
	report        styles.ModeReport
	overrideDepth int
	statusMessage string
	width         int
	height        int

	// Dependencies
	ctx       context.Context
	engine    *colormode.Engine
	resolver  *colorscheme.Resolver
	store     colormode.Store
	useSystem bool

	// Engine notifications are pumped through this channel into Update.
	events      chan tea.Msg
	unsubscribe func()
}

// watchKeyMap defines keybindings for the watch view.
type watchKeyMap struct {
	Toggle   key.Binding
	Override key.Binding
	Pop      key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Override, k.Pop, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Override, k.Pop},
		{k.Refresh, k.Help, k.Quit},
	}
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle"),
		),
		Override: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "push override"),
		),
		Pop: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pop override"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-read OS preference"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModelConfig holds dependencies for the watch model.
type WatchModelConfig struct {
	Engine    *colormode.Engine
	Resolver  *colorscheme.Resolver
	Store     colormode.Store
	UseSystem bool
}

// modeChangedMsg is sent when the engine's effective mode moves.
type modeChangedMsg struct {
	mode colormode.Mode
}

// refreshDoneMsg is sent after an explicit OS preference re-read.
type refreshDoneMsg struct {
	mode  colormode.Mode
	known bool
}

// NewWatchModel creates a new live color mode view.
func NewWatchModel(ctx context.Context, cfg WatchModelConfig) WatchModel {
	const eventBuffer = 16
	events := make(chan tea.Msg, eventBuffer)

	unsubscribe := cfg.Engine.Subscribe(func(mode colormode.Mode) {
		select {
		case events <- modeChangedMsg{mode: mode}:
		default:
			// A slow terminal must not block the engine.
		}
	})

	m := WatchModel{
		help:        help.New(),
		keys:        defaultWatchKeyMap(),
		theme:       styles.NewTheme(cfg.Engine.Current()),
		width:       80,
		height:      24,
		ctx:         ctx,
		engine:      cfg.Engine,
		resolver:    cfg.Resolver,
		store:       cfg.Store,
		useSystem:   cfg.UseSystem,
		events:      events,
		unsubscribe: unsubscribe,
	}
	m.report = m.buildReport()
	return m
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent re-arms the engine notification pump.
func (m WatchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m WatchModel) buildReport() styles.ModeReport {
	report := styles.ModeReport{
		Effective: m.engine.Current(),
		Resolved:  m.engine.Resolved(),
		Source:    m.engine.Source(),
		UseSystem: m.useSystem,
	}
	if m.store != nil {
		report.Stored, report.StoredKnown = m.store.Get(m.ctx)
	}
	report.System, report.SystemKnown = m.resolver.Current(m.ctx)
	return report
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case modeChangedMsg:
		m.report = m.buildReport()
		m.theme = styles.NewTheme(msg.mode)
		m.statusMessage = fmt.Sprintf("mode changed to %s", msg.mode)
		return m, m.waitForEvent()

	case refreshDoneMsg:
		m.report = m.buildReport()
		if msg.known {
			m.statusMessage = fmt.Sprintf("OS preference: %s", msg.mode)
		} else {
			m.statusMessage = "OS preference unknown"
		}
		return m, nil
	}

	return m, nil
}

func (m WatchModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		next := m.engine.Toggle(m.ctx)
		m.report = m.buildReport()
		m.statusMessage = fmt.Sprintf("toggled to %s", next)
		return m, nil

	case key.Matches(msg, m.keys.Override):
		m.engine.PushOverride(m.engine.Current().Opposite())
		m.overrideDepth++
		m.report = m.buildReport()
		m.statusMessage = fmt.Sprintf("override pushed (depth %d)", m.overrideDepth)
		return m, nil

	case key.Matches(msg, m.keys.Pop):
		if m.overrideDepth == 0 {
			m.statusMessage = "no override to pop"
			return m, nil
		}
		m.engine.PopOverride()
		m.overrideDepth--
		m.report = m.buildReport()
		m.statusMessage = fmt.Sprintf("override popped (depth %d)", m.overrideDepth)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshSystem()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m WatchModel) refreshSystem() tea.Cmd {
	return func() tea.Msg {
		log := logging.FromContext(m.ctx)
		log.Debug().Msg("re-reading OS color preference")

		mode, known := m.resolver.Refresh(m.ctx)
		return refreshDoneMsg{mode: mode, known: known}
	}
}

// View implements tea.Model.
func (m WatchModel) View() string {
	t := m.theme

	header := t.BoxHeader.Render(fmt.Sprintf("%s  shade watch", styles.ModeIcon(m.report.Effective.IsDark())))

	row := func(label, value string) string {
		return fmt.Sprintf("%s %s",
			t.Subtle.Render(fmt.Sprintf("%-10s", label)),
			t.Normal.Render(value),
		)
	}

	rows := []string{
		fmt.Sprintf("%s %s",
			t.Subtle.Render(fmt.Sprintf("%-10s", "effective")),
			t.Badge.Render(string(m.report.Effective)),
		),
		row("resolved", string(m.report.Resolved)),
		row("source", m.report.Source),
		row("stored", watchValue(m.report.Stored, m.report.StoredKnown)),
		row("system", watchValue(m.report.System, m.report.SystemKnown)),
		row("follow-os", onOff(m.report.UseSystem)),
	}
	if m.overrideDepth > 0 {
		rows = append(rows, row("overrides", fmt.Sprintf("%d", m.overrideDepth)))
	}

	body := header + "\n"
	for _, r := range rows {
		body += r + "\n"
	}

	status := ""
	if m.statusMessage != "" {
		status = "\n" + t.Subtle.Render(m.statusMessage)
	}

	return t.Box.Render(body) + status + "\n" + m.help.View(m.keys)
}

func watchValue(mode colormode.Mode, known bool) string {
	if !known {
		return "absent"
	}
	return string(mode)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
