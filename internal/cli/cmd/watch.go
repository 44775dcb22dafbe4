package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/shade/internal/cli/model"
	"github.com/bnema/shade/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the color mode live in a TUI",
	Long: `Opens a terminal view that tracks the effective color mode as it
changes. Desktop preference flips are picked up while the view is open,
and the mode can be toggled or overridden from the keyboard.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)

	if app.Monitor.Available() {
		if err := app.Monitor.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("desktop preference monitor failed to start")
		} else {
			defer app.Monitor.Stop()
		}
	} else {
		log.Debug().Msg("gsettings not found, desktop preference changes will not be tracked")
	}

	m := model.NewWatchModel(ctx, model.WatchModelConfig{
		Engine:    app.Engine,
		Resolver:  app.Resolver,
		Store:     app.Store,
		UseSystem: app.Config.ColorMode.UseSystem,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run watch view: %w", err)
	}
	return nil
}
