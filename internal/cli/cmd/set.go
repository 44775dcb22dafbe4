package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/shade/internal/cli/styles"
	"github.com/bnema/shade/pkg/colormode"
)

var setCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Set the color mode",
	Long:      `Set the color mode explicitly and persist the choice.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(colormode.ModeLight), string(colormode.ModeDark)},
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	mode, ok := colormode.ParseMode(args[0])
	if !ok {
		return fmt.Errorf("invalid color mode %q (want light or dark)", args[0])
	}

	app.Engine.Set(app.Ctx(), mode)

	renderer := styles.NewStatusRenderer(app.Theme)
	fmt.Println(renderer.RenderModeChange(mode, app.Store != nil))
	return nil
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle between light and dark",
	Long:  `Flip the resolved color mode to its opposite and persist the choice.`,
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	next := app.Engine.Toggle(app.Ctx())

	renderer := styles.NewStatusRenderer(app.Theme)
	fmt.Println(renderer.RenderModeChange(next, app.Store != nil))
	return nil
}
