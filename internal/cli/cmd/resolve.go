package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/shade/internal/cli/styles"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the current color mode",
	Long: `Resolve the effective color mode from the stored choice, the OS
preference, and the configured initial mode, and show where the
answer came from.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")
}

func runResolve(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	report := app.Report(app.Ctx())

	if resolveJSON {
		return printReportJSON(report)
	}

	renderer := styles.NewStatusRenderer(app.Theme)
	fmt.Println(renderer.RenderReport(report))
	return nil
}

// resolveOutput is the JSON shape of a resolution report.
type resolveOutput struct {
	Mode      string `json:"mode"`
	Resolved  string `json:"resolved"`
	Source    string `json:"source"`
	Stored    string `json:"stored,omitempty"`
	System    string `json:"system,omitempty"`
	UseSystem bool   `json:"use_system"`
}

func printReportJSON(report styles.ModeReport) error {
	out := resolveOutput{
		Mode:      string(report.Effective),
		Resolved:  string(report.Resolved),
		Source:    report.Source,
		UseSystem: report.UseSystem,
	}
	if report.StoredKnown {
		out.Stored = string(report.Stored)
	}
	if report.SystemKnown {
		out.System = string(report.System)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
