package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/shade/internal/cli/styles"
	"github.com/bnema/shade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the config file location, create it, or generate its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults",
	Long:  `Write a config file with all default settings to the XDG config directory.`,
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the config JSON schema",
	Long:  `Write a JSON schema for the config file, for editor validation.`,
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewStatusRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	_, statErr := os.Stat(configFile)
	fmt.Println(renderer.RenderConfigFile(configFile, statErr == nil))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewStatusRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	// Loading the config writes the default file when none exists yet.
	if _, statErr := os.Stat(configFile); statErr == nil {
		fmt.Println(renderer.RenderConfigFile(configFile, true))
		return nil
	}

	mgr, err := config.NewManager()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if err := mgr.Load(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	fmt.Println(renderer.RenderCreated("Wrote default config to", configFile))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewStatusRenderer(app.Theme)

	if err := config.GenerateSchemaFile(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	fmt.Println(renderer.RenderCreated("Wrote schema to", filepath.Join(configDir, "config.schema.json")))
	return nil
}
