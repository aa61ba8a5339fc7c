package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VantageDataChat/docdeck/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/docdeck.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docdeck configuration file",
		Long: `Initialize creates a new .docdeck.yaml configuration file in the current directory.

The generated file documents every option: content sources, output paths,
page size and margins, theme color overrides and font directories.

Examples:
  # Create .docdeck.yaml in current directory
  docdeck init

  # Create config file at a specific path
  docdeck init -o myconfig.yaml

  # Force overwrite existing file
  docdeck init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/docdeck.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change:")
	fmt.Fprintln(out, "  - Content sources and output paths")
	fmt.Fprintln(out, "  - Page size and margins")
	fmt.Fprintln(out, "  - Theme colors and font directories")

	return nil
}
