package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docdeck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docdeck",
		Short: "Render a technical report and a slide deck from one theme",
		Long: `docdeck renders static content into two artifacts: a paginated PDF
report and a PPTX slide deck. Both are styled from the same theme, so
colors and typography stay consistent between them.

The Uy-Joy report and deck are built in. Point --report and --deck at
YAML files to render other content.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
