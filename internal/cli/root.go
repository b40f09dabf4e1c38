// Package cli provides the thin cobra-based command surface over the
// outline engine: validate, order and stats. The engine itself exposes no
// I/O; everything here is presentation.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "planlint",
		ReportTimestamp: false,
	})
)

var rootCmd = &cobra.Command{
	Use:   "planlint",
	Short: "outline parsing and dependency graph validation",
	Long: `planlint parses four-level project outlines (Milestone -> Epic ->
Story -> Task), validates their structure and dependency graph, and
computes a generation order for downstream content generation.`,
	Example: `  # Validate an outline file
  planlint validate roadmap.md

  # Validate against a project archetype checklist
  planlint validate roadmap.md --archetype web_app

  # Print the dependency-respecting generation order
  planlint order roadmap.md

  # Show parallel generation waves
  planlint order roadmap.md --waves

  # Show outline statistics
  planlint stats roadmap.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", ".planlint.json", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
