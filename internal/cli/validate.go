package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/internal/config"
	"github.com/planlint/planlint/internal/graph"
	"github.com/planlint/planlint/internal/issue"
	"github.com/planlint/planlint/internal/outline"
	"github.com/planlint/planlint/internal/structural"
)

var (
	validateArchetype string
	validateFormat    string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse an outline and report structural and graph issues",
	Long: `Parse an outline file and run the full validation pipeline:
parse diagnostics, structural checks (numbering, hierarchy, completeness,
scope balance, archetype components) and graph checks (references, cycles,
declared order, foundations).

Exit codes: 0 clean, 1 errors found, 2 fatal structural issues, 3 bad input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0], cmd.OutOrStdout())
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateArchetype, "archetype", "", "Project archetype checklist (web_app, mobile_app, api, saas, cli_tool)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format: text or yaml")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string, out io.Writer) error {
	text, cfg, err := loadInput(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return NewExitError(ExitInvalidArguments)
	}

	archetype := cfg.Archetype
	if validateArchetype != "" {
		archetype = validateArchetype
	}

	start := time.Now()
	report := &issue.Report{}

	structReport := structural.Validate(text, archetype, cfg.Structural())
	report.Merge(structReport)

	o := outline.Parse(text)
	report.Merge(&o.Diagnostics)

	// A fatally empty outline makes graph validation pointless.
	if !structReport.HasFatal() {
		report.Merge(graph.Validate(o))
	}

	stats := o.Stats()
	logger.Debug("validated outline",
		"milestones", stats.Milestones, "epics", stats.Epics,
		"stories", stats.Stories, "tasks", stats.Tasks,
		"issues", report.Len(), "elapsed", time.Since(start))

	if validateFormat == "yaml" {
		if err := renderYAML(out, report); err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
	} else {
		renderText(out, report)
	}

	return reportExitError(report)
}

// loadInput reads the outline file and the engine configuration.
func loadInput(path string) (string, *config.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading outline: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", nil, err
	}
	return string(data), cfg, nil
}
