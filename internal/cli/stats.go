package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/internal/outline"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show outline item counts and project metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(path string, out io.Writer) error {
	text, _, err := loadInput(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return NewExitError(ExitInvalidArguments)
	}

	o := outline.Parse(text)
	stats := o.Stats()

	if o.Metadata.ProjectName != "" {
		fmt.Fprintf(out, "Project:    %s\n", o.Metadata.ProjectName)
	}
	if o.Metadata.ProjectType != "" {
		fmt.Fprintf(out, "Type:       %s\n", o.Metadata.ProjectType)
	}
	if o.Metadata.TechStack != "" {
		fmt.Fprintf(out, "Tech stack: %s\n", o.Metadata.TechStack)
	}
	fmt.Fprintf(out, "Milestones: %d\n", stats.Milestones)
	fmt.Fprintf(out, "Epics:      %d\n", stats.Epics)
	fmt.Fprintf(out, "Stories:    %d\n", stats.Stories)
	fmt.Fprintf(out, "Tasks:      %d\n", stats.Tasks)
	fmt.Fprintf(out, "Issues:     %d\n", o.Diagnostics.Len())
	return nil
}
