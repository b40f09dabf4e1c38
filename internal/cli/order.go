package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/internal/materialize"
	"github.com/planlint/planlint/internal/outline"
)

var orderWaves bool

var orderCmd = &cobra.Command{
	Use:   "order <file>",
	Short: "Print the dependency-respecting generation order",
	Long: `Materialize the outline and print a linearization in which every
dependency precedes its dependents. With --waves, items are grouped into
parallel generation waves by dependency depth instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrder(args[0], cmd.OutOrStdout())
	},
}

func init() {
	orderCmd.Flags().BoolVar(&orderWaves, "waves", false, "Group items into parallel generation waves")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(path string, out io.Writer) error {
	text, _, err := loadInput(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return NewExitError(ExitInvalidArguments)
	}

	o := outline.Parse(text)
	if o.Diagnostics.HasErrors() {
		logger.Warn("outline parsed with errors; order may be partial", "issues", o.Diagnostics.Len())
	}

	plan := materialize.Build(o)
	if plan.Size() == 0 {
		fmt.Fprintln(out, "outline contains no items")
		return NewExitError(ExitFatal)
	}

	if orderWaves {
		if _, err := plan.ComputeWaves(); err != nil {
			fmt.Fprintln(out, err)
			return NewExitError(ExitFatal)
		}
		fmt.Fprint(out, plan.RenderWaves())
		return nil
	}

	fmt.Fprint(out, plan.RenderOrder())
	return nil
}
