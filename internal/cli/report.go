package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/planlint/planlint/internal/issue"
)

var severityColors = map[issue.Severity]*color.Color{
	issue.SeverityFatal:   color.New(color.FgRed, color.Bold),
	issue.SeverityError:   color.New(color.FgRed),
	issue.SeverityWarning: color.New(color.FgYellow),
	issue.SeverityInfo:    color.New(color.FgCyan),
}

// renderText writes a human-readable issue listing.
func renderText(w io.Writer, report *issue.Report) {
	for _, i := range report.Issues {
		label := i.Severity.String()
		if c, ok := severityColors[i.Severity]; ok {
			label = c.Sprint(label)
		}
		fmt.Fprintf(w, "%s %s", label, i.Type)
		if i.ItemID != "" {
			fmt.Fprintf(w, " (%s)", i.ItemID)
		}
		fmt.Fprintf(w, ": %s\n", i.Message)
		if i.SuggestedFix != "" {
			fmt.Fprintf(w, "  fix: %s\n", i.SuggestedFix)
		}
	}
	fmt.Fprintf(w, "\n%d fatal, %d errors, %d warnings, %d infos\n",
		len(report.Fatals()), len(report.Errors()), len(report.Warnings()), len(report.Infos()))
}

// issueYAML is the machine-readable projection of an issue.
type issueYAML struct {
	Severity     string `yaml:"severity"`
	ItemID       string `yaml:"item_id,omitempty"`
	Type         string `yaml:"issue_type"`
	Message      string `yaml:"message"`
	SuggestedFix string `yaml:"suggested_fix,omitempty"`
}

// renderYAML writes the report as a YAML document.
func renderYAML(w io.Writer, report *issue.Report) error {
	out := make([]issueYAML, 0, report.Len())
	for _, i := range report.Issues {
		out = append(out, issueYAML{
			Severity:     i.Severity.String(),
			ItemID:       i.ItemID,
			Type:         i.Type,
			Message:      i.Message,
			SuggestedFix: i.SuggestedFix,
		})
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(map[string]interface{}{"issues": out})
}

// reportExitError maps a report to the command's exit error, nil on success.
func reportExitError(report *issue.Report) error {
	switch {
	case report.HasFatal():
		return NewExitError(ExitFatal)
	case len(report.Errors()) > 0:
		return NewExitError(ExitIssuesFound)
	default:
		return nil
	}
}
