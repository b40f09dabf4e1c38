// Package issue defines the typed diagnostics produced by outline parsing
// and validation. Malformed input never surfaces as a Go error; every
// problem becomes an Issue collected into a Report alongside the
// best-effort parsed structure.
package issue

import (
	"fmt"
	"strings"
)

// Severity classifies how blocking an issue is for downstream generation.
type Severity int

const (
	// SeverityInfo is advisory only (missing recommended component, etc.).
	SeverityInfo Severity = iota
	// SeverityWarning is surfaced but the caller decides whether to proceed.
	SeverityWarning
	// SeverityError is reported but non-blocking by itself (e.g. a missing
	// dependency target).
	SeverityError
	// SeverityFatal blocks downstream generation unless explicitly
	// overridden (empty outline, dependency cycle).
	SeverityFatal
)

// String returns the string representation of a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Issue is a single typed diagnostic tied to an outline item.
type Issue struct {
	Severity     Severity
	ItemID       string // Hierarchical item ID the issue refers to, if any
	Type         string // Machine-readable issue type (e.g. "numbering_gap")
	Message      string // Human-readable description
	SuggestedFix string // Optional suggestion for resolving the issue
}

// String formats the issue for single-line display.
func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", i.Severity, i.Type))
	if i.ItemID != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", i.ItemID))
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}

// Report collects issues in the order they were found.
type Report struct {
	Issues []Issue
}

// Add appends an issue to the report.
func (r *Report) Add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// Merge appends all issues from another report, preserving order.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// bySeverity returns all issues with the given severity.
func (r *Report) bySeverity(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Fatals returns all fatal structural issues.
func (r *Report) Fatals() []Issue { return r.bySeverity(SeverityFatal) }

// Errors returns all error-level issues.
func (r *Report) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns all warning-level issues.
func (r *Report) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

// Infos returns all informational issues.
func (r *Report) Infos() []Issue { return r.bySeverity(SeverityInfo) }

// HasFatal reports whether the report contains fatal structural issues.
func (r *Report) HasFatal() bool { return len(r.Fatals()) > 0 }

// HasErrors reports whether the report contains error or fatal issues.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0 || r.HasFatal()
}

// Len returns the total number of issues.
func (r *Report) Len() int { return len(r.Issues) }
