// Package graph validates the dependency graph of a parsed outline:
// reference existence, cycle detection, declared-order sanity and
// keyword-level feature-foundation coverage.
package graph

import (
	"fmt"
	"strings"

	"github.com/planlint/planlint/internal/issue"
	"github.com/planlint/planlint/internal/outline"
)

// Issue types reported by the graph validator.
const (
	IssueUnknownDependency  = "unknown_dependency"
	IssueCircularDependency = "circular_dependency"
	IssueDeclaredOrder      = "declared_order"
	IssueMissingFoundation  = "missing_foundation"
	IssueMissingCategory    = "missing_category"
)

// Validate runs every graph-level check against a fully built outline.
// It never fails; all findings land in the returned report.
func Validate(o *outline.Outline) *issue.Report {
	report := &issue.Report{}
	checkReferences(o, report)
	checkCycles(o, report)
	checkDeclaredOrder(o, report)
	checkFoundations(o, report)
	checkForgottenCategories(o, report)
	return report
}

// checkReferences reports one error per dependency edge whose target ID is
// absent from the flat index.
func checkReferences(o *outline.Outline, report *issue.Report) {
	for _, item := range o.Items() {
		for _, dep := range item.Dependencies {
			if _, ok := o.Index[dep.TargetID]; !ok {
				report.Add(issue.Issue{
					Severity:     issue.SeverityError,
					ItemID:       item.ID,
					Type:         IssueUnknownDependency,
					Message:      fmt.Sprintf("%s %s depends on %s %s which does not exist", item.Type, item.ID, dep.Type, dep.TargetID),
					SuggestedFix: fmt.Sprintf("Remove the reference or add %s %s to the outline", dep.Type, dep.TargetID),
				})
			}
		}
	}
}

// frame is one level of the explicit DFS work-stack used for cycle
// detection. An explicit stack keeps pathological dependency chains from
// exhausting the call stack.
type frame struct {
	id   string
	next int // index of the next dependency edge to follow
}

// checkCycles walks the dependency graph depth-first with an explicit
// stack and an on-path set. A revisit of a node already on the current
// path is reported as a fatal circular dependency naming the path. The
// walk terminates on any input, including self-referential edges.
func checkCycles(o *outline.Outline, report *issue.Report) {
	visited := make(map[string]bool)

	for _, start := range o.Items() {
		if visited[start.ID] {
			continue
		}

		onPath := map[string]bool{start.ID: true}
		stack := []frame{{id: start.ID}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := o.Index[top.id].Dependencies

			if top.next >= len(deps) {
				visited[top.id] = true
				delete(onPath, top.id)
				stack = stack[:len(stack)-1]
				continue
			}

			depID := deps[top.next].TargetID
			top.next++

			if _, exists := o.Index[depID]; !exists {
				continue // missing targets are the reference check's job
			}
			if onPath[depID] {
				report.Add(issue.Issue{
					Severity:     issue.SeverityFatal,
					ItemID:       depID,
					Type:         IssueCircularDependency,
					Message:      fmt.Sprintf("circular dependency detected: %s", cyclePath(stack, depID)),
					SuggestedFix: "Remove one of the dependencies to break the cycle",
				})
				continue
			}
			if visited[depID] {
				continue
			}
			onPath[depID] = true
			stack = append(stack, frame{id: depID})
		}
	}
}

// cyclePath renders the portion of the DFS stack that forms the cycle.
func cyclePath(stack []frame, cycleStart string) string {
	startIdx := 0
	for i, f := range stack {
		if f.id == cycleStart {
			startIdx = i
			break
		}
	}
	ids := make([]string, 0, len(stack)-startIdx+1)
	for _, f := range stack[startIdx:] {
		ids = append(ids, f.id)
	}
	ids = append(ids, cycleStart)
	return strings.Join(ids, " -> ")
}

// checkDeclaredOrder warns when a dependency is declared later in the
// document than its dependent. Advisory only: generation order is governed
// by the graph, not by text position.
func checkDeclaredOrder(o *outline.Outline, report *issue.Report) {
	position := make(map[string]int, len(o.Items()))
	for i, item := range o.Items() {
		position[item.ID] = i
	}

	for _, item := range o.Items() {
		for _, dep := range item.Dependencies {
			depPos, ok := position[dep.TargetID]
			if !ok {
				continue
			}
			if depPos > position[item.ID] {
				report.Add(issue.Issue{
					Severity: issue.SeverityWarning,
					ItemID:   item.ID,
					Type:     IssueDeclaredOrder,
					Message:  fmt.Sprintf("%s %s depends on %s which is declared later in the outline", item.Type, item.ID, dep.TargetID),
				})
			}
		}
	}
}

// corpus concatenates the lowercased title+description of every item.
func corpus(o *outline.Outline) string {
	var sb strings.Builder
	for _, item := range o.Items() {
		sb.WriteString(strings.ToLower(item.Text()))
		sb.WriteString(" ")
	}
	return sb.String()
}
