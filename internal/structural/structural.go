// Package structural implements fast regex-level outline checks that run
// on raw header lines, before the semantic tree or dependency graph exists.
// It is the cheap pre-check gate ahead of graph validation and generation.
package structural

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/planlint/planlint/internal/issue"
	"github.com/planlint/planlint/internal/outline"
)

// Issue types reported by the structural validator.
const (
	IssueEmptyOutline         = "empty_outline"
	IssueDuplicateNumber      = "duplicate_number"
	IssueNumberingGap         = "numbering_gap"
	IssueOrphanItem           = "orphan_item"
	IssueMissingChildren      = "missing_children"
	IssueStoryWithoutTasks    = "story_without_tasks"
	IssueScopeImbalance       = "scope_imbalance"
	IssueMissingComponent     = "missing_component"
	IssueRecommendedComponent = "missing_recommended_component"
)

// Config holds the tunable scope-balance thresholds. The ratios and floors
// are heuristics, not invariants; callers load them from configuration.
type Config struct {
	BalanceLowRatio  float64 // flag below this fraction of the mean
	BalanceHighRatio float64 // flag above this multiple of the mean
	BalanceLowFloor  int     // ...and only below this absolute count
	BalanceHighFloor int     // ...and only above this absolute count
}

// DefaultConfig returns the default structural thresholds.
func DefaultConfig() Config {
	return Config{
		BalanceLowRatio:  0.3,
		BalanceHighRatio: 2.0,
		BalanceLowFloor:  3,
		BalanceHighFloor: 10,
	}
}

// Validate runs every structural check against raw outline text. The
// archetype selects the component checklist; an empty or unknown archetype
// skips that check. Validate never fails; all findings land in the report.
func Validate(text, archetype string, cfg Config) *issue.Report {
	report := &issue.Report{}
	headers := outline.ScanHeaders(text)

	milestones := 0
	for _, h := range headers {
		if h.Type == outline.TypeMilestone {
			milestones++
		}
	}
	if milestones == 0 {
		// A missing top level makes every hierarchy check meaningless, so
		// this is the single fatal finding and the remaining checks stop.
		report.Add(issue.Issue{
			Severity:     issue.SeverityFatal,
			Type:         IssueEmptyOutline,
			Message:      "outline contains no milestones",
			SuggestedFix: "Start the outline with a '## Milestone 1: <title>' header",
		})
		return report
	}

	checkNumbering(headers, report)
	checkHierarchy(headers, report)
	checkCompleteness(headers, report)
	checkScopeBalance(headers, cfg, report)
	checkArchetypeComponents(text, archetype, report)

	return report
}

// checkNumbering verifies sibling numbering within each parent group:
// duplicates are errors, gaps in the expected sequence are warnings.
// Milestones, stories and tasks are expected to start at 1, epics at 0.
func checkNumbering(headers []outline.Header, report *issue.Report) {
	type group struct {
		typ     outline.ItemType
		members []outline.Header
	}
	groups := make(map[string]*group)
	var order []string

	for _, h := range headers {
		key := h.Type.String() + "|" + outline.ParentID(h.ID)
		g, ok := groups[key]
		if !ok {
			g = &group{typ: h.Type}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, h)
	}

	for _, key := range order {
		g := groups[key]
		seen := make(map[int]bool)
		var unique []int
		for _, h := range g.members {
			n := numericSuffix(h.ID)
			if seen[n] {
				report.Add(issue.Issue{
					Severity: issue.SeverityError,
					ItemID:   h.ID,
					Type:     IssueDuplicateNumber,
					Message:  fmt.Sprintf("duplicate %s number %s", strings.ToLower(g.typ.String()), h.ID),
				})
				continue
			}
			seen[n] = true
			unique = append(unique, n)
		}

		start := 1
		if g.typ == outline.TypeEpic {
			start = 0
		}
		sort.Ints(unique)
		if len(unique) == 0 {
			continue
		}
		var missing []string
		for n := start; n <= unique[len(unique)-1]; n++ {
			if !seen[n] {
				missing = append(missing, strconv.Itoa(n))
			}
		}
		if len(missing) > 0 {
			report.Add(issue.Issue{
				Severity: issue.SeverityWarning,
				ItemID:   g.members[0].ID,
				Type:     IssueNumberingGap,
				Message: fmt.Sprintf("%s numbering has gaps: missing %s",
					strings.ToLower(g.typ.String()), strings.Join(missing, ", ")),
			})
		}
	}
}

// checkHierarchy flags items whose derived parent has not been declared
// earlier in the document.
func checkHierarchy(headers []outline.Header, report *issue.Report) {
	seen := make(map[string]bool)
	for _, h := range headers {
		if h.Type != outline.TypeMilestone {
			parent := outline.ParentID(h.ID)
			if !seen[parent] {
				report.Add(issue.Issue{
					Severity:     issue.SeverityError,
					ItemID:       h.ID,
					Type:         IssueOrphanItem,
					Message:      fmt.Sprintf("%s %s has no parent %s", h.Type, h.ID, parent),
					SuggestedFix: fmt.Sprintf("Declare %s before %s %s or renumber the item", parent, h.Type, h.ID),
				})
			}
		}
		seen[h.ID] = true
	}
}

// checkCompleteness flags parents with no children. Missing tasks under a
// story are informational: tasks may legitimately be generated later.
func checkCompleteness(headers []outline.Header, report *issue.Report) {
	childCount := make(map[string]int)
	for _, h := range headers {
		if parent := outline.ParentID(h.ID); parent != "" {
			childCount[parent]++
		}
	}

	for _, h := range headers {
		if childCount[h.ID] > 0 {
			continue
		}
		switch h.Type {
		case outline.TypeMilestone, outline.TypeEpic:
			report.Add(issue.Issue{
				Severity: issue.SeverityWarning,
				ItemID:   h.ID,
				Type:     IssueMissingChildren,
				Message:  fmt.Sprintf("%s %s has no children", h.Type, h.ID),
			})
		case outline.TypeStory:
			report.Add(issue.Issue{
				Severity: issue.SeverityInfo,
				ItemID:   h.ID,
				Type:     IssueStoryWithoutTasks,
				Message:  fmt.Sprintf("Story %s has no tasks; they may be generated later", h.ID),
			})
		}
	}
}

// checkScopeBalance compares per-milestone item counts (epics + stories)
// against the mean. Only meaningful with at least two milestones.
func checkScopeBalance(headers []outline.Header, cfg Config, report *issue.Report) {
	var milestoneIDs []string
	counts := make(map[string]int)
	for _, h := range headers {
		switch h.Type {
		case outline.TypeMilestone:
			milestoneIDs = append(milestoneIDs, h.ID)
		case outline.TypeEpic, outline.TypeStory:
			root := h.ID
			if idx := strings.Index(root, "."); idx >= 0 {
				root = root[:idx]
			}
			counts[root]++
		}
	}
	if len(milestoneIDs) < 2 {
		return
	}

	total := 0
	for _, id := range milestoneIDs {
		total += counts[id]
	}
	mean := float64(total) / float64(len(milestoneIDs))
	if mean == 0 {
		return
	}

	for _, id := range milestoneIDs {
		n := counts[id]
		switch {
		case float64(n) < mean*cfg.BalanceLowRatio && n < cfg.BalanceLowFloor:
			report.Add(issue.Issue{
				Severity:     issue.SeverityWarning,
				ItemID:       id,
				Type:         IssueScopeImbalance,
				Message:      fmt.Sprintf("Milestone %s has %d items against a mean of %.1f; scope looks too thin", id, n, mean),
				SuggestedFix: "Move epics or stories into this milestone, or merge it with a neighbor",
			})
		case float64(n) > mean*cfg.BalanceHighRatio && n > cfg.BalanceHighFloor:
			report.Add(issue.Issue{
				Severity:     issue.SeverityWarning,
				ItemID:       id,
				Type:         IssueScopeImbalance,
				Message:      fmt.Sprintf("Milestone %s has %d items against a mean of %.1f; scope looks overloaded", id, n, mean),
				SuggestedFix: "Split this milestone into smaller phases",
			})
		}
	}
}

// numericSuffix returns the last dotted component of an ID as an int.
func numericSuffix(id string) int {
	if idx := strings.LastIndex(id, "."); idx >= 0 {
		id = id[idx+1:]
	}
	n, _ := strconv.Atoi(id)
	return n
}
