package structural

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planlint/planlint/internal/issue"
)

func countType(r *issue.Report, issueType string) int {
	n := 0
	for _, i := range r.Issues {
		if i.Type == issueType {
			n++
		}
	}
	return n
}

func TestValidate_EmptyOutline(t *testing.T) {
	t.Parallel()

	report := Validate("just prose, no headers at all\n", "", DefaultConfig())

	require.Equal(t, 1, report.Len())
	assert.Equal(t, issue.SeverityFatal, report.Issues[0].Severity)
	assert.Equal(t, IssueEmptyOutline, report.Issues[0].Type)
}

func TestValidate_DuplicateAndGapNumbering(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: First
## Milestone 1: Repeat
## Milestone 3: Third
`
	report := Validate(text, "", DefaultConfig())

	assert.GreaterOrEqual(t, countType(report, IssueDuplicateNumber), 1)
	assert.GreaterOrEqual(t, countType(report, IssueNumberingGap), 1)

	var gap issue.Issue
	for _, i := range report.Issues {
		if i.Type == IssueNumberingGap {
			gap = i
			break
		}
	}
	assert.Equal(t, issue.SeverityWarning, gap.Severity)
	assert.Contains(t, gap.Message, "2")
}

func TestValidate_EpicNumberingStartsAtZero(t *testing.T) {
	t.Parallel()

	zeroStart := `## Milestone 1: M
### Epic 1.0: A
#### Story 1.0.1: S
##### Task 1.0.1.1: T
### Epic 1.1: B
#### Story 1.1.1: S2
##### Task 1.1.1.1: T2
`
	report := Validate(zeroStart, "", DefaultConfig())
	assert.Equal(t, 0, countType(report, IssueNumberingGap))

	oneStart := `## Milestone 1: M
### Epic 1.1: A
#### Story 1.1.1: S
##### Task 1.1.1.1: T
### Epic 1.2: B
#### Story 1.2.1: S2
##### Task 1.2.1.1: T2
`
	report = Validate(oneStart, "", DefaultConfig())
	require.Equal(t, 1, countType(report, IssueNumberingGap))
	for _, i := range report.Issues {
		if i.Type == IssueNumberingGap {
			assert.Contains(t, i.Message, "epic")
			assert.Contains(t, i.Message, "0")
		}
	}
}

func TestValidate_OrphanEpic(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: Only milestone
### Epic 1.0: Fine
#### Story 1.0.1: S
##### Task 1.0.1.1: T
### Epic 2.0: Orphan
`
	report := Validate(text, "", DefaultConfig())

	require.Equal(t, 1, countType(report, IssueOrphanItem))
	var orphan issue.Issue
	for _, i := range report.Issues {
		if i.Type == IssueOrphanItem {
			orphan = i
		}
	}
	assert.Equal(t, issue.SeverityError, orphan.Severity)
	assert.Equal(t, "2.0", orphan.ItemID)
	assert.Contains(t, orphan.Message, "Epic 2.0")
}

func TestValidate_StoryWithoutTasksIsOnlyInfo(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: M
### Epic 1.0: E
#### Story 1.0.1: S
`
	report := Validate(text, "", DefaultConfig())

	require.Equal(t, 1, report.Len())
	got := report.Issues[0]
	assert.Equal(t, issue.SeverityInfo, got.Severity)
	assert.Equal(t, IssueStoryWithoutTasks, got.Type)
	assert.Equal(t, "1.0.1", got.ItemID)
}

func TestValidate_ChildlessParents(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: Empty milestone
## Milestone 2: M
### Epic 2.0: Empty epic
`
	report := Validate(text, "", DefaultConfig())

	assert.Equal(t, 2, countType(report, IssueMissingChildren))
	for _, i := range report.Issues {
		if i.Type == IssueMissingChildren {
			assert.Equal(t, issue.SeverityWarning, i.Severity)
		}
	}
}

func TestValidate_ScopeBalance(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("## Milestone 1: Heavy\n")
	for e := 0; e < 6; e++ {
		sb.WriteString("### Epic 1." + string(rune('0'+e)) + ": E\n")
		sb.WriteString("#### Story 1." + string(rune('0'+e)) + ".1: S\n")
	}
	sb.WriteString("## Milestone 2: Light\n### Epic 2.0: E\n")
	sb.WriteString("## Milestone 3: Light too\n### Epic 3.0: E\n")

	report := Validate(sb.String(), "", DefaultConfig())

	// Milestone 1 carries 12 items against a mean of ~4.7 (overloaded);
	// milestones 2 and 3 carry 1 each (too thin).
	imbalances := countType(report, IssueScopeImbalance)
	assert.Equal(t, 3, imbalances)
}

func TestValidate_ScopeBalanceSkippedWithOneMilestone(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: Solo
### Epic 1.0: E
#### Story 1.0.1: S
##### Task 1.0.1.1: T
`
	report := Validate(text, "", DefaultConfig())
	assert.Equal(t, 0, countType(report, IssueScopeImbalance))
}

func TestValidate_ArchetypeComponents(t *testing.T) {
	t.Parallel()

	text := `## Milestone 1: Frontend work
### Epic 1.0: Build the frontend pages
#### Story 1.0.1: Landing page
##### Task 1.0.1.1: Static layout
`
	report := Validate(text, "web_app", DefaultConfig())

	// UI is covered by "frontend"/"page"; storage, API and auth are not.
	missing := countType(report, IssueMissingComponent)
	assert.Equal(t, 3, missing)
	for _, i := range report.Issues {
		if i.Type == IssueMissingComponent {
			assert.Equal(t, issue.SeverityWarning, i.Severity)
		}
	}
	assert.GreaterOrEqual(t, countType(report, IssueRecommendedComponent), 1)
}

func TestValidate_UnknownArchetypeSkipsCheck(t *testing.T) {
	t.Parallel()

	text := "## Milestone 1: M\n### Epic 1.0: E\n#### Story 1.0.1: S\n##### Task 1.0.1.1: T\n"
	report := Validate(text, "spaceship", DefaultConfig())

	assert.Equal(t, 0, countType(report, IssueMissingComponent))
	assert.Equal(t, 0, countType(report, IssueRecommendedComponent))
}

func TestValidate_ShortKeywordsMatchWholeWordsOnly(t *testing.T) {
	t.Parallel()

	// "build" must not count as "ui" coverage, nor "feedback" as "db".
	text := `## Milestone 1: Build the feedback loop
### Epic 1.0: Build
#### Story 1.0.1: Feedback
##### Task 1.0.1.1: Build feedback widget
`
	report := Validate(text, "web_app", DefaultConfig())
	assert.Equal(t, 4, countType(report, IssueMissingComponent))

	// A standalone "UI" word does satisfy the component.
	covered := Validate("## Milestone 1: UI polish\n", "web_app", DefaultConfig())
	assert.Equal(t, 3, countType(covered, IssueMissingComponent))
}

func TestArchetypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"api", "cli_tool", "mobile_app", "saas", "web_app"}, Archetypes())
}
