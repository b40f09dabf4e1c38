package coverage

import (
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

func TestCheckStory_ExplicitTagCoverage(t *testing.T) {
	t.Parallel()

	story := Story{
		ID:    "1.0.1",
		Title: "Signup",
		AcceptanceCriteria: []string{
			"Users can register with email",
			"Payments process refunds correctly",
			"Dashboard displays weekly revenue",
		},
		Tasks: []Task{
			{ID: "1.0.1.1", Title: "Signup flow", Description: "Build the form", Satisfies: "AC1"},
		},
	}

	result, report := CheckStory(story, DefaultConfig())

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Covered)
	assert.InDelta(t, 33.3, result.Percentage, 0.1)
	assert.Equal(t, []int{1, 2}, result.Uncovered)

	assert.Equal(t, 1, countType(report, IssueLowCoverage))
	require.Equal(t, 2, countType(report, IssueUncoveredCriterion))
	for _, i := range report.Issues {
		if i.Type == IssueUncoveredCriterion {
			assert.Equal(t, issue.SeverityWarning, i.Severity)
			assert.Contains(t, i.SuggestedFix, "Implement")
		}
	}
}

func TestCheckStory_ImplicitKeywordCoverage(t *testing.T) {
	t.Parallel()

	story := Story{
		ID:                 "1.0.1",
		Title:              "Email intake",
		AcceptanceCriteria: []string{"Validate user email addresses"},
		Tasks: []Task{
			{ID: "1.0.1.1", Title: "Intake", Description: "We validate the email field"},
		},
	}

	result, report := CheckStory(story, DefaultConfig())

	assert.Equal(t, 1, result.Covered)
	assert.InDelta(t, 100, result.Percentage, 0.001)
	assert.Equal(t, 0, report.Len())
}

func TestCheckStory_TagEdgeCases(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		satisfies   string
		wantCovered int
	}{
		"lowercase tag counts":      {satisfies: "ac2", wantCovered: 1},
		"out of range tag ignored":  {satisfies: "AC5", wantCovered: 0},
		"zero tag ignored":          {satisfies: "AC0", wantCovered: 0},
		"multiple tags all counted": {satisfies: "AC1 and AC2", wantCovered: 2},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			story := Story{
				ID:                 "1.0.1",
				AcceptanceCriteria: []string{"First criterion wording", "Second criterion wording"},
				Tasks:              []Task{{ID: "1.0.1.1", Title: "Unrelated", Satisfies: tc.satisfies}},
			}
			result, _ := CheckStory(story, DefaultConfig())
			assert.Equal(t, tc.wantCovered, result.Covered)
		})
	}
}

func TestCheckStory_NoCriteria(t *testing.T) {
	t.Parallel()

	withTasks := Story{ID: "1.0.1", Tasks: []Task{{ID: "1.0.1.1", Title: "T"}}}
	result, report := CheckStory(withTasks, DefaultConfig())
	assert.Equal(t, Result{}, result)
	require.Equal(t, 1, report.Len())
	assert.Equal(t, issue.SeverityInfo, report.Issues[0].Severity)
	assert.Equal(t, IssueNoCriteria, report.Issues[0].Type)

	empty := Story{ID: "1.0.2"}
	_, report = CheckStory(empty, DefaultConfig())
	assert.Equal(t, 0, report.Len())
}

func TestResolveCriteria(t *testing.T) {
	t.Parallel()

	both := Story{AcceptanceCriteria: []string{"a"}, SuccessCriteria: []string{"s"}}
	assert.Equal(t, []string{"a"}, ResolveCriteria(both))

	fallback := Story{SuccessCriteria: []string{"s"}}
	assert.Equal(t, []string{"s"}, ResolveCriteria(fallback))

	assert.Nil(t, ResolveCriteria(Story{}))
}

func TestCheckEpic(t *testing.T) {
	t.Parallel()

	epic := Epic{
		ID:   "1.0",
		Goal: "Build the payment checkout flow",
		Stories: []Story{
			{ID: "1.0.1", Title: "Payment checkout"},
		},
	}
	report := CheckEpic(epic, DefaultConfig())
	assert.Equal(t, 0, report.Len())

	epic.Stories = []Story{{ID: "1.0.1", Title: "Gardening tips"}}
	report = CheckEpic(epic, DefaultConfig())
	require.Equal(t, 1, countType(report, IssueUncoveredEpicGoal))
	assert.Equal(t, issue.SeverityInfo, report.Issues[0].Severity)
	assert.Equal(t, "1.0", report.Issues[0].ItemID)
}

func TestCheckEpic_GoalFallsBackToTitle(t *testing.T) {
	t.Parallel()

	epic := Epic{
		ID:      "1.0",
		Title:   "Inventory tracking",
		Stories: []Story{{ID: "1.0.1", Title: "Inventory tracking screens"}},
	}
	report := CheckEpic(epic, DefaultConfig())
	assert.Equal(t, 0, report.Len())
}

func TestCheckEpic_NoStories(t *testing.T) {
	t.Parallel()

	report := CheckEpic(Epic{ID: "1.0", Goal: "Something"}, DefaultConfig())
	assert.Equal(t, 0, report.Len())
}

func TestCheckTaskScope(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		task     Task
		wantType string
	}{
		"empty task": {
			task:     Task{ID: "1.0.1.1", Title: "Configure billing webhooks"},
			wantType: IssueEmptyTask,
		},
		"title mismatch": {
			task: Task{
				ID:          "1.0.1.1",
				Title:       "Configure billing webhooks",
				Description: "Write some code",
			},
			wantType: IssueTitleMismatch,
		},
		"aligned content": {
			task: Task{
				ID:          "1.0.1.1",
				Title:       "Configure billing webhooks",
				Description: "Configure the billing webhooks handler",
			},
			wantType: "",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := CheckTaskScope(tc.task, DefaultConfig())
			if tc.wantType == "" {
				assert.Equal(t, 0, report.Len())
				return
			}
			require.Equal(t, 1, report.Len())
			assert.Equal(t, tc.wantType, report.Issues[0].Type)
		})
	}
}
