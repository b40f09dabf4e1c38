// Package coverage maps generated tasks to a story's acceptance criteria
// via explicit AC tags and keyword-overlap heuristics, and flags epic,
// story and task scope gaps. The matching is deliberately shallow keyword
// work, not semantic analysis.
package coverage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/planlint/planlint/internal/issue"
)

// Issue types reported by the coverage checker.
const (
	IssueLowCoverage        = "low_criteria_coverage"
	IssueUncoveredCriterion = "uncovered_criterion"
	IssueNoCriteria         = "no_criteria_defined"
	IssueUncoveredEpicGoal  = "uncovered_epic_goal"
	IssueEmptyTask          = "empty_task"
	IssueTitleMismatch      = "title_content_mismatch"
)

// acTagPattern matches explicit criterion tags like "AC1" or "ac12".
var acTagPattern = regexp.MustCompile(`(?i)\bAC(\d+)\b`)

// Config holds the tunable overlap thresholds. The fixed constants of the
// source heuristics (40%/30%/20%, 50% bar) are configuration here, not
// invariants.
type Config struct {
	ImplicitThreshold     float64 // criterion keyword hit ratio for implicit coverage
	EpicOverlapThreshold  float64 // jaccard overlap for epic goal vs story
	TitleOverlapThreshold float64 // title keyword hit ratio for scope match
	LowCoveragePercent    float64 // warn below this coverage percentage
}

// DefaultConfig returns the default coverage thresholds.
func DefaultConfig() Config {
	return Config{
		ImplicitThreshold:     0.40,
		EpicOverlapThreshold:  0.30,
		TitleOverlapThreshold: 0.20,
		LowCoveragePercent:    50,
	}
}

// Task is a materialized generation task as seen by the coverage checker.
type Task struct {
	ID                    string
	Title                 string
	Description           string
	ImplementationPrompt  string
	TechnicalRequirements string
	Satisfies             string // free text scanned for AC<N> tags
}

// corpus concatenates the task's text fields for keyword matching.
func (t Task) corpus() string {
	return strings.Join([]string{t.Title, t.Description, t.ImplementationPrompt, t.TechnicalRequirements}, " ")
}

// Story is a story with declared criteria and its child tasks.
type Story struct {
	ID                 string
	Title              string
	AcceptanceCriteria []string
	SuccessCriteria    []string
	Tasks              []Task
}

// Epic carries the goal checked against its stories.
type Epic struct {
	ID      string
	Title   string
	Goal    string
	Stories []Story
}

// ResolveCriteria returns the story's criteria, trying sources in priority
// order: acceptance_criteria first, success_criteria as fallback.
func ResolveCriteria(s Story) []string {
	if len(s.AcceptanceCriteria) > 0 {
		return s.AcceptanceCriteria
	}
	return s.SuccessCriteria
}

// resolveGoal returns the epic's goal, falling back to its title.
func resolveGoal(e Epic) string {
	if strings.TrimSpace(e.Goal) != "" {
		return e.Goal
	}
	return e.Title
}

// Result summarizes criteria coverage for one story.
type Result struct {
	Total      int
	Covered    int
	Percentage float64
	Uncovered  []int // zero-based criterion indexes
}

// CheckStory computes criteria coverage for a story. Explicit AC<N> tags
// in a task's Satisfies text cover criterion N-1 directly; every remaining
// (task, criterion) pair is tested by keyword overlap.
func CheckStory(s Story, cfg Config) (Result, *issue.Report) {
	report := &issue.Report{}
	criteria := ResolveCriteria(s)

	if len(criteria) == 0 {
		if len(s.Tasks) > 0 {
			report.Add(issue.Issue{
				Severity: issue.SeverityInfo,
				ItemID:   s.ID,
				Type:     IssueNoCriteria,
				Message:  fmt.Sprintf("Story %s has no acceptance criteria defined", s.ID),
			})
		}
		return Result{}, report
	}

	covered := make([]bool, len(criteria))

	// Explicit coverage via AC tags.
	for _, task := range s.Tasks {
		for _, m := range acTagPattern.FindAllStringSubmatch(task.Satisfies, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > len(criteria) {
				continue
			}
			covered[n-1] = true
		}
	}

	// Implicit coverage via criterion keyword overlap.
	for i, criterion := range criteria {
		if covered[i] {
			continue
		}
		keywords := extractKeywords(criterion)
		for _, task := range s.Tasks {
			if keywordHitRatio(keywords, task.corpus()) >= cfg.ImplicitThreshold {
				covered[i] = true
				break
			}
		}
	}

	result := Result{Total: len(criteria)}
	for i, ok := range covered {
		if ok {
			result.Covered++
		} else {
			result.Uncovered = append(result.Uncovered, i)
		}
	}
	result.Percentage = float64(result.Covered) / float64(result.Total) * 100

	if result.Percentage < cfg.LowCoveragePercent {
		report.Add(issue.Issue{
			Severity: issue.SeverityWarning,
			ItemID:   s.ID,
			Type:     IssueLowCoverage,
			Message: fmt.Sprintf("Story %s covers %.1f%% of its criteria; %d of %d remain unaddressed",
				s.ID, result.Percentage, len(result.Uncovered), result.Total),
		})
	}

	for _, idx := range result.Uncovered {
		criterion := criteria[idx]
		workType := inferWorkType(criterion)
		report.Add(issue.Issue{
			Severity: issue.SeverityWarning,
			ItemID:   s.ID,
			Type:     IssueUncoveredCriterion,
			Message:  fmt.Sprintf("no task addresses criterion %d: %s", idx+1, criterion),
			SuggestedFix: fmt.Sprintf("Add a %s %s task: %q",
				inferComplexity(criterion), workType, suggestedTitle(criterion, workType)),
		})
	}

	return result, report
}

// CheckEpic tests whether any story addresses the epic's goal using the
// same keyword-overlap technique at coarser granularity. Informational.
func CheckEpic(e Epic, cfg Config) *issue.Report {
	report := &issue.Report{}
	goal := resolveGoal(e)
	if strings.TrimSpace(goal) == "" || len(e.Stories) == 0 {
		return report
	}

	for _, story := range e.Stories {
		storyText := story.Title + " " + strings.Join(ResolveCriteria(story), " ")
		if jaccardOverlap(goal, storyText) >= cfg.EpicOverlapThreshold {
			return report
		}
	}

	report.Add(issue.Issue{
		Severity: issue.SeverityInfo,
		ItemID:   e.ID,
		Type:     IssueUncoveredEpicGoal,
		Message:  fmt.Sprintf("no story in Epic %s clearly addresses its goal: %s", e.ID, goal),
	})
	return report
}

// CheckTaskScope flags tasks with no content and tasks whose content does
// not reflect their title.
func CheckTaskScope(t Task, cfg Config) *issue.Report {
	report := &issue.Report{}

	if strings.TrimSpace(t.Description) == "" && strings.TrimSpace(t.ImplementationPrompt) == "" {
		report.Add(issue.Issue{
			Severity:     issue.SeverityWarning,
			ItemID:       t.ID,
			Type:         IssueEmptyTask,
			Message:      fmt.Sprintf("Task %s has neither a description nor an implementation prompt", t.ID),
			SuggestedFix: "Describe what the task builds and why",
		})
		return report
	}

	keywords := extractKeywords(t.Title)
	if len(keywords) == 0 {
		return report
	}
	content := strings.Join([]string{t.Description, t.ImplementationPrompt, t.TechnicalRequirements}, " ")
	if keywordHitRatio(keywords, content) < cfg.TitleOverlapThreshold {
		report.Add(issue.Issue{
			Severity:     issue.SeverityInfo,
			ItemID:       t.ID,
			Type:         IssueTitleMismatch,
			Message:      fmt.Sprintf("Task %s content does not mention its title keywords", t.ID),
			SuggestedFix: "Align the task description with its title or retitle the task",
		})
	}
	return report
}
