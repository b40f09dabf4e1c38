package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planlint/planlint/internal/issue"
	"github.com/planlint/planlint/internal/outline"
)

// featureKeywords detects coarse features by keyword presence anywhere in
// the concatenated name+description corpus of all items. Deliberately
// shallow: these are heuristics, not semantic analysis.
var featureKeywords = map[string][]string{
	"authentication": {"auth", "login", "sign-in", "signin", "password", "oauth", "session"},
	"database":       {"database", "db ", "schema", "migration", "postgres", "mysql", "sqlite", "data model"},
	"user_model":     {"user model", "user account", "user profile", "user table", "user record"},
	"payments":       {"payment", "billing", "checkout", "stripe", "subscription", "invoice"},
	"file_upload":    {"upload", "file storage", "attachment", "media library"},
	"notifications":  {"notification", "email", "alert", "reminder"},
	"search":         {"search", "full-text", "autocomplete"},
}

// requiredFoundations maps a detected feature to the foundation features it
// cannot work without.
var requiredFoundations = map[string][]string{
	"authentication": {"database", "user_model"},
	"payments":       {"database", "authentication"},
	"notifications":  {"user_model"},
	"file_upload":    {"database"},
	"search":         {"database"},
}

// forgottenCategory is a work category outlines commonly omit entirely.
type forgottenCategory struct {
	name     string
	keywords []string
	examples string
}

var forgottenCategories = []forgottenCategory{
	{"security", []string{"security", "vulnerability", "sanitiz", "encryption", "permission"}, "input validation, dependency audit, permission model"},
	{"monitoring", []string{"monitoring", "logging", "observability", "metric", "alerting"}, "error tracking, structured logging, uptime alerts"},
	{"documentation", []string{"documentation", "docs", "readme", "guide"}, "API reference, onboarding guide, README"},
	{"testing", []string{"test", "qa", "coverage", "e2e"}, "unit tests, integration tests, end-to-end suite"},
	{"devops", []string{"deploy", "ci/cd", "pipeline", "infrastructure", "docker"}, "CI pipeline, deployment scripts, environments"},
	{"compliance", []string{"compliance", "gdpr", "audit", "privacy", "retention"}, "privacy policy work, data retention, audit logging"},
}

// checkFoundations reports an error when a detected feature's required
// foundation feature is nowhere in the outline.
func checkFoundations(o *outline.Outline, report *issue.Report) {
	text := corpus(o)

	detected := make(map[string]bool)
	for feature, keywords := range featureKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				detected[feature] = true
				break
			}
		}
	}

	// Sorted for consistent report ordering across runs.
	features := make([]string, 0, len(requiredFoundations))
	for feature := range requiredFoundations {
		features = append(features, feature)
	}
	sort.Strings(features)

	for _, feature := range features {
		if !detected[feature] {
			continue
		}
		for _, foundation := range requiredFoundations[feature] {
			if !detected[foundation] {
				report.Add(issue.Issue{
					Severity:     issue.SeverityError,
					Type:         IssueMissingFoundation,
					Message:      fmt.Sprintf("outline includes %s work but no %s foundation", feature, foundation),
					SuggestedFix: fmt.Sprintf("Add %s work before the %s items that rely on it", foundation, feature),
				})
			}
		}
	}
}

// checkForgottenCategories emits an info suggestion for each fixed category
// with no keyword hit anywhere in the corpus.
func checkForgottenCategories(o *outline.Outline, report *issue.Report) {
	text := corpus(o)

	for _, cat := range forgottenCategories {
		found := false
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				found = true
				break
			}
		}
		if !found {
			report.Add(issue.Issue{
				Severity:     issue.SeverityInfo,
				Type:         IssueMissingCategory,
				Message:      fmt.Sprintf("no %s work anywhere in the outline", cat.name),
				SuggestedFix: fmt.Sprintf("Consider adding: %s", cat.examples),
			})
		}
	}
}
