package structural

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planlint/planlint/internal/issue"
)

// component is a coarse project building block detected by keyword presence
// anywhere in the outline text.
type component struct {
	name     string
	keywords []string
}

// archetypeChecklist pairs required components (missing -> warning) with
// recommended ones (missing -> info) for a project archetype.
type archetypeChecklist struct {
	required    []component
	recommended []component
}

// archetypes maps the supported project archetypes to their checklists.
var archetypes = map[string]archetypeChecklist{
	"web_app": {
		required: []component{
			{"user interface", []string{"frontend", "ui", "interface", "page", "component"}},
			{"data storage", []string{"database", "db", "storage", "schema"}},
			{"backend API", []string{"api", "endpoint", "backend", "server"}},
			{"authentication", []string{"auth", "login", "session", "account"}},
		},
		recommended: []component{
			{"testing", []string{"test", "testing", "qa"}},
			{"deployment", []string{"deploy", "deployment", "hosting", "ci"}},
			{"error handling", []string{"error handling", "validation", "fallback"}},
		},
	},
	"mobile_app": {
		required: []component{
			{"screens and navigation", []string{"screen", "navigation", "view", "ui"}},
			{"local storage", []string{"storage", "cache", "database", "offline"}},
			{"API integration", []string{"api", "endpoint", "sync", "backend"}},
		},
		recommended: []component{
			{"push notifications", []string{"push", "notification"}},
			{"app store release", []string{"app store", "play store", "release", "distribution"}},
			{"testing", []string{"test", "testing", "qa"}},
		},
	},
	"api": {
		required: []component{
			{"endpoints", []string{"endpoint", "route", "api", "handler"}},
			{"data storage", []string{"database", "db", "storage", "schema"}},
			{"authentication", []string{"auth", "token", "api key", "credential"}},
		},
		recommended: []component{
			{"documentation", []string{"documentation", "docs", "openapi", "swagger"}},
			{"rate limiting", []string{"rate limit", "throttle", "quota"}},
			{"versioning", []string{"version", "versioning", "v1", "v2"}},
		},
	},
	"saas": {
		required: []component{
			{"authentication", []string{"auth", "login", "signup", "account"}},
			{"billing", []string{"billing", "payment", "subscription", "invoice"}},
			{"data storage", []string{"database", "db", "storage", "schema"}},
			{"API layer", []string{"api", "endpoint", "backend"}},
		},
		recommended: []component{
			{"onboarding", []string{"onboarding", "welcome", "tutorial"}},
			{"admin tooling", []string{"admin", "dashboard", "management"}},
			{"analytics", []string{"analytics", "metrics", "tracking"}},
			{"transactional email", []string{"email", "notification", "smtp"}},
		},
	},
	"cli_tool": {
		required: []component{
			{"command surface", []string{"command", "cli", "flag", "subcommand"}},
			{"configuration", []string{"config", "configuration", "settings"}},
		},
		recommended: []component{
			{"help and docs", []string{"help", "usage", "documentation", "docs"}},
			{"distribution", []string{"install", "package", "release", "distribution"}},
		},
	},
}

// checkArchetypeComponents verifies require/recommend component coverage
// for a supplied archetype across the full outline text. Unknown or empty
// archetypes skip the check.
func checkArchetypeComponents(text, archetype string, report *issue.Report) {
	checklist, ok := archetypes[archetype]
	if !ok {
		return
	}
	corpus := strings.ToLower(text)
	words := corpusWords(corpus)

	for _, c := range checklist.required {
		if !containsAny(corpus, words, c.keywords) {
			report.Add(issue.Issue{
				Severity:     issue.SeverityWarning,
				Type:         IssueMissingComponent,
				Message:      fmt.Sprintf("%s project has no %s work anywhere in the outline", archetype, c.name),
				SuggestedFix: fmt.Sprintf("Add stories covering %s (keywords: %s)", c.name, strings.Join(c.keywords, ", ")),
			})
		}
	}
	for _, c := range checklist.recommended {
		if !containsAny(corpus, words, c.keywords) {
			report.Add(issue.Issue{
				Severity:     issue.SeverityInfo,
				Type:         IssueRecommendedComponent,
				Message:      fmt.Sprintf("consider adding %s work for a %s project", c.name, archetype),
			})
		}
	}
}

// corpusWords tokenizes the lowercased corpus on non-alphanumeric runs.
func corpusWords(corpus string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(corpus, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		words[w] = true
	}
	return words
}

// containsAny reports whether any keyword occurs in the lowercased corpus.
// Short single-word keywords match whole words only, so "ui" cannot hit
// inside "build" or "db" inside "feedback".
func containsAny(corpus string, words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if len(kw) < 4 && !strings.Contains(kw, " ") {
			if words[kw] {
				return true
			}
			continue
		}
		if strings.Contains(corpus, kw) {
			return true
		}
	}
	return false
}

// Archetypes returns the supported archetype names, sorted for stable
// help and usage text.
func Archetypes() []string {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
