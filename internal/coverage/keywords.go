package coverage

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are common length>=4 words excluded from keyword extraction.
var stopWords = map[string]bool{
	"able": true, "about": true, "after": true, "also": true, "been": true,
	"before": true, "each": true, "from": true, "have": true, "into": true,
	"more": true, "must": true, "only": true, "other": true, "over": true,
	"shall": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "their": true, "them": true, "then": true, "they": true,
	"this": true, "upon": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true,
}

// extractKeywords lowercases the text, splits it on non-alphanumeric runs
// and keeps unique words of length >= 4 that are not stop words, in order
// of first appearance.
func extractKeywords(text string) []string {
	words := splitWords(text)
	seen := make(map[string]bool)
	var out []string
	for _, w := range words {
		if len(w) < 4 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// splitWords lowercases and tokenizes on non-alphanumeric boundaries.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// wordSet returns the set of tokens in the text.
func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range splitWords(text) {
		set[w] = true
	}
	return set
}

// keywordHitRatio returns the fraction of keywords present as words in the
// corpus. Returns 0 for an empty keyword list.
func keywordHitRatio(keywords []string, corpus string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	words := wordSet(corpus)
	hits := 0
	for _, kw := range keywords {
		if words[kw] {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// jaccardOverlap computes shared/union over the length>=4 keyword sets of
// two texts.
func jaccardOverlap(a, b string) float64 {
	setA := make(map[string]bool)
	for _, w := range extractKeywords(a) {
		setA[w] = true
	}
	setB := make(map[string]bool)
	for _, w := range extractKeywords(b) {
		setB[w] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	shared := 0
	for w := range setA {
		if setB[w] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// workTypeBuckets maps generated-task work types to trigger keywords.
// Order encodes precedence; the default is "implementation".
var workTypeBuckets = []struct {
	name     string
	keywords []string
}{
	{"testing", []string{"test", "verify", "validate", "coverage", "regression"}},
	{"design", []string{"design", "wireframe", "mockup", "layout", "style"}},
	{"documentation", []string{"document", "documentation", "readme", "guide", "describe"}},
	{"configuration", []string{"config", "configure", "setup", "install", "deploy", "environment"}},
	{"research", []string{"research", "investigate", "evaluate", "explore", "compare"}},
}

// inferWorkType picks a work type for a generated task from the criterion
// text, defaulting to implementation.
func inferWorkType(criterion string) string {
	lower := strings.ToLower(criterion)
	for _, bucket := range workTypeBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.name
			}
		}
	}
	return "implementation"
}

var (
	simpleKeywords  = []string{"simple", "basic", "minor", "small", "single"}
	complexKeywords = []string{"complex", "integrat", "migration", "architecture", "refactor", "multiple"}
)

// inferComplexity buckets criterion text into simple/moderate/complex.
func inferComplexity(criterion string) string {
	lower := strings.ToLower(criterion)
	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			return "complex"
		}
	}
	for _, kw := range simpleKeywords {
		if strings.Contains(lower, kw) {
			return "simple"
		}
	}
	return "moderate"
}

// workTypeVerbs maps work types to the verb used in suggested task titles.
var workTypeVerbs = map[string]string{
	"implementation": "Implement",
	"testing":        "Test",
	"design":         "Design",
	"documentation":  "Document",
	"configuration":  "Configure",
	"research":       "Research",
}

// suggestedTitle derives a task title from criterion text by light
// transforms: strip the trailing period, lowercase the leading letter and
// prefix the work-type verb. Truncation and lowercasing operate on runes
// so multi-byte criterion text is never cut mid-character.
func suggestedTitle(criterion, workType string) string {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(criterion), "."))
	if text == "" {
		return workTypeVerbs[workType] + " acceptance criterion"
	}
	if runes := []rune(text); len(runes) > 80 {
		text = strings.TrimSpace(string(runes[:80]))
	}
	first, size := utf8.DecodeRuneInString(text)
	return workTypeVerbs[workType] + " " + string(unicode.ToLower(first)) + text[size:]
}
