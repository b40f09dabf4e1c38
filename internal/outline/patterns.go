package outline

import (
	"bufio"
	"regexp"
	"strings"
)

var (
	// Header patterns, matched in precedence order Milestone -> Task.
	milestonePattern = regexp.MustCompile(`(?i)^##\s+Milestone\s+(\d+)\s*:\s*(.+)$`)
	epicPattern      = regexp.MustCompile(`(?i)^###\s+Epic\s+(\d+\.\d+)\s*:\s*(.+)$`)
	storyPattern     = regexp.MustCompile(`(?i)^####\s+Story\s+(\d+\.\d+\.\d+)\s*:\s*(.+)$`)
	taskPattern      = regexp.MustCompile(`(?i)^#####\s+Task\s+(\d+\.\d+\.\d+\.\d+)\s*:\s*(.+)$`)

	// annotationPattern matches "> ..." description/dependency lines.
	annotationPattern = regexp.MustCompile(`^>\s?(.*)$`)
	// dependencyLinePattern matches the "Dependencies: ..." annotation.
	dependencyLinePattern = regexp.MustCompile(`(?i)^dependencies\s*:\s*(.*)$`)
	// typedRefPattern matches IDs following an explicit type keyword.
	typedRefPattern = regexp.MustCompile(`(?i)\b(?:milestone|epic|story|task)\s+(\d+(?:\.\d+)*)`)
	// bareRefPattern matches bare dotted-integer tokens ("1.2", "1.2.3.4").
	// Tokens deeper than a task ID are rejected by TypeForID afterwards;
	// matching them whole here keeps their prefixes from leaking through.
	bareRefPattern = regexp.MustCompile(`\b\d+(?:\.\d+)+\b`)
	// metadataPattern matches the optional leading metadata block.
	metadataPattern = regexp.MustCompile(`^(PROJECT_NAME|PROJECT_TYPE|TECH_STACK|DESCRIPTION)\s*:\s*(.*)$`)
)

// headerPatterns is the immutable classifier table. Order encodes match
// precedence.
var headerPatterns = []struct {
	typ ItemType
	re  *regexp.Regexp
}{
	{TypeMilestone, milestonePattern},
	{TypeEpic, epicPattern},
	{TypeStory, storyPattern},
	{TypeTask, taskPattern},
}

// Header is a raw classified header line, available before any tree exists.
type Header struct {
	Type  ItemType
	ID    string
	Title string
	Line  int // 1-based line number in the source text
}

// classifyHeader matches a line against the header table. Returns false if
// the line is not a header.
func classifyHeader(line string) (Header, bool) {
	for _, p := range headerPatterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			return Header{
				Type:  p.typ,
				ID:    m[1],
				Title: strings.TrimSpace(m[2]),
			}, true
		}
	}
	return Header{}, false
}

// ScanHeaders extracts every header line from the text in document order.
// This is the cheap regex pass the structural validator runs on, before
// the semantic tree is built.
func ScanHeaders(text string) []Header {
	var headers []Header
	lineNum := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		if h, ok := classifyHeader(scanner.Text()); ok {
			h.Line = lineNum
			headers = append(headers, h)
		}
	}
	return headers
}
