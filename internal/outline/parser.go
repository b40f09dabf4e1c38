package outline

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/planlint/planlint/internal/issue"
)

// Issue types reported during parsing.
const (
	IssueMissingAncestor = "missing_ancestor"
	IssueDuplicateID     = "duplicate_id"
)

// parseState is the per-invocation mutable state threaded through a single
// parse. Nothing here is shared across calls; the pattern tables it reads
// are immutable package vars.
type parseState struct {
	outline *Outline
	current *Item    // most recently created item, target of annotations
	buffer  []string // pending description lines for current
	depText string   // pending "Dependencies:" text for current
	hasDeps bool
}

// Parse builds an Outline from raw text in a single pass. It never fails:
// malformed lines are recorded in the outline's diagnostics, the offending
// items are skipped, and parsing continues on subsequent lines.
func Parse(text string) *Outline {
	st := &parseState{
		outline: &Outline{Index: make(map[string]*Item)},
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sawHeader := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")

		if h, ok := classifyHeader(line); ok {
			st.flush()
			st.startItem(h)
			sawHeader = true
			continue
		}

		if m := annotationPattern.FindStringSubmatch(line); m != nil {
			st.bufferAnnotation(m[1])
			continue
		}

		if !sawHeader {
			if m := metadataPattern.FindStringSubmatch(line); m != nil {
				st.setMetadata(m[1], strings.TrimSpace(m[2]))
			}
		}
		// Anything else (blank lines, prose outside the grammar) is ignored.
	}

	st.flush()
	return st.outline
}

// startItem creates and links a new item for a classified header, or skips
// it when its required ancestor does not exist in the current parse state.
func (st *parseState) startItem(h Header) {
	st.current = nil

	if _, exists := st.outline.Index[h.ID]; exists {
		st.outline.Diagnostics.Add(issue.Issue{
			Severity: issue.SeverityError,
			ItemID:   h.ID,
			Type:     IssueDuplicateID,
			Message:  fmt.Sprintf("%s %s is declared more than once", h.Type, h.ID),
		})
		return
	}

	var parent *Item
	if h.Type != TypeMilestone {
		parentID := ParentID(h.ID)
		parent = st.outline.Index[parentID]
		if parent == nil {
			st.outline.Diagnostics.Add(issue.Issue{
				Severity:     issue.SeverityError,
				ItemID:       h.ID,
				Type:         IssueMissingAncestor,
				Message:      fmt.Sprintf("%s %s has no parent %s in the outline; item skipped", h.Type, h.ID, parentID),
				SuggestedFix: fmt.Sprintf("Add a %s %s header before %s %s", h.Type-1, parentID, h.Type, h.ID),
			})
			return
		}
	}

	item := &Item{ID: h.ID, Title: h.Title, Type: h.Type}
	if parent != nil {
		parent.AddChild(item)
	} else {
		st.outline.Milestones = append(st.outline.Milestones, item)
	}
	st.outline.Index[item.ID] = item
	st.outline.order = append(st.outline.order, item)
	st.current = item
}

// bufferAnnotation accumulates one "> ..." line against the current item.
// A "Dependencies:" line is held separately; the last one wins.
func (st *parseState) bufferAnnotation(text string) {
	if st.current == nil {
		return // annotation with no preceding item
	}
	if m := dependencyLinePattern.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		st.depText = m[1]
		st.hasDeps = true
		return
	}
	st.buffer = append(st.buffer, strings.TrimSpace(text))
}

// flush applies buffered annotations to the current item. Called on the
// next header and at end of input.
func (st *parseState) flush() {
	if st.current == nil {
		st.buffer = nil
		st.hasDeps = false
		st.depText = ""
		return
	}

	if st.hasDeps {
		st.current.Dependencies = nil
		for _, dep := range parseDependencies(st.depText) {
			st.current.AddDependency(dep)
		}
	}

	var parts []string
	for _, line := range st.buffer {
		if line != "" {
			parts = append(parts, line)
		}
	}
	if len(parts) > 0 {
		full := strings.Join(parts, " ")
		what, why := splitWhatWhy(full)
		st.current.Description = Description{FullText: full, What: what, Why: why}
	}

	st.buffer = nil
	st.hasDeps = false
	st.depText = ""
}

// setMetadata records one field of the optional leading metadata block.
func (st *parseState) setMetadata(key, value string) {
	switch key {
	case "PROJECT_NAME":
		st.outline.Metadata.ProjectName = value
	case "PROJECT_TYPE":
		st.outline.Metadata.ProjectType = value
	case "TECH_STACK":
		st.outline.Metadata.TechStack = value
	case "DESCRIPTION":
		st.outline.Metadata.Description = value
	}
}

// splitWhatWhy splits a description on the first sentence boundary. The
// split feeds generation-prompt templates and is not correctness-critical.
func splitWhatWhy(full string) (what, why string) {
	if idx := strings.Index(full, ". "); idx >= 0 {
		return full[:idx], strings.TrimSpace(full[idx+2:])
	}
	return full, ""
}

// parseDependencies extracts referenced IDs from dependency text. IDs are
// collected two ways and merged in order of appearance, de-duplicated by
// ID: explicit "Milestone|Epic|Story|Task <id>" references, then bare
// dotted-integer tokens. Each ID's type is inferred from its dot-count.
func parseDependencies(text string) []Dependency {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return nil
	}

	seen := make(map[string]bool)
	var deps []Dependency
	add := func(id string) {
		typ, ok := TypeForID(id)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		deps = append(deps, Dependency{TargetID: id, Type: typ, Blocking: true})
	}

	for _, m := range typedRefPattern.FindAllStringSubmatch(trimmed, -1) {
		add(m[1])
	}
	for _, id := range bareRefPattern.FindAllString(trimmed, -1) {
		add(id)
	}
	return deps
}
