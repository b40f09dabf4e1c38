// Package outline parses semi-structured roadmap outline text into a
// validated four-level item tree (Milestone -> Epic -> Story -> Task) with
// a flat ID index, ready for graph validation and content generation.
package outline

import (
	"strings"

	"github.com/planlint/planlint/internal/issue"
)

// ItemType identifies the hierarchy level of an outline item. The numeric
// value equals the item's depth, which equals the dot-count of its ID plus
// one ("2" is a Milestone, "2.1.3.4" is a Task).
type ItemType int

const (
	// TypeMilestone is a top-level roadmap phase.
	TypeMilestone ItemType = iota + 1
	// TypeEpic groups related stories under a milestone.
	TypeEpic
	// TypeStory is a user-facing unit of work under an epic.
	TypeStory
	// TypeTask is the smallest generation unit under a story.
	TypeTask
)

// String returns the string representation of an ItemType.
func (t ItemType) String() string {
	switch t {
	case TypeMilestone:
		return "Milestone"
	case TypeEpic:
		return "Epic"
	case TypeStory:
		return "Story"
	case TypeTask:
		return "Task"
	default:
		return "Unknown"
	}
}

// Depth returns the number of ID components an item of this type carries.
func (t ItemType) Depth() int { return int(t) }

// TypeForID infers an item type from the dot-count of a hierarchical ID.
// Returns false for IDs shallower than a milestone or deeper than a task.
func TypeForID(id string) (ItemType, bool) {
	if id == "" {
		return 0, false
	}
	depth := strings.Count(id, ".") + 1
	if depth < 1 || depth > 4 {
		return 0, false
	}
	return ItemType(depth), true
}

// ParentID returns the ID of an item's derived parent ("2.1.3" -> "2.1").
// Milestones have no parent and return an empty string.
func ParentID(id string) string {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return ""
	}
	return id[:idx]
}

// Description holds the free-text annotation of an item. What/Why are a
// heuristic split of FullText used for generation-prompt templating only.
type Description struct {
	FullText string
	What     string
	Why      string
}

// Dependency is a reference from one item to another by ID. The target is
// not guaranteed to exist; unresolved references are reported by the graph
// validator rather than assumed valid.
type Dependency struct {
	TargetID string
	Type     ItemType // Inferred from the ID's dot-count
	Blocking bool
}

// Item is a single node in the outline tree.
type Item struct {
	ID           string
	Title        string
	Type         ItemType
	Description  Description
	Dependencies []Dependency
	Children     []*Item
	Parent       *Item // nil for Milestones
}

// AddChild links a child item under this item.
func (it *Item) AddChild(child *Item) {
	child.Parent = it
	it.Children = append(it.Children, child)
}

// AddDependency appends a dependency, de-duplicating by target ID.
func (it *Item) AddDependency(dep Dependency) {
	for _, existing := range it.Dependencies {
		if existing.TargetID == dep.TargetID {
			return
		}
	}
	it.Dependencies = append(it.Dependencies, dep)
}

// Text returns the item's searchable corpus: title plus description.
func (it *Item) Text() string {
	if it.Description.FullText == "" {
		return it.Title
	}
	return it.Title + " " + it.Description.FullText
}

// Metadata is the optional leading project metadata block.
type Metadata struct {
	ProjectName string
	ProjectType string
	TechStack   string
	Description string
}

// Stats counts items per hierarchy level.
type Stats struct {
	Milestones int
	Epics      int
	Stories    int
	Tasks      int
}

// Outline owns the parsed milestone tree, a flat ID index and the parse
// diagnostics. It is built in a single pass and not mutated afterwards.
type Outline struct {
	Milestones  []*Item
	Index       map[string]*Item
	Metadata    Metadata
	Diagnostics issue.Report

	order []*Item // items in document-declaration order
}

// Items returns every item in document-declaration order.
func (o *Outline) Items() []*Item { return o.order }

// Stats returns per-level item counts.
func (o *Outline) Stats() Stats {
	var s Stats
	for _, it := range o.order {
		switch it.Type {
		case TypeMilestone:
			s.Milestones++
		case TypeEpic:
			s.Epics++
		case TypeStory:
			s.Stories++
		case TypeTask:
			s.Tasks++
		}
	}
	return s
}
