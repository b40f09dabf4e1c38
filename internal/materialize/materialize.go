// Package materialize copies semantic fields from a parsed outline onto
// generation-ready task objects, resolves dependency IDs to object
// references once the whole tree exists, and computes a dependency-first
// generation order plus parallel generation waves.
package materialize

import (
	"github.com/planlint/planlint/internal/outline"
)

// Task is a generation-ready item. It mirrors the outline tree shape but
// owns its own copies of the semantic fields; the source Outline can be
// discarded after Build.
type Task struct {
	ID    string
	Title string
	Type  outline.ItemType

	FullText string
	What     string
	Why      string

	DependencyIDs []string
	Dependencies  []*Task // resolved references, unknown IDs omitted
	Children      []*Task
	Parent        *Task
}

// Plan owns the materialized tree plus a flat index.
type Plan struct {
	Milestones []*Task
	Index      map[string]*Task

	order []*Task // document-declaration order
	waves []Wave
}

// Build materializes every outline item. A first pass copies fields and
// tree shape; a second pass re-links dependency IDs to object references,
// so forward references resolve once the whole tree exists. Dependency IDs
// with no target are kept in DependencyIDs but yield no reference: the
// graph validator has already reported them.
func Build(o *outline.Outline) *Plan {
	plan := &Plan{Index: make(map[string]*Task, len(o.Items()))}

	for _, item := range o.Items() {
		task := &Task{
			ID:       item.ID,
			Title:    item.Title,
			Type:     item.Type,
			FullText: item.Description.FullText,
			What:     item.Description.What,
			Why:      item.Description.Why,
		}
		for _, dep := range item.Dependencies {
			task.DependencyIDs = append(task.DependencyIDs, dep.TargetID)
		}

		if item.Parent != nil {
			parent := plan.Index[item.Parent.ID]
			task.Parent = parent
			parent.Children = append(parent.Children, task)
		} else {
			plan.Milestones = append(plan.Milestones, task)
		}

		plan.Index[task.ID] = task
		plan.order = append(plan.order, task)
	}

	for _, task := range plan.order {
		for _, depID := range task.DependencyIDs {
			if dep, ok := plan.Index[depID]; ok {
				task.Dependencies = append(task.Dependencies, dep)
			}
		}
	}

	return plan
}

// Tasks returns every materialized task in document-declaration order.
func (p *Plan) Tasks() []*Task { return p.order }

// Size returns the number of materialized tasks.
func (p *Plan) Size() int { return len(p.order) }
