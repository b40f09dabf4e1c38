package materialize

// orderFrame is one level of the explicit DFS work-stack. An explicit
// stack keeps deeply-chained dependency graphs from exhausting the call
// stack.
type orderFrame struct {
	task *Task
	next int // index of the next dependency to visit
}

// GenerationOrder linearizes the plan so that every dependency is visited
// before its dependents, using depth-first traversal with a global visited
// set. The result covers every task exactly once. The walk terminates on
// any input: an edge back into the current path (a cycle survivor that the
// graph validator reported) is skipped rather than followed.
func (p *Plan) GenerationOrder() []*Task {
	visited := make(map[string]bool, len(p.order))
	onPath := make(map[string]bool)
	order := make([]*Task, 0, len(p.order))

	for _, start := range p.order {
		if visited[start.ID] {
			continue
		}
		onPath[start.ID] = true
		stack := []orderFrame{{task: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(top.task.Dependencies) {
				dep := top.task.Dependencies[top.next]
				top.next++
				if visited[dep.ID] || onPath[dep.ID] {
					continue
				}
				onPath[dep.ID] = true
				stack = append(stack, orderFrame{task: dep})
				continue
			}

			visited[top.task.ID] = true
			delete(onPath, top.task.ID)
			order = append(order, top.task)
			stack = stack[:len(stack)-1]
		}
	}

	return order
}
