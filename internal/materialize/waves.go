package materialize

import (
	"fmt"
	"sort"
)

// Wave is a group of tasks whose dependencies are all satisfied by earlier
// waves, so their content can be generated concurrently.
type Wave struct {
	Number  int // 1-indexed
	TaskIDs []string
}

// Size returns the number of tasks in the wave.
func (w Wave) Size() int { return len(w.TaskIDs) }

// ComputeWaves groups tasks by their maximum dependency depth using Kahn's
// algorithm: wave N holds every task whose longest dependency chain has
// length N-1. Returns an error when a residual cycle prevents a complete
// topological pass; callers are expected to have run graph validation
// first.
func (p *Plan) ComputeWaves() ([]Wave, error) {
	if len(p.order) == 0 {
		p.waves = nil
		return nil, nil
	}

	depth := make(map[string]int, len(p.order))
	inDegree := make(map[string]int, len(p.order))
	dependents := make(map[string][]*Task)
	var queue []*Task

	for _, task := range p.order {
		inDegree[task.ID] = len(task.Dependencies)
		for _, dep := range task.Dependencies {
			dependents[dep.ID] = append(dependents[dep.ID], task)
		}
		if len(task.Dependencies) == 0 {
			queue = append(queue, task)
		}
	}

	processed := 0
	for len(queue) > 0 {
		task := queue[0]
		queue = queue[1:]
		processed++

		for _, dependent := range dependents[task.ID] {
			if d := depth[task.ID] + 1; d > depth[dependent.ID] {
				depth[dependent.ID] = d
			}
			inDegree[dependent.ID]--
			if inDegree[dependent.ID] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if processed < len(p.order) {
		return nil, fmt.Errorf("computing waves: %d of %d tasks are stuck in a dependency cycle",
			len(p.order)-processed, len(p.order))
	}

	groups := make(map[int][]string)
	for _, task := range p.order {
		groups[depth[task.ID]] = append(groups[depth[task.ID]], task.ID)
	}

	depths := make([]int, 0, len(groups))
	for d := range groups {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	waves := make([]Wave, 0, len(depths))
	for i, d := range depths {
		ids := groups[d]
		sort.Strings(ids)
		waves = append(waves, Wave{Number: i + 1, TaskIDs: ids})
	}

	p.waves = waves
	return waves, nil
}

// Waves returns the most recently computed waves.
func (p *Plan) Waves() []Wave { return p.waves }

// WaveStats summarizes computed waves.
type WaveStats struct {
	TotalWaves  int
	TotalTasks  int
	MaxWaveSize int
	MinWaveSize int
}

// GetWaveStats returns statistics about the computed waves.
func (p *Plan) GetWaveStats() WaveStats {
	if len(p.waves) == 0 {
		return WaveStats{}
	}
	stats := WaveStats{
		TotalWaves:  len(p.waves),
		MinWaveSize: p.waves[0].Size(),
	}
	for _, wave := range p.waves {
		size := wave.Size()
		stats.TotalTasks += size
		if size > stats.MaxWaveSize {
			stats.MaxWaveSize = size
		}
		if size < stats.MinWaveSize {
			stats.MinWaveSize = size
		}
	}
	return stats
}
