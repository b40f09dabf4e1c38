package materialize

import (
	"fmt"
	"strings"
)

// RenderWaves generates an ASCII representation of the generation waves.
// Uses portable ASCII characters only (no Unicode).
func (p *Plan) RenderWaves() string {
	if len(p.waves) == 0 {
		return "No waves computed. Run ComputeWaves() first."
	}

	var sb strings.Builder
	sb.WriteString("Generation Waves\n")
	sb.WriteString("================\n\n")

	for i, wave := range p.waves {
		plural := "s"
		if wave.Size() == 1 {
			plural = ""
		}
		sb.WriteString(fmt.Sprintf("Wave %d (%d item%s)\n", wave.Number, wave.Size(), plural))
		for j, id := range wave.TaskIDs {
			prefix := "  |-"
			if j == len(wave.TaskIDs)-1 {
				prefix = "  +-"
			}
			task := p.Index[id]
			sb.WriteString(fmt.Sprintf("%s [%s] %s\n", prefix, id, task.Title))
		}
		if i < len(p.waves)-1 {
			sb.WriteString("    |\n    v\n")
		}
	}

	stats := p.GetWaveStats()
	sb.WriteString("\nSummary:\n")
	sb.WriteString(fmt.Sprintf("  Total Waves: %d\n", stats.TotalWaves))
	sb.WriteString(fmt.Sprintf("  Total Items: %d\n", stats.TotalTasks))
	sb.WriteString(fmt.Sprintf("  Max Parallel: %d\n", stats.MaxWaveSize))
	return sb.String()
}

// RenderOrder renders the flat generation order, one item per line.
func (p *Plan) RenderOrder() string {
	order := p.GenerationOrder()
	var sb strings.Builder
	for i, task := range order {
		sb.WriteString(fmt.Sprintf("%3d. [%s] %s %s\n", i+1, task.ID, task.Type, task.Title))
	}
	return sb.String()
}
