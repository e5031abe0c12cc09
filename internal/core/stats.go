package core

import "github.com/taskdeck/taskdeck/pkg/models"

// ComputeStats aggregates the full task collection. HighPriority counts
// tasks that are both high priority and still active. Recomputed on every
// call rather than cached; the collection is small and a linear scan is
// cheaper than invalidation bookkeeping.
func ComputeStats(tasks []models.Task) models.Stats {
	stats := models.Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if t.Priority == models.PriorityHigh {
			stats.HighPriority++
		}
	}
	return stats
}
