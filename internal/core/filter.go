package core

import (
	"strings"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// ApplyFilter returns the subset of tasks matching the given view criteria,
// preserving collection order. The search query is a case-insensitive
// substring match over title and description. Pure: the input slice is
// never modified.
func ApplyFilter(tasks []models.Task, filter models.FilterState) []models.Task {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t, filter.Status) {
			continue
		}
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		result = append(result, t)
	}
	return result
}

func matchesStatus(t models.Task, status models.StatusFilter) bool {
	switch status {
	case models.StatusActive:
		return !t.Completed
	case models.StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

func matchesQuery(t models.Task, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}
