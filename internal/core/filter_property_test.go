package core

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/taskdeck/taskdeck/pkg/models"
)

func genTasks(rt *rapid.T) []models.Task {
	n := rapid.IntRange(0, 30).Draw(rt, "n")
	tasks := make([]models.Task, n)
	priorities := []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	for i := range tasks {
		tasks[i] = models.Task{
			ID:          rapid.StringMatching(`[a-z0-9]{4,8}`).Draw(rt, "id"),
			Title:       rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(rt, "title"),
			Description: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(rt, "description"),
			Priority:    rapid.SampledFrom(priorities).Draw(rt, "priority"),
			Completed:   rapid.Bool().Draw(rt, "completed"),
		}
	}
	return tasks
}

func genFilter(rt *rapid.T) models.FilterState {
	statuses := []models.StatusFilter{models.StatusAll, models.StatusActive, models.StatusCompleted}
	return models.FilterState{
		Query:  rapid.StringMatching(`[A-Za-z ]{0,6}`).Draw(rt, "query"),
		Status: rapid.SampledFrom(statuses).Draw(rt, "status"),
	}
}

// Filtering twice with the same criteria yields the same subset.
func TestProperty_FilterIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		filter := genFilter(rt)

		once := ApplyFilter(tasks, filter)
		twice := ApplyFilter(once, filter)

		if !equalIDs(ids(once), ids(twice)) {
			t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
		}
	})
}

// Applying the query then the status yields the same subset as status then
// query, and both equal the combined filter.
func TestProperty_FilterCommutative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		filter := genFilter(rt)

		queryOnly := models.FilterState{Query: filter.Query, Status: models.StatusAll}
		statusOnly := models.FilterState{Status: filter.Status}

		queryThenStatus := ApplyFilter(ApplyFilter(tasks, queryOnly), statusOnly)
		statusThenQuery := ApplyFilter(ApplyFilter(tasks, statusOnly), queryOnly)
		combined := ApplyFilter(tasks, filter)

		if !equalIDs(ids(queryThenStatus), ids(statusThenQuery)) {
			t.Fatalf("order matters: %v vs %v", ids(queryThenStatus), ids(statusThenQuery))
		}
		if !equalIDs(ids(combined), ids(queryThenStatus)) {
			t.Fatalf("combined filter differs: %v vs %v", ids(combined), ids(queryThenStatus))
		}
	})
}

// Every visible task comes from the input, in input order.
func TestProperty_FilterIsOrderedSubset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		filter := genFilter(rt)

		visible := ApplyFilter(tasks, filter)
		if len(visible) > len(tasks) {
			t.Fatalf("visible subset larger than input: %d > %d", len(visible), len(tasks))
		}

		pos := 0
		for _, v := range visible {
			found := false
			for ; pos < len(tasks); pos++ {
				if tasks[pos] == v {
					found = true
					pos++
					break
				}
			}
			if !found {
				t.Fatalf("task %q not found in input order", v.ID)
			}
		}
	})
}
