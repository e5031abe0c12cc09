package core

import (
	"testing"

	"github.com/taskdeck/taskdeck/pkg/models"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (models.Stats{}) {
		t.Errorf("expected zero stats for empty collection, got %+v", stats)
	}
}

func TestComputeStats_MixedCollection(t *testing.T) {
	tasks := []models.Task{
		task("1", "A", "", models.PriorityHigh, false),
		task("2", "B", "", models.PriorityLow, true),
	}

	stats := ComputeStats(tasks)
	want := models.Stats{Total: 2, Completed: 1, Active: 1, HighPriority: 1}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}

func TestComputeStats_CompletedHighPriorityNotCounted(t *testing.T) {
	tasks := []models.Task{
		task("1", "A", "", models.PriorityHigh, true),
		task("2", "B", "", models.PriorityHigh, false),
	}

	stats := ComputeStats(tasks)
	if stats.HighPriority != 1 {
		t.Errorf("completed high-priority task must not count, got %d", stats.HighPriority)
	}
}
