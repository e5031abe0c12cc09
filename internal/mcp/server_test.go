package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// fakeBackend implements api.Client with an in-memory collection.
type fakeBackend struct {
	tasks  []models.Task
	nextID int
	down   bool
}

func (f *fakeBackend) List(_ context.Context) ([]models.Task, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	out := make([]models.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeBackend) Create(_ context.Context, title, description string, priority models.Priority) (*models.Task, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	f.nextID++
	task := models.Task{
		ID:          string(rune('0' + f.nextID)),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}
	f.tasks = append([]models.Task{task}, f.tasks...)
	return &task, nil
}

func (f *fakeBackend) Toggle(_ context.Context, id string) (*models.Task, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	if f.down {
		return errors.New("connection refused")
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func newTestServer(backend *fakeBackend) *Server {
	ctrl := core.NewController(backend, nil, "")
	return NewServer(ctrl, "test")
}

func TestNewServer(t *testing.T) {
	s := newTestServer(&fakeBackend{})
	if s.MCPServer() == nil {
		t.Fatal("expected underlying MCP server")
	}
}

func TestHandleListTasks(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{
		{ID: "1", Title: "Alpha", Description: "x", Priority: models.PriorityHigh},
		{ID: "2", Title: "Beta", Description: "y", Priority: models.PriorityLow, Completed: true},
	}}
	s := newTestServer(backend)

	result, out, err := s.handleListTasks(context.Background(), nil, listTasksInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if out.Count != 2 {
		t.Errorf("expected 2 tasks, got %d", out.Count)
	}
}

func TestHandleListTasks_StatusAndQuery(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{
		{ID: "1", Title: "Alpha", Description: "x"},
		{ID: "2", Title: "Beta", Description: "y", Completed: true},
		{ID: "3", Title: "Alpine", Description: "z"},
	}}
	s := newTestServer(backend)

	_, out, err := s.handleListTasks(context.Background(), nil, listTasksInput{Status: "active", Query: "alp"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("expected 2 matches, got %d", out.Count)
	}
	for _, task := range out.Tasks {
		if task.Completed {
			t.Errorf("completed task %s leaked through active filter", task.ID)
		}
	}
}

func TestHandleListTasks_InvalidStatus(t *testing.T) {
	s := newTestServer(&fakeBackend{})

	result, _, err := s.handleListTasks(context.Background(), nil, listTasksInput{Status: "done"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for invalid status")
	}
}

func TestHandleListTasks_BackendDown(t *testing.T) {
	s := newTestServer(&fakeBackend{down: true})

	result, _, err := s.handleListTasks(context.Background(), nil, listTasksInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result when backend is down")
	}
}

func TestHandleCreateTask(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestServer(backend)

	result, out, err := s.handleCreateTask(context.Background(), nil, createTaskInput{
		Title:       "buy milk",
		Description: "two liters",
		Priority:    "high",
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if out.Title != "buy milk" || out.Priority != "high" {
		t.Errorf("unexpected output %+v", out)
	}
	if len(backend.tasks) != 1 {
		t.Errorf("expected task stored on backend, got %d", len(backend.tasks))
	}
}

func TestHandleCreateTask_MissingFields(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestServer(backend)

	result, _, err := s.handleCreateTask(context.Background(), nil, createTaskInput{Title: "   "})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for blank title")
	}
	if len(backend.tasks) != 0 {
		t.Error("validation failure must not reach the backend")
	}
}

func TestHandleToggleTask(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{{ID: "1", Title: "A", Description: "a"}}}
	s := newTestServer(backend)

	result, out, err := s.handleToggleTask(context.Background(), nil, toggleTaskInput{TaskID: "1"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if !out.Completed {
		t.Error("expected completed true after toggle")
	}
}

func TestHandleToggleTask_MissingID(t *testing.T) {
	s := newTestServer(&fakeBackend{})

	result, _, err := s.handleToggleTask(context.Background(), nil, toggleTaskInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for missing task_id")
	}
}

func TestHandleDeleteTask(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{{ID: "1", Title: "A", Description: "a"}}}
	s := newTestServer(backend)

	result, out, err := s.handleDeleteTask(context.Background(), nil, deleteTaskInput{TaskID: "1"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if out.Message == "" {
		t.Error("expected confirmation message")
	}
	if len(backend.tasks) != 0 {
		t.Error("expected task removed from backend")
	}
}

func TestHandleGetStats(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{
		{ID: "1", Title: "A", Description: "a", Priority: models.PriorityHigh},
		{ID: "2", Title: "B", Description: "b", Priority: models.PriorityLow, Completed: true},
	}}
	s := newTestServer(backend)

	result, out, err := s.handleGetStats(context.Background(), nil, getStatsInput{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("unexpected error result: %+v", result)
	}

	want := statsOutput{Total: 2, Completed: 1, Active: 1, HighPriority: 1}
	if out != want {
		t.Errorf("expected %+v, got %+v", want, out)
	}
}
