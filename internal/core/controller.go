// Package core contains the view-state controller for taskdeck: the
// in-memory task collection, derived filtering and statistics, and the
// dispatch of create/toggle/delete intents to the backend client.
package core

import (
	"context"
	"errors"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// ErrValidation is returned when the create inputs fail local validation.
// No network call is made in that case.
var ErrValidation = errors.New("title and description are required")

// User-facing banner messages. A banner is cleared only by the next
// successful operation of any kind.
const (
	msgBackendDown  = "backend not running"
	msgCreateFailed = "failed to add task"
	msgToggleFailed = "failed to update task"
	msgDeleteFailed = "failed to delete task"
)

// EventLogger records confirmed mutations. A nil logger disables event
// logging entirely.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Draft holds the create-form input fields before submission.
type Draft struct {
	Title       string
	Description string
	Priority    models.Priority
}

// Controller owns the local task collection and every piece of view state
// derived from it. The collection is a read-through cache of the backend:
// it is mutated only after the server confirms an operation, and Load
// replaces it wholesale.
//
// The controller is not safe for concurrent use. The interactive board
// keeps all mutations on the update loop by issuing network calls in
// commands and applying their results through the Apply* methods; the
// one-shot CLI commands use the blocking Load/Create/Toggle/Delete.
type Controller struct {
	client api.Client
	events EventLogger

	tasks   []models.Task
	filter  models.FilterState
	draft   Draft
	loading bool
	banner  string

	defaultPriority models.Priority
}

// NewController creates a controller backed by the given client.
// defaultPriority seeds the draft priority; empty means medium. events may
// be nil.
func NewController(client api.Client, events EventLogger, defaultPriority models.Priority) *Controller {
	if defaultPriority == "" {
		defaultPriority = models.DefaultPriority
	}
	return &Controller{
		client:          client,
		events:          events,
		filter:          models.FilterState{Status: models.StatusAll},
		draft:           Draft{Priority: defaultPriority},
		defaultPriority: defaultPriority,
	}
}

// --- Network operations (blocking form) ---

// Load fetches the full collection from the backend. On success the local
// collection is replaced and any banner cleared; on failure the previous
// collection is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	c.BeginRequest()
	tasks, err := c.client.List(ctx)
	return c.ApplyLoad(tasks, err)
}

// Create validates the draft and sends it to the backend. Invalid input
// sets the validation banner and returns ErrValidation without any network
// call. On success the server's record is prepended and the draft cleared;
// on failure the draft is kept so the user can retry.
func (c *Controller) Create(ctx context.Context) (*models.Task, error) {
	if err := c.ValidateDraft(); err != nil {
		return nil, err
	}
	title, description, priority := c.TrimmedDraft()
	c.BeginRequest()
	task, err := c.client.Create(ctx, title, description, priority)
	if applyErr := c.ApplyCreate(task, err); applyErr != nil {
		return nil, applyErr
	}
	return task, nil
}

// Toggle flips the completion state of the task with the given ID. The
// server's returned record replaces the local one verbatim.
func (c *Controller) Toggle(ctx context.Context, id string) (*models.Task, error) {
	c.BeginRequest()
	task, err := c.client.Toggle(ctx, id)
	if applyErr := c.ApplyToggle(task, err); applyErr != nil {
		return nil, applyErr
	}
	return task, nil
}

// Delete removes the task with the given ID. The local record is dropped
// only after the server confirms.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.BeginRequest()
	err := c.client.Delete(ctx, id)
	return c.ApplyDelete(id, err)
}

// --- Intent/apply split for the event-driven board ---

// BeginRequest raises the shared loading flag. One flag covers all
// in-flight operations; overlapping requests are not tracked separately
// and the last response to arrive wins.
func (c *Controller) BeginRequest() {
	c.loading = true
}

// ValidateDraft checks the trimmed input fields, setting the validation
// banner on failure.
func (c *Controller) ValidateDraft() error {
	if strings.TrimSpace(c.draft.Title) == "" || strings.TrimSpace(c.draft.Description) == "" {
		c.banner = ErrValidation.Error()
		return ErrValidation
	}
	return nil
}

// TrimmedDraft returns the draft fields with surrounding whitespace
// removed, ready to send to the backend.
func (c *Controller) TrimmedDraft() (title, description string, priority models.Priority) {
	priority = c.draft.Priority
	if priority == "" {
		priority = c.defaultPriority
	}
	return strings.TrimSpace(c.draft.Title), strings.TrimSpace(c.draft.Description), priority
}

// ApplyLoad reconciles the result of a List call.
func (c *Controller) ApplyLoad(tasks []models.Task, err error) error {
	c.loading = false
	if err != nil {
		c.banner = msgBackendDown
		return err
	}
	c.tasks = tasks
	c.banner = ""
	c.logEvent("tasks.loaded", map[string]any{"count": len(tasks)})
	return nil
}

// ApplyCreate reconciles the result of a Create call, prepending the
// server's record so the newest task is displayed first.
func (c *Controller) ApplyCreate(task *models.Task, err error) error {
	c.loading = false
	if err != nil {
		c.banner = msgCreateFailed
		return err
	}
	c.tasks = append([]models.Task{*task}, c.tasks...)
	c.draft = Draft{Priority: c.defaultPriority}
	c.banner = ""
	c.logEvent("task.created", map[string]any{"id": task.ID, "priority": string(task.Priority)})
	return nil
}

// ApplyToggle reconciles the result of a Toggle call. The server is
// authoritative for every field of the returned record. A record that no
// longer exists locally is ignored; it was deleted by a response that
// resolved in the meantime.
func (c *Controller) ApplyToggle(task *models.Task, err error) error {
	c.loading = false
	if err != nil {
		c.banner = msgToggleFailed
		return err
	}
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = *task
			break
		}
	}
	c.banner = ""
	c.logEvent("task.toggled", map[string]any{"id": task.ID, "completed": task.Completed})
	return nil
}

// ApplyDelete reconciles the result of a Delete call.
func (c *Controller) ApplyDelete(id string, err error) error {
	c.loading = false
	if err != nil {
		c.banner = msgDeleteFailed
		return err
	}
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	c.banner = ""
	c.logEvent("task.deleted", map[string]any{"id": id})
	return nil
}

// --- Derived state ---

// Visible applies the current filter to the collection. Recomputed on
// every call; never cached.
func (c *Controller) Visible() []models.Task {
	return ApplyFilter(c.tasks, c.filter)
}

// Stats aggregates the full collection, not the filtered subset.
func (c *Controller) Stats() models.Stats {
	return ComputeStats(c.tasks)
}

// Tasks returns a copy of the full collection in display order.
func (c *Controller) Tasks() []models.Task {
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// --- View state accessors ---

func (c *Controller) SetQuery(query string)                { c.filter.Query = query }
func (c *Controller) SetStatus(status models.StatusFilter) { c.filter.Status = status }
func (c *Controller) Filter() models.FilterState           { return c.filter }

func (c *Controller) SetDraftTitle(title string)             { c.draft.Title = title }
func (c *Controller) SetDraftDescription(description string) { c.draft.Description = description }
func (c *Controller) SetDraftPriority(p models.Priority)     { c.draft.Priority = p }
func (c *Controller) CurrentDraft() Draft                    { return c.draft }

// ClearDraft resets the input fields to their initial state.
func (c *Controller) ClearDraft() {
	c.draft = Draft{Priority: c.defaultPriority}
}

// Loading reports whether any request is in flight.
func (c *Controller) Loading() bool { return c.loading }

// ErrorMessage returns the current banner text, or "" when no error is
// displayed.
func (c *Controller) ErrorMessage() string { return c.banner }

func (c *Controller) logEvent(eventType string, data map[string]any) {
	if c.events == nil {
		return
	}
	_ = c.events.LogEvent(eventType, data) // Event logging is best effort.
}
