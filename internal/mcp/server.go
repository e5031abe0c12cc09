// Package mcp provides an MCP (Model Context Protocol) server that exposes
// taskdeck's task operations as tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// Server wraps the view-state controller and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	ctrl   *core.Controller
}

// NewServer creates a new MCP server around the given controller.
func NewServer(ctrl *core.Controller, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{ctrl: ctrl}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskdeck", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter tasks by status (all, active, completed)"`
	Query  string `json:"query,omitempty" jsonschema:"case-insensitive substring match over title and description"`
}

type taskOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type createTaskInput struct {
	Title       string `json:"title" jsonschema:"required,the task title"`
	Description string `json:"description" jsonschema:"required,the task description"`
	Priority    string `json:"priority,omitempty" jsonschema:"priority (low, medium, high); defaults to medium"`
}

type toggleTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the server-assigned task identifier"`
}

type deleteTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the server-assigned task identifier"`
}

type deleteTaskOutput struct {
	Message string `json:"message"`
}

type getStatsInput struct{}

type statsOutput struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Active       int `json:"active"`
	HighPriority int `json:"high_priority"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks from the backend, optionally filtered by status and a search query. Returns tasks newest first.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new task. Title and description are required; the server assigns the ID and creation time.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_task",
		Description: "Flip a task's completion state. Returns the server's updated record.",
	}, s.handleToggleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get aggregate statistics over the full task collection: total, active, completed, and high-priority-active counts.",
	}, s.handleGetStats)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(ctx context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	status, err := models.ParseStatusFilter(input.Status)
	if err != nil {
		return errorResult(err.Error()), listTasksOutput{}, nil
	}

	if err := s.ctrl.Load(ctx); err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	s.ctrl.SetQuery(input.Query)
	s.ctrl.SetStatus(status)
	visible := s.ctrl.Visible()

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(visible)),
		Count: len(visible),
	}
	for i, t := range visible {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleCreateTask(ctx context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	priority, err := models.ParsePriority(input.Priority)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}

	s.ctrl.SetDraftTitle(input.Title)
	s.ctrl.SetDraftDescription(input.Description)
	s.ctrl.SetDraftPriority(priority)

	task, err := s.ctrl.Create(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleToggleTask(ctx context.Context, _ *gomcp.CallToolRequest, input toggleTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	task, err := s.ctrl.Toggle(ctx, input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("toggling task %s: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleDeleteTask(ctx context.Context, _ *gomcp.CallToolRequest, input deleteTaskInput) (*gomcp.CallToolResult, deleteTaskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), deleteTaskOutput{}, nil
	}

	if err := s.ctrl.Delete(ctx, input.TaskID); err != nil {
		return errorResult(fmt.Sprintf("deleting task %s: %s", input.TaskID, err)), deleteTaskOutput{}, nil
	}
	return nil, deleteTaskOutput{Message: fmt.Sprintf("task %s deleted", input.TaskID)}, nil
}

func (s *Server) handleGetStats(ctx context.Context, _ *gomcp.CallToolRequest, _ getStatsInput) (*gomcp.CallToolResult, statsOutput, error) {
	if err := s.ctrl.Load(ctx); err != nil {
		return errorResult(fmt.Sprintf("loading tasks: %s", err)), statsOutput{}, nil
	}

	stats := s.ctrl.Stats()
	return nil, statsOutput{
		Total:        stats.Total,
		Completed:    stats.Completed,
		Active:       stats.Active,
		HighPriority: stats.HighPriority,
	}, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func errorResult(message string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		IsError: true,
		Content: []gomcp.Content{&gomcp.TextContent{Text: message}},
	}
}
