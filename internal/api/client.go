// Package api implements the client for the external task backend.
// The backend owns task identity and lifecycle; this client only speaks
// the REST contract and never caches anything.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 5 * time.Second

// Client defines the operations the backend supports. Callers never build
// HTTP requests directly.
type Client interface {
	// List returns the full task collection in server order.
	List(ctx context.Context) ([]models.Task, error)

	// Create stores a new task and returns the server's record,
	// including the assigned ID and creation time.
	Create(ctx context.Context, title, description string, priority models.Priority) (*models.Task, error)

	// Toggle flips the completion state of a task and returns the
	// server's updated record.
	Toggle(ctx context.Context, id string) (*models.Task, error)

	// Delete removes a task by ID.
	Delete(ctx context.Context, id string) error
}

// HTTPClient implements Client against a JSON REST backend.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient creates a client for the backend at baseURL. A zero timeout
// falls back to DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// createRequest is the POST /tasks body.
type createRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (c *HTTPClient) Create(ctx context.Context, title, description string, priority models.Priority) (*models.Task, error) {
	body := createRequest{
		Title:       title,
		Description: description,
		Priority:    priority,
	}
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

func (c *HTTPClient) Toggle(ctx context.Context, id string) (*models.Task, error) {
	// The server flips the completed flag itself; no body is sent and the
	// returned record is authoritative for every field.
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return &task, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// do executes one request. Any 2xx status counts as success; the response
// body is decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
