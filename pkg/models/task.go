package models

import (
	"fmt"
	"time"
)

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when no priority is supplied.
const DefaultPriority = PriorityMedium

// ParsePriority validates a priority string. An empty string maps to the
// default priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return DefaultPriority, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q: must be one of low, medium, high", s)
}

// StatusFilter selects which completion states are visible.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatusFilter validates a status filter string. An empty string maps
// to StatusAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "":
		return StatusAll, nil
	case StatusAll, StatusActive, StatusCompleted:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("invalid status %q: must be one of all, active, completed", s)
}

// Task represents a single to-do item. The ID and CreatedAt fields are
// assigned by the backend; the client never invents them. JSON tags match
// the wire shape of the REST collaborator.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

// FilterState holds the user-entered view criteria. It is derived input,
// never persisted.
type FilterState struct {
	Query  string
	Status StatusFilter
}

// Stats holds aggregate counts over the full task collection.
// Active + Completed always equals Total.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Completed    int `json:"completed" yaml:"completed"`
	Active       int `json:"active" yaml:"active"`
	HighPriority int `json:"highPriority" yaml:"high_priority"`
}
