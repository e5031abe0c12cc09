package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// Output formats accepted by the -o flag.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// writeStructured encodes v as JSON or YAML to w.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json output: %w", err)
		}
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q: must be table, json, or yaml", format)
	}
	return nil
}

// writeTaskTable renders tasks as an aligned text table.
func writeTaskTable(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks match.")
		return
	}

	idWidth := len("ID")
	for _, t := range tasks {
		if len(t.ID) > idWidth {
			idWidth = len(t.ID)
		}
	}

	fmt.Fprintf(w, "%-*s  %-4s  %-8s  %-10s  %s\n", idWidth, "ID", "DONE", "PRIORITY", "CREATED", "TITLE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Local().Format("2006-01-02")
		}
		title := t.Title
		if desc := strings.TrimSpace(t.Description); desc != "" {
			title = fmt.Sprintf("%s (%s)", title, desc)
		}
		fmt.Fprintf(w, "%-*s  [%s]   %-8s  %-10s  %s\n", idWidth, t.ID, done, t.Priority, created, title)
	}
}

// writeStats renders stats as aligned label/value lines.
func writeStats(w io.Writer, stats models.Stats) {
	fmt.Fprintf(w, "%-14s %d\n", "Total", stats.Total)
	fmt.Fprintf(w, "%-14s %d\n", "Active", stats.Active)
	fmt.Fprintf(w, "%-14s %d\n", "Completed", stats.Completed)
	fmt.Fprintf(w, "%-14s %d\n", "High priority", stats.HighPriority)
}

// age renders a compact relative age for board rows.
func age(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
