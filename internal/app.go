// Package internal provides the App struct that wires the taskdeck
// components together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/cli"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
)

// App holds the wired service dependencies.
type App struct {
	BasePath string

	Config   *core.Config
	Client   api.Client
	Ctrl     *core.Controller
	EventLog observability.EventLog
}

// NewApp creates and wires all components. basePath is the directory
// holding .taskdeckrc and the event log (typically the current directory
// or TASKDECK_HOME).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.Config = cfg

	app.Client = api.NewHTTPClient(cfg.ServerURL, cfg.Timeout())

	var events core.EventLogger
	if cfg.EventLogEnabled {
		logPath := filepath.Join(basePath, ".taskdeck_events.jsonl")
		eventLog, logErr := observability.NewJSONLEventLog(logPath)
		if logErr == nil {
			app.EventLog = eventLog
			events = &eventLogAdapter{log: eventLog}
		}
		// Non-fatal: mutation logging is disabled if the file can't be opened.
	}

	app.Ctrl = core.NewController(app.Client, events, cfg.DefaultPriority)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.API = app.Client
	cli.Ctrl = app.Ctrl
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App. Safe to call when the event
// log is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the data directory. TASKDECK_HOME wins;
// otherwise the directory tree is walked up looking for a .taskdeckrc,
// falling back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKDECK_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".taskdeckrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}
