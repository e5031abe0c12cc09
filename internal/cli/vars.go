package cli

import (
	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	// BasePath is the directory holding .taskdeckrc and the event log.
	BasePath string

	// API is the backend client. The board issues its network calls
	// through this directly so results can be applied on the update loop.
	API api.Client

	// Ctrl is the view-state controller shared by all commands.
	Ctrl *core.Controller

	// EventLog records confirmed mutations; nil when disabled.
	EventLog observability.EventLog
)
