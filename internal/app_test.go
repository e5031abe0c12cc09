package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/cli"
)

func TestNewApp_WiresComponents(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Config == nil || app.Client == nil || app.Ctrl == nil {
		t.Fatal("expected config, client, and controller wired")
	}
	if app.EventLog == nil {
		t.Error("expected event log enabled by default")
	}

	if cli.Ctrl != app.Ctrl {
		t.Error("expected CLI controller var wired")
	}
	if cli.API != app.Client {
		t.Error("expected CLI client var wired")
	}
	if cli.BasePath != dir {
		t.Errorf("expected CLI base path %q, got %q", dir, cli.BasePath)
	}
}

func TestNewApp_EventLogDisabled(t *testing.T) {
	dir := t.TempDir()
	config := "eventlog:\n  enabled: false\n"
	if err := os.WriteFile(filepath.Join(dir, ".taskdeckrc.yaml"), []byte(config), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.EventLog != nil {
		t.Error("expected no event log when disabled")
	}
}

func TestResolveBasePath_EnvOverride(t *testing.T) {
	t.Setenv("TASKDECK_HOME", "/tmp/deckhome")
	if got := ResolveBasePath(); got != "/tmp/deckhome" {
		t.Errorf("expected TASKDECK_HOME honored, got %q", got)
	}
}

func TestResolveBasePath_FindsConfigUpward(t *testing.T) {
	t.Setenv("TASKDECK_HOME", "")
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".taskdeckrc"), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}
	t.Chdir(nested)

	got := ResolveBasePath()
	// Resolve symlinks before comparing: t.TempDir may live under one.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("expected base path %q, got %q", wantResolved, gotResolved)
	}
}
