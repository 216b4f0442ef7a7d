package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/meshview/pkg/mesh"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
const movedOBJ = "v 0 0 0\nv 7 0 0\nv 0 1 0\nf 1 2 3\n"

func quietLog(string, ...any) {}

func TestReloadReplacesModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.obj")
	if err := os.WriteFile(path, []byte(movedOBJ), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	model := mesh.NewModel(mesh.UnitCube())
	r, err := New(model, 10*time.Millisecond, quietLog)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.watcher.Close()

	if err := r.Watch(path, path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if len(r.Files()) != 1 {
		t.Errorf("duplicate paths should be watched once, got %v", r.Files())
	}

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	bbox, err := model.BoundingBox()
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}
	if bbox.Max.X != 7 {
		t.Errorf("model was not replaced: %v", bbox)
	}
}

func TestReloadFailureKeepsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.obj")
	if err := os.WriteFile(path, []byte("f 1 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	model := mesh.NewModel(mesh.UnitCube())
	r, err := New(model, 10*time.Millisecond, quietLog)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.watcher.Close()

	var reported error
	r.OnReload(func(err error) { reported = err })

	if err := r.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := r.Reload(context.Background()); !errors.Is(err, mesh.ErrDegenerateFace) {
		t.Errorf("expected ErrDegenerateFace, got %v", err)
	}
	if !errors.Is(reported, mesh.ErrDegenerateFace) {
		t.Errorf("callback did not receive the error, got %v", reported)
	}
	if model.Len() != 1 || model.Meshes()[0].Name() != "unit cube" {
		t.Errorf("failed reload changed the model")
	}
}

func TestRunReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.obj")
	if err := os.WriteFile(path, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	model := mesh.NewModel()
	r, err := New(model, 20*time.Millisecond, quietLog)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	reloaded := make(chan error, 4)
	r.OnReload(func(err error) { reloaded <- err })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	if err := os.WriteFile(path, []byte(movedOBJ), 0o644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Errorf("reload failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload after file change")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from Run, got %v", err)
	}
	if model.Len() != 1 {
		t.Errorf("expected 1 mesh after reload, got %d", model.Len())
	}
}

func TestReloadWithoutFilesKeepsModel(t *testing.T) {
	model := mesh.NewModel(mesh.UnitCube())
	r, err := New(model, 10*time.Millisecond, quietLog)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.watcher.Close()

	if err := r.Reload(context.Background()); !errors.Is(err, ErrNoFiles) {
		t.Errorf("expected ErrNoFiles, got %v", err)
	}
	if model.Len() != 1 {
		t.Errorf("Reload without files changed the model: expected 1 mesh, got %d", model.Len())
	}
}

func TestReloadsAreSerialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.obj")
	if err := os.WriteFile(path, []byte(movedOBJ), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	model := mesh.NewModel(mesh.UnitCube())
	r, err := New(model, 10*time.Millisecond, quietLog)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.watcher.Close()
	if err := r.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Hold the reload lock as if another reload were still running
	r.reloading.Lock()
	done := make(chan error, 1)
	go func() { done <- r.Reload(context.Background()) }()

	select {
	case <-done:
		t.Fatalf("Reload ran while another reload was in progress")
	case <-time.After(50 * time.Millisecond):
	}
	if model.Meshes()[0].Name() != "unit cube" {
		t.Errorf("model changed while another reload was in progress")
	}

	r.reloading.Unlock()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Reload failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Reload did not finish")
	}
	bbox, err := model.BoundingBox()
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}
	if bbox.Max.X != 7 {
		t.Errorf("model was not replaced: %v", bbox)
	}
}
