package viewer

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

func TestEyeOffset(t *testing.T) {
	bbox := geometry.BoundingBoxOf(geometry.NewVector3(0, 0, 0), geometry.NewVector3(4, 2, 1))

	cases := map[View]geometry.Vector3{
		ViewXY:    geometry.NewVector3(0, 0, 2),
		ViewXZ:    geometry.NewVector3(0, 4, 0),
		ViewYZ:    geometry.NewVector3(8, 0, 0),
		ViewReset: geometry.NewVector3(5, 5, 5),
	}
	for view, expected := range cases {
		if got := EyeOffset(view, bbox); got != expected {
			t.Errorf("EyeOffset(%v) failed: expected %v, got %v", view, expected, got)
		}
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(" XZ "); err != nil || v != ViewXZ {
		t.Errorf("ParseView failed: got %v, %v", v, err)
	}
	if _, err := ParseView("top"); err == nil {
		t.Errorf("ParseView should reject unknown views")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"solid":             ModeSolid,
		"wireframe":         ModeWireframe,
		"solid + wireframe": ModeSolidWireframe,
		"Wireframe+SOLID":   ModeSolidWireframe,
	}
	for input, expected := range cases {
		got, err := ParseMode(input)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("ParseMode(%q) failed: expected %v, got %v", input, expected, got)
		}
	}

	if _, err := ParseMode("solid + points"); err == nil {
		t.Errorf("ParseMode should reject unknown modes")
	}
	if ModeSolidWireframe.String() != "solid + wireframe" {
		t.Errorf("String failed: got %q", ModeSolidWireframe.String())
	}
}

func TestCameraProjectsCenterToMiddle(t *testing.T) {
	bbox := mesh.UnitCube().BoundingBox()
	for _, view := range []View{ViewReset, ViewXY, ViewXZ, ViewYZ} {
		cam := NewCamera(bbox, view)
		x, y, z := cam.Project(bbox.Center(), 200, 100)
		if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 || z <= 0 {
			t.Errorf("%v: center projected to (%v, %v, %v)", view, x, y, z)
		}
	}
}

func TestCameraFlatBox(t *testing.T) {
	bbox := geometry.BoundingBoxOf(geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 2, 0))
	cam := NewCamera(bbox, ViewXY)

	if cam.Position.Z <= 0 {
		t.Errorf("camera for a flat box should sit above it, got %v", cam.Position)
	}
	if _, _, z := cam.Project(geometry.NewVector3(0, 0, 0), 100, 100); z <= 0 {
		t.Errorf("corner of the box is behind the camera")
	}
}

func TestRenderUnitCube(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 120, 100
	opts.Caption = "cube"

	img, err := Render(context.Background(), mesh.NewModel(mesh.UnitCube()), opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 100 {
		t.Errorf("unexpected image size %v", img.Bounds())
	}
	if got := img.RGBAAt(119, 99); got != opts.Background {
		t.Errorf("corner should be background, got %v", got)
	}
	if got := img.RGBAAt(60, 50); got == opts.Background {
		t.Errorf("center should be covered by the cube")
	}
}

func TestRenderWireframeOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 80, 80
	opts.Mode = ModeWireframe
	opts.View = ViewXY

	img, err := Render(context.Background(), mesh.NewModel(mesh.UnitCube()), opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	wire, surface := 0, 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			switch img.RGBAAt(x, y) {
			case opts.Wire:
				wire++
			case opts.Background:
			default:
				surface++
			}
		}
	}
	if wire == 0 {
		t.Errorf("expected wireframe pixels")
	}
	if surface != 0 {
		t.Errorf("expected no surface pixels in wireframe mode, got %d", surface)
	}
}

func TestRenderEmptyModel(t *testing.T) {
	_, err := Render(context.Background(), mesh.NewModel(), DefaultOptions())
	if !errors.Is(err, mesh.ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel, got %v", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, mesh.NewModel(mesh.UnitCube()), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestShade(t *testing.T) {
	col := color.RGBA{200, 100, 50, 255}
	if got := shade(col, 1); got != col {
		t.Errorf("shade facing the viewer should keep the color, got %v", got)
	}
	if got := shade(col, 0); got.R >= col.R {
		t.Errorf("shade facing away should darken, got %v", got)
	}
}
