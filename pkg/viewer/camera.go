package viewer

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// View is a camera preset derived from the model's bounding box
type View int

const (
	ViewReset View = iota
	ViewXY
	ViewXZ
	ViewYZ
)

func (v View) String() string {
	switch v {
	case ViewReset:
		return "reset"
	case ViewXY:
		return "xy"
	case ViewXZ:
		return "xz"
	case ViewYZ:
		return "yz"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// ParseView maps "xy", "xz", "yz" and "reset" (any case) to a View
func ParseView(name string) (View, error) {
	for _, v := range []View{ViewReset, ViewXY, ViewXZ, ViewYZ} {
		if strings.EqualFold(strings.TrimSpace(name), v.String()) {
			return v, nil
		}
	}
	return ViewReset, fmt.Errorf("unknown view %q (expected xy, xz, yz or reset)", name)
}

// EyeOffset returns the camera position relative to the box center for a
// view: twice the box depth along the axis the view looks down. The reset
// view looks at the box diagonally from 1.25 times its largest dimension.
func EyeOffset(view View, bbox geometry.BoundingBox) geometry.Vector3 {
	size := bbox.Size()
	switch view {
	case ViewXY:
		return geometry.NewVector3(0, 0, 2*size.Z)
	case ViewXZ:
		return geometry.NewVector3(0, 2*size.Y, 0)
	case ViewYZ:
		return geometry.NewVector3(2*size.X, 0, 0)
	}
	d := 1.25 * bbox.MaxDimension()
	return geometry.NewVector3(d, d, d)
}

// Camera is a perspective camera looking at a target point
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Field of view in radians
}

// NewCamera positions a camera for view so the whole box is visible
func NewCamera(bbox geometry.BoundingBox, view View) *Camera {
	const fov = math.Pi / 4

	center := bbox.Center()
	offset := EyeOffset(view, bbox)

	direction := offset.Normalize()
	if direction == (geometry.Vector3{}) {
		// Flat along the view axis, or a single point
		direction = EyeOffset(view, geometry.BoundingBoxOf(geometry.Vector3{}, geometry.NewVector3(1, 1, 1))).Normalize()
	}

	// Far enough back for the bounding sphere to fit the field of view
	fit := 0.5 * bbox.Diagonal() / math.Sin(fov/2)
	distance := math.Max(offset.Length(), fit)
	if distance == 0 {
		distance = 1
	}

	up := geometry.NewVector3(0, 0, 1)
	if view == ViewXY {
		up = geometry.NewVector3(0, 1, 0)
	}

	return &Camera{
		Position: center.Add(direction.Scale(distance)),
		Target:   center,
		Up:       up,
		FOV:      fov,
	}
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Project maps a world point to screen coordinates. The third value is the
// distance along the viewing direction; points with depth <= 0 are behind
// the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)
	if z <= 0 {
		return 0, 0, z
	}

	// Square pixels: the vertical extent follows the field of view
	scale := (height / 2) / math.Tan(c.FOV/2)
	screenX := width/2 + x/z*scale
	screenY := height/2 - y/z*scale
	return screenX, screenY, z
}
