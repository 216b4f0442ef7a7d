package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Mode selects what Render draws
type Mode uint8

const (
	ModeSolid Mode = 1 << iota
	ModeWireframe

	ModeSolidWireframe = ModeSolid | ModeWireframe
)

// Modes lists the display modes offered to users
var Modes = []string{"solid", "wireframe", "solid + wireframe"}

func (m Mode) String() string {
	var parts []string
	if m&ModeSolid != 0 {
		parts = append(parts, "solid")
	}
	if m&ModeWireframe != 0 {
		parts = append(parts, "wireframe")
	}
	return strings.Join(parts, " + ")
}

// ParseMode parses a '+' separated list such as "solid + wireframe"
func ParseMode(s string) (Mode, error) {
	var mode Mode
	for _, part := range strings.Split(s, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "solid":
			mode |= ModeSolid
		case "wireframe":
			mode |= ModeWireframe
		default:
			return 0, fmt.Errorf("unknown display mode %q", strings.TrimSpace(part))
		}
	}
	return mode, nil
}

// Options configures a snapshot
type Options struct {
	Width, Height int
	View          View
	Mode          Mode
	Background    color.RGBA
	Surface       color.RGBA
	Wire          color.RGBA
	// Caption is drawn in the top left corner when set
	Caption string
}

// DefaultOptions returns a 640x550 solid + wireframe snapshot of the reset view
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     550,
		View:       ViewReset,
		Mode:       ModeSolidWireframe,
		Background: color.RGBA{255, 255, 255, 255},
		Surface:    color.RGBA{204, 204, 255, 255},
		Wire:       color.RGBA{0, 0, 0, 255},
	}
}

// Render draws every mesh of the model: the face-expanded polygons for the
// surface and the deduplicated edge segments for the wireframe.
func Render(ctx context.Context, model *mesh.Model, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}

	bbox, err := model.BoundingBox()
	if err != nil {
		return nil, err
	}

	cam := NewCamera(bbox, opts.View)
	c := newCanvas(opts.Width, opts.Height, opts.Background)
	w, h := float64(opts.Width), float64(opts.Height)
	forward := cam.Forward()

	project := func(v geometry.Vector3) (screenPoint, bool) {
		x, y, z := cam.Project(v, w, h)
		return screenPoint{X: x, Y: y, Z: z}, z > 0
	}

	for _, m := range model.Meshes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if opts.Mode&ModeSolid != 0 {
			for _, polygon := range m.FaceVertices() {
				for i := 1; i < len(polygon)-1; i++ {
					a, b, d := polygon[0], polygon[i], polygon[i+1]
					p0, ok0 := project(a)
					p1, ok1 := project(b)
					p2, ok2 := project(d)
					if !ok0 || !ok1 || !ok2 {
						continue
					}
					normal := geometry.TriangleNormal(a, b, d)
					c.fillTriangle(p0, p1, p2, shade(opts.Surface, math.Abs(normal.Dot(forward))))
				}
			}
		}

		if opts.Mode&ModeWireframe != 0 {
			for _, segment := range m.Segments() {
				p0, ok0 := project(segment.A)
				p1, ok1 := project(segment.B)
				if !ok0 || !ok1 {
					continue
				}
				c.drawLine(p0, p1, opts.Wire)
			}
		}
	}

	if opts.Caption != "" {
		drawCaption(c.img, opts.Caption, opts.Wire)
	}
	return c.img, nil
}

// shade darkens col for surfaces facing away from the viewer
func shade(col color.RGBA, facing float64) color.RGBA {
	k := 0.45 + 0.55*facing
	return color.RGBA{
		R: uint8(float64(col.R) * k),
		G: uint8(float64(col.G) * k),
		B: uint8(float64(col.B) * k),
		A: col.A,
	}
}

func drawCaption(img *image.RGBA, text string, col color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(6, 6+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
