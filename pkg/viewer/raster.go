package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenPoint is a projected vertex: pixel position plus camera depth
type screenPoint struct {
	X, Y, Z float64
}

// canvas is an RGBA image with a depth buffer; smaller depth is closer
type canvas struct {
	img   *image.RGBA
	depth []float64
}

func newCanvas(width, height int, background color.RGBA) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.img.SetRGBA(x, y, background)
		}
	}
	return c
}

// plot sets a pixel if it passes the depth test. bias lets lines win over
// the surface they lie on.
func (c *canvas) plot(x, y int, z, bias float64, col color.RGBA) {
	bounds := c.img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Max.X || y >= bounds.Max.Y {
		return
	}
	idx := y*bounds.Max.X + x
	if z-bias > c.depth[idx] {
		return
	}
	c.depth[idx] = math.Min(z, c.depth[idx])
	c.img.SetRGBA(x, y, col)
}

func edgeFunction(a, b screenPoint, px, py float64) float64 {
	return (px-a.X)*(b.Y-a.Y) - (py-a.Y)*(b.X-a.X)
}

// fillTriangle rasterizes a triangle by testing pixel centers inside its
// screen-space bounding rectangle against barycentric weights.
func (c *canvas) fillTriangle(p0, p1, p2 screenPoint, col color.RGBA) {
	area := edgeFunction(p0, p1, p2.X, p2.Y)
	if area == 0 {
		return
	}

	bounds := c.img.Bounds()
	minX := int(math.Max(0, math.Floor(math.Min(p0.X, math.Min(p1.X, p2.X)))))
	maxX := int(math.Min(float64(bounds.Max.X-1), math.Ceil(math.Max(p0.X, math.Max(p1.X, p2.X)))))
	minY := int(math.Max(0, math.Floor(math.Min(p0.Y, math.Min(p1.Y, p2.Y)))))
	maxY := int(math.Min(float64(bounds.Max.Y-1), math.Ceil(math.Max(p0.Y, math.Max(p1.Y, p2.Y)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edgeFunction(p1, p2, px, py) / area
			w1 := edgeFunction(p2, p0, px, py) / area
			w2 := edgeFunction(p0, p1, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c.plot(x, y, w0*p0.Z+w1*p1.Z+w2*p2.Z, 0, col)
		}
	}
}

// drawLine steps along the longer screen axis, interpolating depth
func (c *canvas) drawLine(a, b screenPoint, col color.RGBA) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		z := a.Z + t*(b.Z-a.Z)
		c.plot(int(math.Floor(a.X+t*dx)), int(math.Floor(a.Y+t*dy)), z, 1e-3*z, col)
	}
}
