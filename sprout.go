package sprout

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Palette of the site. Values follow the brand's greens.
var (
	ColorForest   = Color{R: 0.008, G: 0.173, B: 0.086, A: 1} // overlay background
	ColorTrack    = Color{R: 0.024, G: 0.373, B: 0.275, A: 1} // ring track
	ColorProgress = Color{R: 0.133, G: 0.773, B: 0.369, A: 1} // ring arc
	ColorAccent   = Color{R: 0.290, G: 0.871, B: 0.502, A: 1} // orbiting dots
	ColorMint     = Color{R: 0.733, G: 0.969, B: 0.816, A: 1} // tagline
	ColorPaper    = Color{R: 1, G: 1, B: 1, A: 1}             // section background
	ColorPanel    = Color{R: 0.976, G: 0.98, B: 0.984, A: 1}  // stat cards
	ColorInk      = Color{R: 0.067, G: 0.094, B: 0.153, A: 1} // headings
	ColorMuted    = Color{R: 0.294, G: 0.333, B: 0.388, A: 1} // body text
	ColorLeaf     = Color{R: 0.082, G: 0.502, B: 0.239, A: 1} // highlighted values
)

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// RGBA converts to a premultiplied color.RGBA for drawing.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}
