package grid

import "math"

// SnapTargets returns the anchor of every cell in All, in the same order.
func (s *Summary) SnapTargets() []Point {
	out := make([]Point, 0, len(s.All))
	for _, c := range s.All {
		out = append(out, c.Anchor())
	}
	return out
}

// Nearest returns the target closest to p with no range limit. Ties go to the
// earlier target. ok is false only when targets is empty.
func Nearest(targets []Point, p Point) (Point, bool) {
	if len(targets) == 0 {
		return p, false
	}
	best := targets[0]
	bestD := dist2(best, p)
	for _, t := range targets[1:] {
		if d := dist2(t, p); d < bestD {
			best, bestD = t, d
		}
	}
	return best, true
}

func dist2(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Clamp restricts p to the board square.
func Clamp(p Point) Point {
	return Point{
		X: math.Max(0, math.Min(BoardBaseSize, p.X)),
		Y: math.Max(0, math.Min(BoardBaseSize, p.Y)),
	}
}

// Viewport maps base units onto a square on-screen board of SizePx pixels.
type Viewport struct {
	SizePx float64
}

func (v Viewport) Scale() float64 {
	if v.SizePx <= 0 {
		return 0
	}
	return v.SizePx / BoardBaseSize
}

func (v Viewport) ToPixels(p Point) Point {
	s := v.Scale()
	return Point{X: p.X * s, Y: p.Y * s}
}

// FromPixels converts a screen position back to base units. A zero-size
// viewport has no scale; the input is returned unchanged.
func (v Viewport) FromPixels(p Point) Point {
	s := v.Scale()
	if s == 0 {
		return p
	}
	return Point{X: p.X / s, Y: p.Y / s}
}

// ApplyDelta moves a base-unit position by a pixel drag delta.
func (v Viewport) ApplyDelta(p Point, dxPx, dyPx float64) Point {
	d := v.FromPixels(Point{X: dxPx, Y: dyPx})
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}
