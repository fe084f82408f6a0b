package geometry

import (
	"image"
	"math"
)

// Line rasterizes the segment a-b with integer Bresenham, endpoints included.
// Only pixels inside bounds are returned. A segment leaving bounds is first
// clipped to it, so work and memory stay proportional to the bounds rather
// than to the distance between the endpoints.
func Line(a, b image.Point, bounds image.Rectangle) []image.Point {
	if bounds.Empty() {
		return nil
	}
	if !a.In(bounds) || !b.In(bounds) {
		var ok bool
		if a, b, ok = clipSegment(a, b, bounds); !ok {
			return nil
		}
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	out := make([]image.Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		p := image.Pt(x, y)
		if p.In(bounds) {
			out = append(out, p)
		}
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	return out
}

// clipSegment is Liang-Barsky against the pixel centers of bounds. The
// parameter math runs in float64 so far-away endpoints cannot overflow; the
// clipped endpoints are rounded and pulled inside bounds.
func clipSegment(a, b image.Point, bounds image.Rectangle) (image.Point, image.Point, bool) {
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-x0, float64(b.Y)-y0
	minX, maxX := float64(bounds.Min.X), float64(bounds.Max.X-1)
	minY, maxY := float64(bounds.Min.Y), float64(bounds.Max.Y-1)

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}

	at := func(t float64) image.Point {
		x := int(math.Round(x0 + t*dx))
		y := int(math.Round(y0 + t*dy))
		return image.Pt(clampInt(x, bounds.Min.X, bounds.Max.X-1), clampInt(y, bounds.Min.Y, bounds.Max.Y-1))
	}
	return at(t0), at(t1), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
