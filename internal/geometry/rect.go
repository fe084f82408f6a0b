package geometry

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// CenteredOn returns a widthPx x heightPx rectangle whose center is anchor.
// Even sizes put the extra pixel after the anchor, so a 2px square at x=10
// covers columns 9 and 10.
func CenteredOn(anchor image.Point, widthPx, heightPx int) image.Rectangle {
	if widthPx < 0 {
		widthPx = 0
	}
	if heightPx < 0 {
		heightPx = 0
	}
	min := image.Pt(anchor.X-widthPx/2, anchor.Y-heightPx/2)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(widthPx, heightPx))}
}

// FitSquare returns the largest square that fits into rect, anchored at the top-left.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	if size < 0 {
		size = 0
	}
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+size, rect.Min.Y+size)
}

// Clip intersects rect with bounds; the result is empty when they do not overlap.
func Clip(rect, bounds image.Rectangle) image.Rectangle {
	return Normalize(rect).Intersect(bounds)
}

// Fill enumerates every pixel of rect row-major.
func Fill(rect image.Rectangle) []image.Point {
	rect = Normalize(rect)
	if rect.Empty() {
		return nil
	}
	out := make([]image.Point, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out = append(out, image.Pt(x, y))
		}
	}
	return out
}
