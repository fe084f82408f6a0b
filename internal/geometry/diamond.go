package geometry

import (
	"image"
)

// DefaultBaseSize is the side of a base square when the layout gives none.
const DefaultBaseSize = 2

type Base int

const (
	FIRST Base = iota
	SECOND
	THIRD
	HOME
)

var baseNames = [...]string{"first", "second", "third", "home"}

// Bases lists the bases in diamond order.
var Bases = [...]Base{FIRST, SECOND, THIRD, HOME}

func (b Base) String() string {
	if b < FIRST || b > HOME {
		return "unknown"
	}
	return baseNames[b]
}

// Square is one filled base marker.
type Square struct {
	Base   Base
	Anchor image.Point
	Pixels []image.Point
}

// Segment is one connecting line of the diamond.
type Segment struct {
	From, To Base
	Pixels   []image.Point
}

// DiamondGeometry holds the clipped pixels of the four base squares and the
// four connecting lines. Squares are in FIRST..HOME order and lines run
// first-second, second-third, third-home, home-first.
type DiamondGeometry struct {
	Squares [4]Square
	Lines   [4]Segment
}

// LinePixels returns every line pixel in segment order.
func (d DiamondGeometry) LinePixels() []image.Point {
	var out []image.Point
	for _, seg := range d.Lines {
		out = append(out, seg.Pixels...)
	}
	return out
}

// Generator computes geometry clipped to a fixed matrix.
type Generator struct {
	Bounds image.Rectangle
}

func NewGenerator(width, height int) Generator {
	return Generator{Bounds: image.Rect(0, 0, width, height)}
}

var segmentOrder = [4][2]Base{{FIRST, SECOND}, {SECOND, THIRD}, {THIRD, HOME}, {HOME, FIRST}}

// Diamond builds the base squares (side size, DefaultBaseSize when size <= 0)
// centered on each anchor plus the four connecting lines. The result depends
// only on its inputs.
func (g Generator) Diamond(first, second, third, home image.Point, size int) DiamondGeometry {
	if size <= 0 {
		size = DefaultBaseSize
	}
	anchors := [4]image.Point{first, second, third, home}

	var out DiamondGeometry
	for i, base := range Bases {
		sq := Clip(CenteredOn(anchors[i], size, size), g.Bounds)
		out.Squares[i] = Square{Base: base, Anchor: anchors[i], Pixels: Fill(sq)}
	}
	for i, pair := range segmentOrder {
		out.Lines[i] = Segment{
			From:   pair[0],
			To:     pair[1],
			Pixels: Line(anchors[pair[0]], anchors[pair[1]], g.Bounds),
		}
	}
	return out
}
