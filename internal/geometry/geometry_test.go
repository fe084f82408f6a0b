package geometry

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/rook-computer/scoreboard/internal/layout"
)

func TestLineEndpointsAndOrder(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 32)
	got := Line(image.Pt(0, 0), image.Pt(3, 1), bounds)
	want := []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	rev := Line(image.Pt(5, 5), image.Pt(5, 2), bounds)
	if len(rev) != 4 || rev[0] != image.Pt(5, 5) || rev[3] != image.Pt(5, 2) {
		t.Fatalf("expected vertical line from (5,5) to (5,2), got %v", rev)
	}

	single := Line(image.Pt(7, 7), image.Pt(7, 7), bounds)
	if len(single) != 1 {
		t.Fatalf("expected a single pixel, got %v", single)
	}
}

func TestLineClipsOutsidePixels(t *testing.T) {
	bounds := image.Rect(0, 0, 8, 8)
	got := Line(image.Pt(-3, 2), image.Pt(10, 2), bounds)
	if len(got) != 8 {
		t.Fatalf("expected 8 in-bounds pixels, got %d: %v", len(got), got)
	}
	for _, p := range got {
		if !p.In(bounds) {
			t.Fatalf("pixel %v outside bounds", p)
		}
	}
}

func TestCenteredOn(t *testing.T) {
	cases := []struct {
		size int
		want image.Rectangle
	}{
		{2, image.Rect(9, 4, 11, 6)},
		{3, image.Rect(9, 4, 12, 7)},
		{1, image.Rect(10, 5, 11, 6)},
	}
	for _, tc := range cases {
		if got := CenteredOn(image.Pt(10, 5), tc.size, tc.size); got != tc.want {
			t.Fatalf("size %d: expected %v, got %v", tc.size, tc.want, got)
		}
	}
}

func TestDiamondOrderAndDefaults(t *testing.T) {
	g := NewGenerator(64, 32)
	d := g.Diamond(image.Pt(60, 8), image.Pt(55, 3), image.Pt(50, 8), image.Pt(55, 13), 0)

	for i, sq := range d.Squares {
		if sq.Base != Bases[i] {
			t.Fatalf("expected square %d to be %s, got %s", i, Bases[i], sq.Base)
		}
		if len(sq.Pixels) != DefaultBaseSize*DefaultBaseSize {
			t.Fatalf("expected %d pixels for %s, got %d", DefaultBaseSize*DefaultBaseSize, sq.Base, len(sq.Pixels))
		}
	}
	first := d.Squares[0].Pixels
	want := []image.Point{{59, 7}, {60, 7}, {59, 8}, {60, 8}}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("expected row-major square %v, got %v", want, first)
	}

	wantPairs := [4][2]Base{{FIRST, SECOND}, {SECOND, THIRD}, {THIRD, HOME}, {HOME, FIRST}}
	for i, seg := range d.Lines {
		if seg.From != wantPairs[i][0] || seg.To != wantPairs[i][1] {
			t.Fatalf("expected line %d %v, got %s-%s", i, wantPairs[i], seg.From, seg.To)
		}
		if len(seg.Pixels) == 0 {
			t.Fatalf("expected pixels for line %d", i)
		}
	}
	if d.Lines[0].Pixels[0] != image.Pt(60, 8) {
		t.Fatalf("expected first line to start at first base, got %v", d.Lines[0].Pixels[0])
	}
}

func TestDiamondDeterministic(t *testing.T) {
	g := NewGenerator(64, 32)
	a := g.Diamond(image.Pt(20, 10), image.Pt(15, 5), image.Pt(10, 10), image.Pt(15, 15), 3)
	b := g.Diamond(image.Pt(20, 10), image.Pt(15, 5), image.Pt(10, 10), image.Pt(15, 15), 3)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical geometry for identical inputs")
	}
}

func TestDiamondClipsToBounds(t *testing.T) {
	g := NewGenerator(64, 32)
	anchors := [][4]image.Point{
		{{63, 31}, {0, 0}, {-5, 40}, {70, -2}},
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{63, 16}, {58, 0}, {53, 16}, {58, 31}},
		{{10, 10}, {20, 10}, {-1 << 40, 0}, {10, 20}},
		{{1 << 40, 1 << 40}, {-1 << 40, -1 << 40}, {0, 1 << 40}, {1 << 40, 0}},
	}
	for _, size := range []int{1, 2, 5, 9} {
		for _, a := range anchors {
			d := g.Diamond(a[0], a[1], a[2], a[3], size)
			for _, sq := range d.Squares {
				for _, p := range sq.Pixels {
					if !p.In(g.Bounds) {
						t.Fatalf("square pixel %v outside bounds (size %d, anchors %v)", p, size, a)
					}
				}
			}
			for _, p := range d.LinePixels() {
				if !p.In(g.Bounds) {
					t.Fatalf("line pixel %v outside bounds (size %d, anchors %v)", p, size, a)
				}
			}
		}
	}
}

func TestLineClipsFarEndpoints(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 32)
	pts := Line(image.Pt(10, 20), image.Pt(-1<<40, 0), bounds)
	if len(pts) == 0 || pts[0] != image.Pt(10, 20) {
		t.Fatalf("expected the line to start at the in-bounds endpoint, got %v", pts)
	}
	if len(pts) > bounds.Dx()+bounds.Dy() {
		t.Fatalf("expected at most %d pixels, got %d", bounds.Dx()+bounds.Dy(), len(pts))
	}
	for _, p := range pts {
		if !p.In(bounds) {
			t.Fatalf("pixel %v outside bounds", p)
		}
	}

	if pts := Line(image.Pt(-1<<40, -5), image.Pt(1<<40, -5), bounds); len(pts) != 0 {
		t.Fatalf("expected a segment above the matrix to draw nothing, got %d pixels", len(pts))
	}
	across := Line(image.Pt(-1<<40, 7), image.Pt(1<<40, 7), bounds)
	if len(across) != 64 || across[0] != image.Pt(0, 7) || across[63] != image.Pt(63, 7) {
		t.Fatalf("expected a full row at y=7, got %d pixels", len(across))
	}
}

const basesDoc = `
bases:
  color: "#404040"
  first: {x: 60, y: 8, color_on: "#ffd700", color_off: "#303030"}
  second: {x: 55, y: 3, color_on: "#ffd700", color_off: "#303030"}
  third: {x: 50, y: 8, color_on: "#ffd700", color_off: "#303030"}
  home: {x: 55, y: 13, color: "#ffffff"}
`

func TestBaseColor(t *testing.T) {
	schema, err := layout.Parse([]byte(basesDoc), 64, 32)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	on, err := BaseColor(schema, FIRST, true)
	if err != nil || on.Hex() != "#ffd700" {
		t.Fatalf("expected color_on #ffd700, got %v %v", on, err)
	}
	off, err := BaseColor(schema, SECOND, false)
	if err != nil || off.Hex() != "#303030" {
		t.Fatalf("expected color_off #303030, got %v %v", off, err)
	}
	home, err := BaseColor(schema, HOME, true)
	if err != nil || home.Hex() != "#ffffff" {
		t.Fatalf("expected home color #ffffff, got %v %v", home, err)
	}
	line, err := LineColor(schema)
	if err != nil || line.Hex() != "#404040" {
		t.Fatalf("expected line color #404040, got %v %v", line, err)
	}
}

func TestBaseColorMissing(t *testing.T) {
	schema, err := layout.Parse([]byte("score: {x: 1, y: 1, color: \"#fff\"}\n"), 64, 32)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	_, err = BaseColor(schema, THIRD, true)
	if !errors.Is(err, ErrMissingColorSpec) {
		t.Fatalf("expected ErrMissingColorSpec, got %v", err)
	}
	var missing *MissingColorSpecError
	if !errors.As(err, &missing) || missing.Base != "third" || missing.Key != layout.KeyColorOn {
		t.Fatalf("expected third/color_on, got %+v", missing)
	}
}
