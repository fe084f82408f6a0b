package layout

import (
	"image"
	"os"
)

// ElementSpec is one positioned element of a layout. Optional integer fields
// are zero when the document omits them.
type ElementSpec struct {
	Name      string
	X, Y      int
	MaxWidth  int
	MaxHeight int
	Size      int
	Font      string
	Asset     string
	Colors    map[string]RGB
	Children  map[string]ElementSpec

	keys map[string]bool
}

// Positioned reports whether the element carries an anchor.
func (e ElementSpec) Positioned() bool { return e.keys["x"] && e.keys["y"] }

func (e ElementSpec) Point() image.Point { return image.Pt(e.X, e.Y) }

// Color returns the element's "color" entry.
func (e ElementSpec) Color() (RGB, bool) { return e.ColorOf(KeyColor) }

func (e ElementSpec) ColorOf(key string) (RGB, bool) {
	c, ok := e.Colors[key]
	return c, ok
}

func (e ElementSpec) Child(name string) (ElementSpec, bool) {
	c, ok := e.Children[name]
	return c, ok
}

// Box returns the rectangle anchored at (X,Y) sized by MaxWidth/MaxHeight,
// falling back to the given defaults when those are absent.
func (e ElementSpec) Box(defaultW, defaultH int) image.Rectangle {
	w, h := e.MaxWidth, e.MaxHeight
	if w <= 0 {
		w = defaultW
	}
	if h <= 0 {
		h = defaultH
	}
	return image.Rect(e.X, e.Y, e.X+w, e.Y+h)
}

// Schema is a validated, immutable layout for one matrix resolution.
type Schema struct {
	width    int
	height   int
	elements map[string]ElementSpec
	order    []string
}

// Get looks an element up by exact, case-sensitive name.
func (s *Schema) Get(name string) (ElementSpec, error) {
	if s != nil {
		if spec, ok := s.elements[name]; ok {
			return spec, nil
		}
	}
	return ElementSpec{}, &NotFoundError{Name: name}
}

func (s *Schema) Has(name string) bool {
	_, err := s.Get(name)
	return err == nil
}

// Names returns element names in document order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *Schema) Size() (width, height int) { return s.width, s.height }

func (s *Schema) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Load reads and parses a layout document from disk.
func Load(path string, width, height int) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, width, height)
}
