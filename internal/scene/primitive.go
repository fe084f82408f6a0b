package scene

import (
	"encoding/json"
	"image"

	"github.com/rook-computer/scoreboard/internal/layout"
)

// Primitive is one draw operation. The concrete types are TextRun, FilledRect,
// PixelSet and BitmapRef; sinks switch on them.
type Primitive interface {
	// Type is the wire tag used when a scene is serialized.
	Type() string
	// Source names the layout element that produced the primitive.
	Source() string
}

// TextRun draws Text with its top-left corner at (X,Y).
type TextRun struct {
	Element string     `json:"element"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	Text    string     `json:"text"`
	Color   layout.RGB `json:"color"`
	Font    string     `json:"font,omitempty"`
}

type FilledRect struct {
	Element string     `json:"element"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	W       int        `json:"w"`
	H       int        `json:"h"`
	Color   layout.RGB `json:"color"`
}

func (r FilledRect) Rect() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

type ColoredPoint struct {
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Color layout.RGB `json:"color"`
}

// PixelSet paints individual pixels in order.
type PixelSet struct {
	Element string         `json:"element"`
	Points  []ColoredPoint `json:"points"`
}

// BitmapRef places a named asset scaled into the W x H box at (X,Y).
type BitmapRef struct {
	Element string `json:"element"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	AssetID string `json:"asset_id"`
}

func (r BitmapRef) Rect() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

func (TextRun) Type() string    { return "text" }
func (FilledRect) Type() string { return "rect" }
func (PixelSet) Type() string   { return "pixels" }
func (BitmapRef) Type() string  { return "bitmap" }

func (t TextRun) Source() string    { return t.Element }
func (r FilledRect) Source() string { return r.Element }
func (p PixelSet) Source() string   { return p.Element }
func (b BitmapRef) Source() string  { return b.Element }

func (t TextRun) MarshalJSON() ([]byte, error) {
	type plain TextRun
	return tagged(t.Type(), plain(t))
}

func (r FilledRect) MarshalJSON() ([]byte, error) {
	type plain FilledRect
	return tagged(r.Type(), plain(r))
}

func (p PixelSet) MarshalJSON() ([]byte, error) {
	type plain PixelSet
	return tagged(p.Type(), plain(p))
}

func (b BitmapRef) MarshalJSON() ([]byte, error) {
	type plain BitmapRef
	return tagged(b.Type(), plain(b))
}

// tagged flattens v into an object carrying a "type" discriminator.
func tagged(kind string, v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(kind)
	return json.Marshal(fields)
}
