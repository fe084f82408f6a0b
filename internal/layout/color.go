package layout

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color parsed once when the layout is loaded.
type RGB struct {
	R, G, B uint8
}

// RGBFromUint converts a 0xRRGGBB integer literal.
func RGBFromUint(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c RGB) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// RGBA returns the opaque image/color equivalent.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Scale dims the color by factor in [0,1].
func (c RGB) Scale(factor float64) RGB {
	if factor >= 1 {
		return c
	}
	if factor <= 0 {
		return RGB{}
	}
	return RGB{
		R: uint8(float64(c.R)*factor + 0.5),
		G: uint8(float64(c.G)*factor + 0.5),
		B: uint8(float64(c.B)*factor + 0.5),
	}
}

func (c RGB) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "#rrggbb", "#rgb", "0xrrggbb" and bare "rrggbb".
func ParseColor(literal string) (RGB, error) {
	raw := strings.TrimSpace(literal)
	switch {
	case strings.HasPrefix(raw, "0x"), strings.HasPrefix(raw, "0X"):
		raw = "#" + raw[2:]
	case !strings.HasPrefix(raw, "#"):
		raw = "#" + raw
	}
	digits := raw[1:]
	if len(digits) != 6 && len(digits) != 3 {
		return RGB{}, fmt.Errorf("color %q: expected 3 or 6 hex digits", literal)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return RGB{}, fmt.Errorf("color %q: invalid hex digit %q", literal, r)
		}
	}
	c, err := colorful.Hex(strings.ToLower(raw))
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", literal, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
