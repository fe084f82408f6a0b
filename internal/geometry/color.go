package geometry

import (
	"errors"
	"fmt"

	"github.com/rook-computer/scoreboard/internal/layout"
)

// ErrMissingColorSpec is matched by errors.Is for MissingColorSpecError.
var ErrMissingColorSpec = errors.New("missing base color")

// MissingColorSpecError reports a base whose color key is absent from the layout.
type MissingColorSpecError struct {
	Base string
	Key  string
}

func (e *MissingColorSpecError) Error() string {
	return fmt.Sprintf("layout bases.%s has no %s", e.Base, e.Key)
}

func (e *MissingColorSpecError) Unwrap() error { return ErrMissingColorSpec }

// BaseColor picks color_on or color_off for a base, or color for home plate.
func BaseColor(schema *layout.Schema, base Base, occupied bool) (layout.RGB, error) {
	key := layout.KeyColorOff
	switch {
	case base == HOME:
		key = layout.KeyColor
	case occupied:
		key = layout.KeyColorOn
	}
	missing := &MissingColorSpecError{Base: base.String(), Key: key}

	bases, err := schema.Get(layout.Bases)
	if err != nil {
		return layout.RGB{}, missing
	}
	spec, ok := bases.Child(base.String())
	if !ok {
		return layout.RGB{}, missing
	}
	c, ok := spec.ColorOf(key)
	if !ok {
		return layout.RGB{}, missing
	}
	return c, nil
}

// LineColor is the bases "color", falling back to the home plate color.
func LineColor(schema *layout.Schema) (layout.RGB, error) {
	bases, err := schema.Get(layout.Bases)
	if err != nil {
		return layout.RGB{}, err
	}
	if c, ok := bases.Color(); ok {
		return c, nil
	}
	return BaseColor(schema, HOME, false)
}
