package scene

import (
	"fmt"

	"github.com/rook-computer/scoreboard/internal/state"
)

type Kind int

const (
	SPLASH Kind = iota
	GAME_DAY
	OFF_DAY
)

func (k Kind) String() string {
	switch k {
	case SPLASH:
		return "SPLASH"
	case GAME_DAY:
		return "GAME_DAY"
	case OFF_DAY:
		return "OFF_DAY"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Scene is the ordered primitive list for one screen. Later primitives paint
// over earlier ones.
type Scene struct {
	Kind       Kind        `json:"kind"`
	Primitives []Primitive `json:"primitives"`
	Stale      bool        `json:"stale"`

	// Warnings lists state fields that were clamped before formatting.
	Warnings []state.RangeWarning `json:"-"`
	// Skipped holds element-level errors; the element was left out.
	Skipped []error `json:"-"`
}

// Find returns the primitives produced by the named layout element.
func (s Scene) Find(element string) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Source() == element {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the first text run produced by element.
func (s Scene) Text(element string) (TextRun, bool) {
	for _, p := range s.Find(element) {
		if t, ok := p.(TextRun); ok {
			return t, true
		}
	}
	return TextRun{}, false
}
