package state

import "fmt"

const (
	MaxBalls   = 3
	MaxStrikes = 2
	MaxOuts    = 3
)

// RangeWarning records a numeric field that arrived outside its valid domain
// and the value it was clamped to.
type RangeWarning struct {
	Field   string
	Value   int
	Clamped int
}

func (w RangeWarning) Error() string {
	return fmt.Sprintf("%s=%d out of range, clamped to %d", w.Field, w.Value, w.Clamped)
}

// Normalize clamps the count, outs, inning and scores into their valid domains.
// The input is not modified.
func Normalize(g GameState) (GameState, []RangeWarning) {
	var warnings []RangeWarning
	clamp := func(field string, v *int, lo, hi int) {
		c := *v
		if c < lo {
			c = lo
		}
		if hi >= lo && c > hi {
			c = hi
		}
		if c != *v {
			warnings = append(warnings, RangeWarning{Field: field, Value: *v, Clamped: c})
			*v = c
		}
	}
	clamp("balls", &g.Balls, 0, MaxBalls)
	clamp("strikes", &g.Strikes, 0, MaxStrikes)
	clamp("outs", &g.Outs, 0, MaxOuts)
	clamp("inning", &g.Inning, 0, -1)
	clamp("home_score", &g.HomeScore, 0, -1)
	clamp("away_score", &g.AwayScore, 0, -1)
	return g, warnings
}
