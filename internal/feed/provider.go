package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rook-computer/scoreboard/internal/state"
)

// Provider fetches the favorite team's current game. Implementations return
// Status OFF_DAY with Record/NextGame filled when there is no game today.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, team string) (state.GameState, error)
}

var ErrUnknownTeam = errors.New("unknown team")

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d from %s", e.Provider, e.StatusCode, e.URL)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
