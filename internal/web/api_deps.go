package web

import (
	"context"
	"time"

	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/scene"
	"github.com/rook-computer/scoreboard/internal/state"
)

// Frame is one scene handed to the sinks, tagged for clients.
type Frame struct {
	ID     string      `json:"frame_id"`
	At     time.Time   `json:"at"`
	Reason string      `json:"reason,omitempty"`
	Scene  scene.Scene `json:"scene"`
}

// Source is the running display as seen by the API. app.App implements it.
type Source interface {
	// Frame returns the most recently published frame; false before the first one.
	Frame() (Frame, bool)
	State() state.GameState
	Layout() *layout.Schema
	// ReloadLayout re-reads and validates the layout document. On error the
	// current layout stays active.
	ReloadLayout(ctx context.Context) error
	FeedStatus() feed.Status
}

// ScenarioSetter switches fixture scenarios; only the simulator provides one.
type ScenarioSetter interface {
	SetScenario(name string) error
	Scenario() string
}
