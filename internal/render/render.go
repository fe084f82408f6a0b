package render

import (
	"github.com/rook-computer/scoreboard/internal/scene"
)

// Sink consumes complete scenes and owns all device I/O. Draw is called from
// the single control loop goroutine.
type Sink interface {
	Name() string
	Draw(sc scene.Scene) error
	Close() error
}

// NoopSink discards every scene. It backs headless runs where only the web
// preview is wanted.
type NoopSink struct{}

func (NoopSink) Name() string              { return "none" }
func (NoopSink) Draw(sc scene.Scene) error { return nil }
func (NoopSink) Close() error              { return nil }
