package web

import (
	"encoding/json"
	"net/http"

	"github.com/r3labs/sse/v2"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
)

// SceneStream is the SSE stream carrying one event per published frame.
const SceneStream = "scene"

type frameEvent struct {
	FrameID string `json:"frame_id"`
	Kind    string `json:"kind"`
	Stale   bool   `json:"stale"`
	Reason  string `json:"reason,omitempty"`
}

// Events fans published frames out to browsers over server-sent events.
type Events struct {
	server *sse.Server
	logger logging.Logger
}

func NewEvents(logger logging.Logger, recorder *metrics.Recorder) *Events {
	srv := sse.New()
	srv.AutoReplay = false
	srv.CreateStream(SceneStream)
	srv.OnSubscribe = func(streamID string, sub *sse.Subscriber) {
		recorder.AddSceneSubscriber(1)
	}
	srv.OnUnsubscribe = func(streamID string, sub *sse.Subscriber) {
		recorder.AddSceneSubscriber(-1)
	}
	return &Events{server: srv, logger: logging.OrNoop(logger)}
}

// Publish announces a new frame without blocking on slow subscribers.
func (e *Events) Publish(f Frame) {
	data, err := json.Marshal(frameEvent{
		FrameID: f.ID,
		Kind:    f.Scene.Kind.String(),
		Stale:   f.Scene.Stale,
		Reason:  f.Reason,
	})
	if err != nil {
		e.logger.Errorf("web", "marshal frame event: %v", err)
		return
	}
	e.server.TryPublish(SceneStream, &sse.Event{ID: []byte(f.ID), Data: data})
}

func (e *Events) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.server.ServeHTTP(w, r)
}

func (e *Events) Close() {
	e.server.Close()
}
