package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/controller"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/scene"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/store"
)

var t0 = time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

type captureSink struct {
	name   string
	scenes []scene.Scene
	err    error
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Draw(sc scene.Scene) error {
	s.scenes = append(s.scenes, sc)
	return s.err
}

func (s *captureSink) Close() error { return s.err }

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func live() state.GameState {
	return state.GameState{
		Team:      "ATL", HomeAbbr: "ATL", AwayAbbr: "NYM",
		Inning:    4, InningHalf: state.TOP, Balls: 1, Strikes: 2, Outs: 1,
		HomeScore: 5, AwayScore: 3, Status: state.LIVE,
		FetchedAt: t0,
	}
}

func newTestApp(t *testing.T, loader LayoutLoader) (*App, *captureSink, *testClock) {
	t.Helper()
	if loader.Width == 0 {
		loader.Width, loader.Height = 64, 32
	}
	schema, _, err := loader.Load()
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	ctrl := controller.New(schema, controller.Options{
		FavoriteTeam:     "ATL",
		SplashDuration:   5 * time.Second,
		RefreshLive:      30 * time.Second,
		RefreshOffDay:    10 * time.Minute,
		OffDayAfterTicks: 3,
		StaleAfter:       10 * time.Minute,
	}, nil, nil)
	a := New("ATL", state.NewStore(), ctrl, loader, nil)
	clock := &testClock{now: t0}
	a.now = clock.Now
	ids := 0
	a.newID = func() string {
		ids++
		return fmt.Sprintf("frame-%d", ids)
	}
	sink := &captureSink{name: "capture"}
	a.Sinks = []render.Sink{sink}
	return a, sink, clock
}

func TestStepPublishesOnlyWhenTheControllerBuilds(t *testing.T) {
	a, sink, clock := newTestApp(t, LayoutLoader{})
	a.Store.Update(live())

	a.Step()
	frame, ok := a.Frame()
	if !ok || frame.ID != "frame-1" || frame.Scene.Kind != scene.SPLASH {
		t.Fatalf("expected splash frame-1, got %+v %v", frame, ok)
	}

	clock.now = t0.Add(time.Second)
	a.Step()
	if len(sink.scenes) != 1 {
		t.Fatalf("expected no redraw during splash, got %d scenes", len(sink.scenes))
	}

	clock.now = t0.Add(5 * time.Second)
	a.Step()
	frame, _ = a.Frame()
	if frame.ID != "frame-2" || frame.Scene.Kind != scene.GAME_DAY || frame.Reason != controller.ReasonTransition {
		t.Fatalf("expected game day transition frame, got %s %s %s", frame.ID, frame.Scene.Kind, frame.Reason)
	}
	if score, _ := frame.Scene.Text(layout.Score); score.Text != "NYM 3-5 ATL" {
		t.Fatalf("expected score text, got %q", score.Text)
	}
	if len(sink.scenes) != 2 {
		t.Fatalf("expected 2 scenes drawn, got %d", len(sink.scenes))
	}
}

func TestSinkErrorsDoNotStopPublishing(t *testing.T) {
	a, _, _ := newTestApp(t, LayoutLoader{})
	rec := metrics.NewRecorder()
	a.Metrics = rec
	broken := &captureSink{name: "broken", err: errors.New("bus error")}
	healthy := &captureSink{name: "healthy"}
	a.Sinks = []render.Sink{broken, healthy}

	a.Step()
	if len(healthy.scenes) != 1 {
		t.Fatalf("expected healthy sink to draw, got %d", len(healthy.scenes))
	}
	if _, ok := a.Frame(); !ok {
		t.Fatalf("expected frame published despite sink error")
	}
}

// counterValue reads the counter sample of family whose result label is result.
func counterValue(t *testing.T, rec *metrics.Recorder, family, result string) float64 {
	t.Helper()
	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == metrics.LabelResult && lp.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func writeLayout(t *testing.T, dir, doc string) string {
	t.Helper()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return path
}

func TestReloadLayoutKeepsCurrentOnError(t *testing.T) {
	dir := t.TempDir()
	good, err := assets.Layout(64, 32)
	if err != nil {
		t.Fatalf("embedded layout: %v", err)
	}
	path := writeLayout(t, dir, string(good))
	cache, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()
	rec := metrics.NewRecorder()

	a, _, clock := newTestApp(t, LayoutLoader{Path: path, Cache: cache, Metrics: rec})
	a.Metrics = rec
	a.Store.Update(live())
	a.Step()
	clock.now = t0.Add(5 * time.Second)
	a.Step()
	before := a.Layout()

	writeLayout(t, dir, "score: {x: 99, y: 0, color: \"#ffffff\"}\n")
	err = a.ReloadLayout(context.Background())
	if _, ok := layout.AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if a.Layout() != before {
		t.Fatalf("expected current layout to stay active")
	}
	if got := counterValue(t, rec, "scoreboard_layout_reloads_total", "error"); got != 1 {
		t.Fatalf("expected one failed reload, got %v", got)
	}

	writeLayout(t, dir, string(good)+"\nbanner: {x: 0, y: 0}\n")
	if err := a.ReloadLayout(context.Background()); err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}
	if a.Layout() == before || !a.Layout().Has("banner") {
		t.Fatalf("expected new layout after reload")
	}
	clock.now = t0.Add(6 * time.Second)
	a.Step()
	frame, _ := a.Frame()
	if frame.Reason != controller.ReasonLayout {
		t.Fatalf("expected layout refresh, got %s", frame.Reason)
	}
	cached, err := cache.LastGoodLayout(64, 32)
	if err != nil || string(cached) != string(good)+"\nbanner: {x: 0, y: 0}\n" {
		t.Fatalf("expected reloaded document cached, err=%v", err)
	}
}

func TestLoadFallsBackToCachedLayout(t *testing.T) {
	dir := t.TempDir()
	cache, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()
	good := "score: {x: 1, y: 16, color: \"#ffffff\"}\n"
	if err := cache.SaveLayout(64, 32, []byte(good)); err != nil {
		t.Fatalf("save: %v", err)
	}
	path := writeLayout(t, dir, "score: {x: 1, y: 40, color: \"#ffffff\"}\n")

	schema, source, err := LayoutLoader{Path: path, Width: 64, Height: 32, Cache: cache}.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != FromCache || schema.Len() != 1 {
		t.Fatalf("expected cached layout, got %s with %d elements", source, schema.Len())
	}
}

func TestLoadFallsBackToEmbeddedLayout(t *testing.T) {
	path := writeLayout(t, t.TempDir(), "- not a mapping\n")
	schema, source, err := LayoutLoader{Path: path, Width: 64, Height: 32}.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != FromEmbedded || !schema.Has(layout.Bases) {
		t.Fatalf("expected embedded layout, got %s", source)
	}
}

func TestLoadFailsWithoutAnyLayout(t *testing.T) {
	_, _, err := LayoutLoader{Width: 17, Height: 9}.Load()
	if !errors.Is(err, assets.ErrNoLayout) {
		t.Fatalf("expected ErrNoLayout, got %v", err)
	}
}

func TestSeedStateFromCache(t *testing.T) {
	cache, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()
	old := live()
	old.FetchedAt = t0.Add(-time.Hour)
	if err := cache.SaveState("ATL", old); err != nil {
		t.Fatalf("save: %v", err)
	}

	a, _, _ := newTestApp(t, LayoutLoader{})
	a.Cache = cache
	a.seedState()
	snap := a.State()
	if snap.HomeScore != 5 || snap.Age != time.Hour {
		t.Fatalf("expected cached state aged 1h, got score %d age %s", snap.HomeScore, snap.Age)
	}
}

func TestStartStopsOnExit(t *testing.T) {
	a, sink, _ := newTestApp(t, LayoutLoader{})
	a.FrameInterval = time.Millisecond
	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	boom := errors.New("operator stop")
	a.Exit(boom)
	a.Exit(errors.New("ignored"))
	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected exit error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for Start to return")
	}
	if len(sink.scenes) == 0 {
		t.Fatalf("expected the splash to be drawn before exit")
	}
}

func TestStopAggregatesErrors(t *testing.T) {
	a, _, _ := newTestApp(t, LayoutLoader{})
	a.Sinks = []render.Sink{
		&captureSink{name: "a", err: errors.New("a failed")},
		&captureSink{name: "b", err: errors.New("b failed")},
		&captureSink{name: "c"},
	}
	err := a.Stop()
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", got, err)
	}
}
