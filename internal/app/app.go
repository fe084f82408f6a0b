package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/rook-computer/scoreboard/internal/controller"
	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/store"
	"github.com/rook-computer/scoreboard/internal/web"
)

const defaultFrameInterval = 100 * time.Millisecond

// Console is the optional VT graphics-mode switch held while sinks own the screen.
type Console interface {
	EnterGraphics() error
	Restore() error
}

// App owns the control loop: the poller fills Store, each frame tick hands
// the latest snapshot to the Controller, and any scene it returns goes to
// every sink and to web clients.
type App struct {
	Team          string
	FrameInterval time.Duration

	Store      *state.Store
	Controller *controller.Controller
	Poller     *feed.Poller
	Loader     LayoutLoader
	Sinks      []render.Sink
	Web        web.Server
	Events     *web.Events
	Cache      *store.Cache
	Console    Console
	Metrics    *metrics.Recorder
	Logger     logging.Logger

	now   func() time.Time
	newID func() string

	frameMu  sync.RWMutex
	frame    web.Frame
	hasFrame bool
	schema   *layout.Schema

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(team string, st *state.Store, ctrl *controller.Controller, loader LayoutLoader, logger logging.Logger) *App {
	return &App{
		Team:       team,
		Store:      st,
		Controller: ctrl,
		Loader:     loader,
		Logger:     logging.OrNoop(logger),
		schema:     ctrl.Layout(),
		now:        time.Now,
		newID:      uuid.NewString,
		exitCh:     make(chan error, 1),
	}
}

// Exit requests the control loop to stop with err.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs until ctx is done or Exit is called. Sink and feed failures are
// logged and never end the loop.
func (app *App) Start(ctx context.Context) error {
	logger := logging.OrNoop(app.Logger)
	if app.Console != nil {
		_ = app.Console.EnterGraphics()
	}
	app.seedState()

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			logger.Errorf("app", "web server start error: %v", err)
		}
	}
	if app.Poller != nil {
		app.Poller.Start(ctx)
	}

	interval := app.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	app.Step()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case <-ticker.C:
			app.Step()
		}
	}
}

// seedState shows the last cached snapshot until the first fetch lands. Its
// FetchedAt is kept so the scene reports it as stale when it is old.
func (app *App) seedState() {
	if app.Store.HasData() {
		return
	}
	g, err := app.Cache.LastState(app.Team)
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			app.Logger.Warnf("app", "read cached state: %v", err)
		}
		return
	}
	app.Store.Update(g)
	app.Logger.Infof("app", "restored cached %s state from %s", g.Status, g.FetchedAt.Format(time.RFC3339))
}

// Step runs one controller tick and publishes the scene if one was built.
func (app *App) Step() {
	now := app.now()
	snap := app.Store.Snapshot(now)
	if app.Store.HasData() {
		app.Metrics.RecordStateAge(snap.Age)
	}
	sc, ok := app.Controller.Tick(now, snap)
	if !ok {
		return
	}
	app.publish(web.Frame{
		ID:     app.newID(),
		At:     now,
		Reason: app.Controller.LastReason(),
		Scene:  sc,
	})
}

func (app *App) publish(frame web.Frame) {
	app.frameMu.Lock()
	app.frame, app.hasFrame = frame, true
	app.frameMu.Unlock()

	for _, sink := range app.Sinks {
		start := time.Now()
		err := sink.Draw(frame.Scene)
		app.Metrics.RecordRender(sink.Name(), time.Since(start), err)
		if err != nil {
			app.Logger.Errorf("app", "%s sink: %v", sink.Name(), err)
		}
	}
	if app.Events != nil {
		app.Events.Publish(frame)
	}
	for _, err := range frame.Scene.Skipped {
		app.Logger.Warnf("app", "skipped element: %v", err)
	}
	app.Logger.Infof("app", "frame %s: %s (%s), %d primitives", frame.ID, frame.Scene.Kind, frame.Reason, len(frame.Scene.Primitives))
}

// Frame returns the last published frame.
func (app *App) Frame() (web.Frame, bool) {
	app.frameMu.RLock()
	defer app.frameMu.RUnlock()
	return app.frame, app.hasFrame
}

func (app *App) State() state.GameState {
	return app.Store.Snapshot(app.now())
}

func (app *App) Layout() *layout.Schema {
	app.frameMu.RLock()
	defer app.frameMu.RUnlock()
	return app.schema
}

// ReloadLayout re-parses the configured layout document. A valid document
// replaces the active layout from the next tick; otherwise the current one
// stays and the violations are returned.
func (app *App) ReloadLayout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	schema, err := app.Loader.Parse()
	app.Metrics.RecordLayoutReload(err)
	if err != nil {
		app.Logger.Errorf("app", "layout reload rejected, keeping current layout: %v", err)
		return err
	}
	app.frameMu.Lock()
	app.schema = schema
	app.frameMu.Unlock()
	app.Controller.SetLayout(schema)
	app.Logger.Infof("app", "layout reloaded")
	return nil
}

func (app *App) FeedStatus() feed.Status {
	if app.Poller == nil {
		return feed.Status{}
	}
	return app.Poller.Status()
}

// Stop shuts every subsystem down and reports all failures together.
func (app *App) Stop() error {
	var err error
	if app.Poller != nil {
		err = multierr.Append(err, app.Poller.Stop())
	}
	if app.Web != nil {
		err = multierr.Append(err, app.Web.Stop())
	}
	if app.Events != nil {
		app.Events.Close()
	}
	for _, sink := range app.Sinks {
		err = multierr.Append(err, sink.Close())
	}
	if app.Console != nil {
		err = multierr.Append(err, app.Console.Restore())
	}
	err = multierr.Append(err, app.Cache.Close())
	return err
}
