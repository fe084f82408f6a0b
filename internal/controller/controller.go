package controller

import (
	"sync"
	"time"

	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/scene"
	"github.com/rook-computer/scoreboard/internal/state"
)

const component = "controller"

// Refresh reasons, also used as metric labels.
const (
	ReasonTransition  = "transition"
	ReasonInterval    = "interval"
	ReasonStateChange = "state_change"
	ReasonStale       = "stale"
	ReasonLayout      = "layout"
)

// Options are the policy values of the state machine.
type Options struct {
	// FavoriteTeam is the club whose games count as game day. Empty accepts any game.
	FavoriteTeam   string
	SplashDuration time.Duration
	RefreshLive    time.Duration
	RefreshOffDay  time.Duration
	// OffDayAfterTicks is how many consecutive ticks must observe no game
	// before GAME_DAY gives way to OFF_DAY. Values below 1 act as 1.
	OffDayAfterTicks int
	// ImminentStart makes a SCHEDULED game this close to first pitch count as
	// game day. Zero disables it.
	ImminentStart time.Duration
	// FinalHold is how long a FINAL game keeps the game-day screen, counted
	// from the first tick that saw it final. Zero holds until the feed moves on.
	FinalHold  time.Duration
	Version    string
	StaleAfter time.Duration
}

// Controller is the SPLASH -> GAME_DAY <-> OFF_DAY state machine. Tick must be
// called from a single goroutine; SetLayout may be called from any.
type Controller struct {
	opts    Options
	builder scene.Builder
	logger  logging.Logger
	metrics *metrics.Recorder

	mu      sync.Mutex
	pending *layout.Schema

	schema       *layout.Schema
	active       scene.Kind
	started      bool
	startedAt    time.Time
	lastRefresh  time.Time
	lastState    state.GameState
	lastStale    bool
	offDayStreak int
	lastReason   string
	finalSince   time.Time
}

func New(schema *layout.Schema, opts Options, logger logging.Logger, rec *metrics.Recorder) *Controller {
	if opts.OffDayAfterTicks < 1 {
		opts.OffDayAfterTicks = 1
	}
	return &Controller{
		opts:    opts,
		builder: scene.Builder{Version: opts.Version, StaleAfter: opts.StaleAfter},
		logger:  logging.OrNoop(logger),
		metrics: rec,
		schema:  schema,
		active:  scene.SPLASH,
	}
}

// Active returns the screen currently selected.
func (c *Controller) Active() scene.Kind { return c.active }

// Layout returns the schema used by the most recent tick.
func (c *Controller) Layout() *layout.Schema { return c.schema }

// LastReason is why the most recent scene was built.
func (c *Controller) LastReason() string { return c.lastReason }

// SetLayout replaces the schema from the next tick on and forces a rebuild.
func (c *Controller) SetLayout(schema *layout.Schema) {
	if schema == nil {
		return
	}
	c.mu.Lock()
	c.pending = schema
	c.mu.Unlock()
}

// Tick advances the state machine with the latest already-fetched snapshot.
// It returns a scene only when a transition or refresh condition fires;
// otherwise the caller keeps the current frame.
func (c *Controller) Tick(now time.Time, latest state.GameState) (scene.Scene, bool) {
	reason := ""
	c.mu.Lock()
	if c.pending != nil {
		c.schema, c.pending = c.pending, nil
		reason = ReasonLayout
	}
	c.mu.Unlock()
	c.trackFinal(now, latest)

	if !c.started {
		c.started = true
		c.startedAt = now
		c.active = scene.SPLASH
		c.metrics.RecordTransition("", scene.SPLASH.String())
		return c.build(now, latest, ReasonTransition), true
	}

	if next, ok := c.nextScreen(now, latest); ok {
		c.logger.Infof(component, "screen %s -> %s (status=%s)", c.active, next, latest.Status)
		c.metrics.RecordTransition(c.active.String(), next.String())
		c.active = next
		c.offDayStreak = 0
		return c.build(now, latest, ReasonTransition), true
	}

	if reason == "" {
		reason = c.refreshReason(now, latest)
	}
	if reason == "" {
		return scene.Scene{}, false
	}
	return c.build(now, latest, reason), true
}

func (c *Controller) nextScreen(now time.Time, g state.GameState) (scene.Kind, bool) {
	switch c.active {
	case scene.SPLASH:
		if now.Sub(c.startedAt) < c.opts.SplashDuration {
			return c.active, false
		}
		if c.showsGame(now, g) {
			return scene.GAME_DAY, true
		}
		return scene.OFF_DAY, true
	case scene.GAME_DAY:
		if c.showsGame(now, g) {
			c.offDayStreak = 0
			return c.active, false
		}
		c.offDayStreak++
		if c.offDayStreak >= c.opts.OffDayAfterTicks {
			return scene.OFF_DAY, true
		}
	case scene.OFF_DAY:
		if c.entersGame(now, g) {
			return scene.GAME_DAY, true
		}
	}
	return c.active, false
}

// showsGame keeps the game-day screen: the favorite team is live, finished
// within the hold, or about to start.
func (c *Controller) showsGame(now time.Time, g state.GameState) bool {
	if !c.involved(g) {
		return false
	}
	if g.Status == state.FINAL {
		return c.opts.FinalHold <= 0 || now.Sub(c.finalSince) < c.opts.FinalHold
	}
	return g.Status == state.LIVE || c.imminent(now, g)
}

// trackFinal remembers when the current game was first seen final.
func (c *Controller) trackFinal(now time.Time, g state.GameState) {
	if g.Status != state.FINAL {
		c.finalSince = time.Time{}
		return
	}
	if c.finalSince.IsZero() {
		c.finalSince = now
	}
}

// entersGame leaves the off-day screen; a finished game does not.
func (c *Controller) entersGame(now time.Time, g state.GameState) bool {
	return c.involved(g) && (g.Status == state.LIVE || c.imminent(now, g))
}

func (c *Controller) involved(g state.GameState) bool {
	return c.opts.FavoriteTeam == "" || g.Involves(c.opts.FavoriteTeam)
}

func (c *Controller) imminent(now time.Time, g state.GameState) bool {
	if c.opts.ImminentStart <= 0 || g.Status != state.SCHEDULED || g.StartTime.IsZero() {
		return false
	}
	return g.StartTime.Sub(now) <= c.opts.ImminentStart
}

func (c *Controller) refreshReason(now time.Time, g state.GameState) string {
	if c.active == scene.SPLASH {
		return ""
	}
	if c.active == scene.GAME_DAY && c.changed(g) {
		return ReasonStateChange
	}
	if c.builder.IsStale(g) != c.lastStale {
		return ReasonStale
	}
	interval := c.opts.RefreshLive
	if c.active == scene.OFF_DAY {
		interval = c.opts.RefreshOffDay
	}
	if now.Sub(c.lastRefresh) >= interval {
		return ReasonInterval
	}
	return ""
}

// changed reports a difference in anything the game-day scene shows.
func (c *Controller) changed(g state.GameState) bool {
	prev := c.lastState
	return !state.ScoredEqual(prev, g) ||
		prev.Status != g.Status ||
		prev.HomeAbbr != g.HomeAbbr ||
		prev.AwayAbbr != g.AwayAbbr
}

func (c *Controller) build(now time.Time, g state.GameState, reason string) scene.Scene {
	sc := c.builder.Build(c.active, c.schema, g)
	for _, w := range sc.Warnings {
		c.logger.Warnf(component, "%v", w)
		c.metrics.RecordClamp(w.Field)
	}
	for _, err := range sc.Skipped {
		c.logger.Warnf(component, "element skipped: %v", err)
	}
	c.metrics.RecordSceneBuild(c.active.String(), reason)

	c.lastRefresh = now
	c.lastState = g
	c.lastStale = sc.Stale
	c.lastReason = reason
	return sc
}
