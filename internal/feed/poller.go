package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/state"
)

const (
	defaultInterval = 30 * time.Second
	component       = "feed"
)

// Updater receives each fresh snapshot.
type Updater interface {
	Update(state.GameState)
}

// StateSaver persists the latest snapshot; optional.
type StateSaver interface {
	SaveState(team string, g state.GameState) error
}

// Poller fetches the favorite team's game on an interval. A failed fetch
// leaves the last good state in place, so the display ages it instead of
// losing it.
type Poller struct {
	provider Provider
	updater  Updater
	saver    StateSaver
	logger   logging.Logger
	metrics  *metrics.Recorder
	team     string
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastSuccess         time.Time `json:"last_success"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

func NewPoller(provider Provider, updater Updater, saver StateSaver, logger logging.Logger, recorder *metrics.Recorder, team string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		updater:  updater,
		saver:    saver,
		logger:   logging.OrNoop(logger),
		metrics:  recorder,
		team:     team,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.logger.Infof(component, "poller started, provider=%s team=%s interval=%s", p.provider.Name(), p.team, p.interval)
		p.FetchNow(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logger.Infof(component, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logger.Infof(component, "poller stopped")
				return
			case <-p.ticker.C:
				p.FetchNow(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for an in-flight fetch.
func (p *Poller) Stop() error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	p.wg.Wait()
	return nil
}

// FetchNow runs one fetch synchronously.
func (p *Poller) FetchNow(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	g, err := p.provider.Fetch(ctx, p.team)
	elapsed := p.now().Sub(start)
	p.metrics.RecordFetch(p.provider.Name(), elapsed, err)
	if err != nil {
		p.logger.Errorf(component, "%s fetch failed after %s: %v", p.provider.Name(), elapsed, err)
		p.recordFailure(err, start)
		return
	}

	g.FetchedAt = p.now()
	p.updater.Update(g)
	if p.saver != nil {
		if err := p.saver.SaveState(p.team, g); err != nil {
			p.logger.Warnf(component, "state cache write failed: %v", err)
		}
	}
	p.recordSuccess(start)
	p.logger.Infof(component, "%s refreshed: %s %s@%s %d-%d", p.provider.Name(), g.Status, g.AwayAbbr, g.HomeAbbr, g.AwayScore, g.HomeScore)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
