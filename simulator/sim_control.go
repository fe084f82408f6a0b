package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/state"
)

// SimFaults are feed failures the simulator can inject to exercise stale
// indicators and poller backoff without a real outage.
type SimFaults struct {
	FetchFail    bool  `json:"fetchFail"`
	FetchDelayMs int64 `json:"fetchDelayMs"`
}

var errSimulatedOutage = errors.New("simulated feed outage")

// SimControl is the simulator's feed: the fixture provider plus fault
// injection. Scenario changes trigger an immediate fetch so the display
// follows without waiting for the poll interval.
type SimControl struct {
	processCtx      context.Context
	fixture         *feed.Fixture
	startupScenario string
	poller          *feed.Poller

	faults struct {
		mu sync.RWMutex
		v  SimFaults
	}
}

func NewSimControl(processCtx context.Context, startupScenario string) (*SimControl, error) {
	if processCtx == nil {
		processCtx = context.Background()
	}
	if startupScenario == "" {
		startupScenario = feed.ScenarioLive
	}
	c := &SimControl{processCtx: processCtx, fixture: feed.NewFixture(""), startupScenario: startupScenario}
	if err := c.fixture.SetScenario(startupScenario); err != nil {
		return nil, err
	}
	return c, nil
}

// Attach connects the poller refreshed on scenario changes.
func (c *SimControl) Attach(poller *feed.Poller) { c.poller = poller }

func (c *SimControl) Name() string { return "simulator" }

func (c *SimControl) Fetch(ctx context.Context, team string) (state.GameState, error) {
	faults := c.Faults()
	if faults.FetchDelayMs > 0 {
		timer := time.NewTimer(time.Duration(faults.FetchDelayMs) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return state.GameState{}, ctx.Err()
		case <-timer.C:
		}
	}
	if faults.FetchFail {
		return state.GameState{}, errSimulatedOutage
	}
	return c.fixture.Fetch(ctx, team)
}

func (c *SimControl) SetScenario(name string) error {
	if err := c.fixture.SetScenario(name); err != nil {
		return err
	}
	c.refresh()
	return nil
}

func (c *SimControl) Scenario() string { return c.fixture.Scenario() }

// Cycle moves to the next scenario in sorted order.
func (c *SimControl) Cycle() string {
	names := feed.Scenarios()
	current := c.Scenario()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	_ = c.SetScenario(next)
	return next
}

func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	return c.SetScenario(c.startupScenario)
}

func (c *SimControl) Faults() SimFaults {
	c.faults.mu.RLock()
	defer c.faults.mu.RUnlock()
	return c.faults.v
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.faults.mu.Lock()
	c.faults.v = v
	c.faults.mu.Unlock()
}

func (c *SimControl) refresh() {
	if c.poller == nil {
		return
	}
	go c.poller.FetchNow(c.processCtx)
}

// registerSimEndpoints mounts the fault and reset endpoints next to handler.
// Scenario switching is served by the web handler itself.
func registerSimEndpoints(handler http.Handler, control *SimControl) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", handler)

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
		case http.MethodPost:
			var patch struct {
				FetchFail    *bool  `json:"fetchFail"`
				FetchDelayMs *int64 `json:"fetchDelayMs"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.FetchFail != nil {
				current.FetchFail = *patch.FetchFail
			}
			if patch.FetchDelayMs != nil {
				current.FetchDelayMs = *patch.FetchDelayMs
			}
			control.SetFaults(current)
			control.refresh()
			writeSimJSON(w, http.StatusOK, current)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
	return mux
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
