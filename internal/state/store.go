package state

import (
	"sync"
	"time"
)

// Store holds the latest GameState written by the feed. The control loop reads
// snapshots from it; it never blocks on the feed.
type Store struct {
	mu    sync.RWMutex
	state GameState
	seen  bool
}

func NewStore() *Store {
	return &Store{state: GameState{Status: OFF_DAY}}
}

// Snapshot returns the latest state with Age computed against now.
func (store *Store) Snapshot(now time.Time) GameState {
	store.mu.RLock()
	snap := store.state
	store.mu.RUnlock()
	if !snap.FetchedAt.IsZero() && now.After(snap.FetchedAt) {
		snap.Age = now.Sub(snap.FetchedAt)
	} else {
		snap.Age = 0
	}
	return snap
}

// Update replaces the held state.
func (store *Store) Update(game GameState) {
	store.mu.Lock()
	store.state = game
	store.seen = true
	store.mu.Unlock()
}

// HasData reports whether Update was ever called.
func (store *Store) HasData() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.seen
}
