package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rook-computer/scoreboard/internal/state"
)

func TestLayoutRoundTrip(t *testing.T) {
	c, err := Open(Memory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if _, err := c.LastGoodLayout(64, 32); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss before save, got %v", err)
	}
	doc := []byte("score: {x: 1, y: 1, color: \"#fff\"}\n")
	if err := c.SaveLayout(64, 32, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := c.LastGoodLayout(64, 32)
	if err != nil || string(got) != string(doc) {
		t.Fatalf("expected saved layout back, got %q %v", got, err)
	}
	if _, err := c.LastGoodLayout(128, 64); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected layouts to be keyed by resolution, got %v", err)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	fetched := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	g := state.GameState{
		Team:   "ATL", HomeAbbr: "ATL", AwayAbbr: "NYM",
		Inning: 7, InningHalf: state.BOTTOM, HomeScore: 2, AwayScore: 1,
		Bases:  state.Bases{Second: true}, Status: state.LIVE, FetchedAt: fetched,
	}
	if err := c.SaveState("ATL", g); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	c, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	got, err := c.LastState("ATL")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !state.ScoredEqual(got, g) || got.Status != state.LIVE || !got.FetchedAt.Equal(fetched) {
		t.Fatalf("expected cached state %+v, got %+v", g, got)
	}
	if _, err := c.LastState("NYM"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss for another team, got %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.SaveLayout(64, 32, []byte("x")); err != nil {
		t.Fatalf("expected nil cache save to be dropped, got %v", err)
	}
	if _, err := c.LastGoodLayout(64, 32); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if _, err := c.LastState("ATL"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil close, got %v", err)
	}
}
