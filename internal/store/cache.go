package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/rook-computer/scoreboard/internal/state"
)

// Memory opens a cache that lives only as long as the process.
const Memory = ":memory:"

// StateTTL bounds how long a cached game state survives a restart.
const StateTTL = 24 * time.Hour

var ErrMiss = errors.New("cache miss")

// Cache persists the last known good layout document per resolution and the
// last game state per team. A nil *Cache is valid: reads miss, writes are dropped.
type Cache struct {
	db *buntdb.DB
}

func Open(path string) (*Cache, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := db.SetConfig(buntdb.Config{
		SyncPolicy:           buntdb.EverySecond,
		AutoShrinkPercentage: 100,
		AutoShrinkMinSize:    32 * 1024,
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

func layoutKey(width, height int) string { return fmt.Sprintf("layout:%dx%d:good", width, height) }

func stateKey(team string) string { return "state:" + team }

// SaveLayout stores a document that has already passed validation.
func (c *Cache) SaveLayout(width, height int, document []byte) error {
	if c == nil {
		return nil
	}
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(layoutKey(width, height), string(document), nil)
		return err
	})
}

func (c *Cache) LastGoodLayout(width, height int) ([]byte, error) {
	if c == nil {
		return nil, ErrMiss
	}
	var doc string
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		doc, err = tx.Get(layoutKey(width, height))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (c *Cache) SaveState(team string, g state.GameState) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(stateKey(team), string(data), &buntdb.SetOptions{Expires: true, TTL: StateTTL})
		return err
	})
}

// LastState returns the cached snapshot; Age is left for the caller to derive.
func (c *Cache) LastState(team string) (state.GameState, error) {
	if c == nil {
		return state.GameState{}, ErrMiss
	}
	var raw string
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get(stateKey(team))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return state.GameState{}, ErrMiss
	}
	if err != nil {
		return state.GameState{}, err
	}
	var g state.GameState
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return state.GameState{}, fmt.Errorf("decode cached state: %w", err)
	}
	return g, nil
}
