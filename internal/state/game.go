package state

import (
	"fmt"
	"time"
)

type Status int

const (
	SCHEDULED Status = iota
	LIVE
	FINAL
	OFF_DAY
)

func (s Status) String() string {
	switch s {
	case SCHEDULED:
		return "SCHEDULED"
	case LIVE:
		return "LIVE"
	case FINAL:
		return "FINAL"
	case OFF_DAY:
		return "OFF_DAY"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus maps the upper-case names back to a Status. Unknown names are OFF_DAY.
func ParseStatus(name string) Status {
	switch name {
	case "SCHEDULED":
		return SCHEDULED
	case "LIVE":
		return LIVE
	case "FINAL":
		return FINAL
	default:
		return OFF_DAY
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

type InningHalf int

const (
	TOP InningHalf = iota
	BOTTOM
)

func (h InningHalf) String() string {
	if h == BOTTOM {
		return "BOTTOM"
	}
	return "TOP"
}

func (h InningHalf) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *InningHalf) UnmarshalText(text []byte) error {
	if string(text) == "BOTTOM" {
		*h = BOTTOM
	} else {
		*h = TOP
	}
	return nil
}

type Bases struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
	Third  bool `json:"third"`
}

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type NextGame struct {
	Opponent string    `json:"opponent"`
	Home     bool      `json:"home"`
	Start    time.Time `json:"start"`
}

// GameState is one snapshot of the favorite team's game as supplied by the feed.
// Consumers treat it as read-only.
type GameState struct {
	Team       string     `json:"team"`
	HomeAbbr   string     `json:"home_abbr"`
	AwayAbbr   string     `json:"away_abbr"`
	Inning     int        `json:"inning"`
	InningHalf InningHalf `json:"inning_half"`
	Balls      int        `json:"balls"`
	Strikes    int        `json:"strikes"`
	Outs       int        `json:"outs"`
	HomeScore  int        `json:"home_score"`
	AwayScore  int        `json:"away_score"`
	Bases      Bases      `json:"bases_occupied"`
	Status     Status     `json:"status"`
	StartTime  time.Time  `json:"start_time"`
	Record     Record     `json:"record"`
	NextGame   *NextGame  `json:"next_game,omitempty"`

	// FetchedAt is stamped by the feed when the snapshot was produced.
	FetchedAt time.Time `json:"fetched_at"`
	// Age is how old the snapshot was when it was handed to the controller.
	Age time.Duration `json:"age"`
}

// ScoredEqual reports whether two snapshots agree on every field shown by the
// game-day scene: score, inning, outs, balls, strikes and base occupancy.
func ScoredEqual(a, b GameState) bool {
	return a.HomeScore == b.HomeScore &&
		a.AwayScore == b.AwayScore &&
		a.Inning == b.Inning &&
		a.InningHalf == b.InningHalf &&
		a.Outs == b.Outs &&
		a.Balls == b.Balls &&
		a.Strikes == b.Strikes &&
		a.Bases == b.Bases
}

// Involves reports whether team plays in the snapshot's game.
func (g GameState) Involves(team string) bool {
	return team != "" && (g.HomeAbbr == team || g.AwayAbbr == team)
}
