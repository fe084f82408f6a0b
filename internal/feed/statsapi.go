package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/state"
)

const (
	StatsAPIName           = "statsapi"
	DefaultStatsAPIBaseURL = "https://statsapi.mlb.com/api/v1"

	scheduleEndpoint = "/schedule"
	dateLayout       = "2006-01-02"
	// nextGameWindow is how far ahead the next scheduled game is looked up.
	nextGameWindow = 10 * 24 * time.Hour
)

// StatsAPI reads the public MLB schedule endpoint hydrated with linescores.
type StatsAPI struct {
	BaseURL  string
	Client   *http.Client
	Location *time.Location

	now func() time.Time
}

func NewStatsAPI(baseURL string, client *http.Client, loc *time.Location) *StatsAPI {
	if baseURL == "" {
		baseURL = DefaultStatsAPIBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StatsAPI{BaseURL: strings.TrimRight(baseURL, "/"), Client: client, Location: loc, now: time.Now}
}

func (p *StatsAPI) Name() string { return StatsAPIName }

// Fetch returns today's game for team, or an OFF_DAY state carrying the
// record and next scheduled game.
func (p *StatsAPI) Fetch(ctx context.Context, team string) (state.GameState, error) {
	club, ok := assets.LookupTeam(team)
	if !ok {
		return state.GameState{}, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	today := p.now().In(p.Location)

	todays, err := p.schedule(ctx, club.ID, today, today)
	if err != nil {
		return state.GameState{}, err
	}

	g := state.GameState{Team: club.Abbr, Status: state.OFF_DAY}
	if game, ok := pickGame(todays); ok {
		g = mapGame(club, game, p.Location)
	}

	upcoming, err := p.schedule(ctx, club.ID, today.AddDate(0, 0, 1), today.Add(nextGameWindow))
	if err != nil {
		return state.GameState{}, err
	}
	if len(upcoming) > 0 {
		next := upcoming[0]
		g.NextGame = nextGameFor(club, next, p.Location)
		if g.Record == (state.Record{}) {
			g.Record = recordFor(club, next)
		}
	}
	return g, nil
}

func (p *StatsAPI) schedule(ctx context.Context, teamID int, start, end time.Time) ([]scheduleGame, error) {
	q := url.Values{}
	q.Set("sportId", "1")
	q.Set("teamId", strconv.Itoa(teamID))
	q.Set("hydrate", "team,linescore")
	if start.Format(dateLayout) == end.Format(dateLayout) {
		q.Set("date", start.Format(dateLayout))
	} else {
		q.Set("startDate", start.Format(dateLayout))
		q.Set("endDate", end.Format(dateLayout))
	}
	endpoint := p.BaseURL + scheduleEndpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Provider: StatsAPIName, StatusCode: resp.StatusCode, URL: endpoint}
	}

	var body scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode schedule: %w", StatsAPIName, err)
	}
	var games []scheduleGame
	for _, d := range body.Dates {
		games = append(games, d.Games...)
	}
	return games, nil
}

type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePk   int       `json:"gamePk"`
	GameDate time.Time `json:"gameDate"`
	Status   struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home scheduleTeam `json:"home"`
		Away scheduleTeam `json:"away"`
	} `json:"teams"`
	Linescore *linescore `json:"linescore"`
}

type scheduleTeam struct {
	Score        int `json:"score"`
	LeagueRecord struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"leagueRecord"`
	Team struct {
		ID           int    `json:"id"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

type linescore struct {
	CurrentInning int    `json:"currentInning"`
	InningState   string `json:"inningState"`
	IsTopInning   bool   `json:"isTopInning"`
	Balls         int    `json:"balls"`
	Strikes       int    `json:"strikes"`
	Outs          int    `json:"outs"`
	Offense       struct {
		First  *json.RawMessage `json:"first"`
		Second *json.RawMessage `json:"second"`
		Third  *json.RawMessage `json:"third"`
	} `json:"offense"`
}

// pickGame prefers a game in progress, then the first one of the day.
func pickGame(games []scheduleGame) (scheduleGame, bool) {
	if len(games) == 0 {
		return scheduleGame{}, false
	}
	for _, g := range games {
		if g.Status.AbstractGameState == "Live" {
			return g, true
		}
	}
	for _, g := range games {
		if g.Status.AbstractGameState == "Preview" {
			return g, true
		}
	}
	return games[len(games)-1], true
}

func mapStatus(abstract, detailed string) state.Status {
	switch {
	case strings.EqualFold(detailed, "Postponed"), strings.EqualFold(detailed, "Cancelled"):
		return state.OFF_DAY
	case abstract == "Live":
		return state.LIVE
	case abstract == "Final":
		return state.FINAL
	case abstract == "Preview":
		return state.SCHEDULED
	default:
		return state.OFF_DAY
	}
}

func abbr(t scheduleTeam) string {
	if t.Team.Abbreviation != "" {
		return t.Team.Abbreviation
	}
	if club, ok := assets.TeamByID(t.Team.ID); ok {
		return club.Abbr
	}
	return ""
}

func mapGame(club assets.Team, g scheduleGame, loc *time.Location) state.GameState {
	out := state.GameState{
		Team:      club.Abbr,
		HomeAbbr:  abbr(g.Teams.Home),
		AwayAbbr:  abbr(g.Teams.Away),
		HomeScore: g.Teams.Home.Score,
		AwayScore: g.Teams.Away.Score,
		Status:    mapStatus(g.Status.AbstractGameState, g.Status.DetailedState),
		StartTime: g.GameDate.In(loc),
		Record:    recordFor(club, g),
	}
	if ls := g.Linescore; ls != nil {
		out.Inning = ls.CurrentInning
		out.InningHalf = state.BOTTOM
		if ls.IsTopInning {
			out.InningHalf = state.TOP
		}
		out.Balls = ls.Balls
		out.Strikes = ls.Strikes
		out.Outs = ls.Outs
		out.Bases = state.Bases{
			First:  ls.Offense.First != nil,
			Second: ls.Offense.Second != nil,
			Third:  ls.Offense.Third != nil,
		}
	}
	return out
}

func recordFor(club assets.Team, g scheduleGame) state.Record {
	side := g.Teams.Away
	if g.Teams.Home.Team.ID == club.ID {
		side = g.Teams.Home
	}
	return state.Record{Wins: side.LeagueRecord.Wins, Losses: side.LeagueRecord.Losses}
}

func nextGameFor(club assets.Team, g scheduleGame, loc *time.Location) *state.NextGame {
	home := g.Teams.Home.Team.ID == club.ID
	opponent := g.Teams.Home
	if home {
		opponent = g.Teams.Away
	}
	return &state.NextGame{Opponent: abbr(opponent), Home: home, Start: g.GameDate.In(loc)}
}
