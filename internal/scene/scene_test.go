package scene

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/state"
)

func defaultSchema(t *testing.T) *layout.Schema {
	t.Helper()
	doc, err := assets.Layout(64, 32)
	if err != nil {
		t.Fatalf("embedded layout: %v", err)
	}
	schema, err := layout.Parse(doc, 64, 32)
	if err != nil {
		t.Fatalf("embedded layout invalid: %v", err)
	}
	return schema
}

func liveGame() state.GameState {
	return state.GameState{
		Team:       "ATL",
		HomeAbbr:   "ATL",
		AwayAbbr:   "NYM",
		Inning:     4,
		InningHalf: state.TOP,
		Balls:      1,
		Strikes:    2,
		Outs:       1,
		HomeScore:  5,
		AwayScore:  3,
		Bases:      state.Bases{First: true, Second: false, Third: true},
		Status:     state.LIVE,
	}
}

func TestGameDayScenario(t *testing.T) {
	schema := defaultSchema(t)
	sc := Builder{}.Build(GAME_DAY, schema, liveGame())

	var order []string
	for _, p := range sc.Primitives {
		order = append(order, p.Source())
	}
	want := []string{layout.Logo, layout.Matchup, layout.Inning, layout.Bases, layout.Score, layout.Count}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("primitive order mismatch (-want +got):\n%s", diff)
	}

	if score, _ := sc.Text(layout.Score); score.Text != "NYM 3-5 ATL" {
		t.Fatalf("expected score NYM 3-5 ATL, got %q", score.Text)
	}
	if count, _ := sc.Text(layout.Count); count.Text != "B:1 S:2 O:1" {
		t.Fatalf("expected count B:1 S:2 O:1, got %q", count.Text)
	}
	if inning, _ := sc.Text(layout.Inning); inning.Text != "TOP 4" {
		t.Fatalf("expected inning TOP 4, got %q", inning.Text)
	}
	if matchup, _ := sc.Text(layout.Matchup); matchup.Text != "NYM@ATL" {
		t.Fatalf("expected matchup NYM@ATL, got %q", matchup.Text)
	}

	logo := sc.Primitives[0].(BitmapRef)
	if logo.AssetID != "team:ATL" || logo.W != 12 || logo.H != 12 || logo.X != 0 || logo.Y != 0 {
		t.Fatalf("unexpected logo bitmap %+v", logo)
	}

	bases, _ := schema.Get(layout.Bases)
	diamond := sc.Primitives[3].(PixelSet)
	colorAt := func(base string) layout.RGB {
		child, _ := bases.Child(base)
		var got layout.RGB
		for _, p := range diamond.Points {
			if p.X == child.X && p.Y == child.Y {
				got = p.Color
			}
		}
		return got
	}
	for base, key := range map[string]string{
		layout.FirstBase:  layout.KeyColorOn,
		layout.SecondBase: layout.KeyColorOff,
		layout.ThirdBase:  layout.KeyColorOn,
		layout.HomePlate:  layout.KeyColor,
	} {
		child, _ := bases.Child(base)
		want, _ := child.ColorOf(key)
		if got := colorAt(base); got != want {
			t.Fatalf("expected %s square to use %s %s, got %s", base, key, want, got)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	schema := defaultSchema(t)
	b := Builder{Version: "1.2.0", StaleAfter: time.Minute}
	g := liveGame()
	g.Age = 2 * time.Minute
	g.NextGame = &state.NextGame{Opponent: "PHI", Start: time.Date(2026, 7, 4, 19, 10, 0, 0, time.UTC)}

	for _, kind := range []Kind{SPLASH, GAME_DAY, OFF_DAY} {
		a := b.Build(kind, schema, g)
		c := b.Build(kind, schema, g)
		if diff := cmp.Diff(a.Primitives, c.Primitives); diff != "" {
			t.Fatalf("%s: scenes differ (-first +second):\n%s", kind, diff)
		}
	}
}

func TestClampedCount(t *testing.T) {
	schema := defaultSchema(t)
	g := liveGame()
	g.Balls = 5
	sc := Builder{}.Build(GAME_DAY, schema, g)
	if count, _ := sc.Text(layout.Count); count.Text != "B:3 S:2 O:1" {
		t.Fatalf("expected clamped count B:3 S:2 O:1, got %q", count.Text)
	}
	if len(sc.Warnings) != 1 || sc.Warnings[0].Field != "balls" || sc.Warnings[0].Clamped != 3 {
		t.Fatalf("expected one balls warning, got %v", sc.Warnings)
	}
}

func TestOffDayScene(t *testing.T) {
	schema := defaultSchema(t)
	g := state.GameState{
		Team:     "ATL",
		Status:   state.OFF_DAY,
		Record:   state.Record{Wins: 82, Losses: 80},
		NextGame: &state.NextGame{Opponent: "NYM", Home: true, Start: time.Date(2026, 4, 2, 19, 10, 0, 0, time.UTC)},
	}
	sc := Builder{}.Build(OFF_DAY, schema, g)
	if len(sc.Find(layout.Bases)) != 0 {
		t.Fatalf("expected no diamond on the off-day screen")
	}
	if rec, _ := sc.Text(layout.Record); rec.Text != "ATL 82-80" {
		t.Fatalf("expected record ATL 82-80, got %q", rec.Text)
	}
	if next, _ := sc.Text(layout.NextGame); next.Text != "vs NYM 4/2" {
		t.Fatalf("expected next game vs NYM 4/2, got %q", next.Text)
	}
	logo := sc.Primitives[0].(BitmapRef)
	if logo.Element != layout.OffDayLogo || logo.W != 16 || logo.X != 24 {
		t.Fatalf("unexpected off-day logo %+v", logo)
	}
}

func TestSplashScene(t *testing.T) {
	schema := defaultSchema(t)
	sc := Builder{Version: "1.4.2", StaleAfter: time.Second}.Build(SPLASH, schema, state.GameState{Age: time.Hour})
	if len(sc.Primitives) != 3 {
		t.Fatalf("expected logo, version and qr, got %d primitives", len(sc.Primitives))
	}
	logo := sc.Primitives[0].(BitmapRef)
	if logo.AssetID != AppLogoAsset || logo.X != 6 || logo.Y != 4 {
		t.Fatalf("expected centered app logo, got %+v", logo)
	}
	if v, _ := sc.Text(layout.Version); v.Text != "v1.4.2" {
		t.Fatalf("expected version v1.4.2, got %q", v.Text)
	}
	if sc.Stale {
		t.Fatalf("splash never shows the stale indicator")
	}
}

func TestMissingElementsAreSkipped(t *testing.T) {
	schema, err := layout.Parse([]byte(`score: {x: 1, y: 1, color: "#ffffff"}`), 64, 32)
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	sc := Builder{}.Build(GAME_DAY, schema, liveGame())
	if len(sc.Primitives) != 1 {
		t.Fatalf("expected only the score run, got %d primitives", len(sc.Primitives))
	}
	if len(sc.Skipped) != 0 {
		t.Fatalf("expected absent elements to be skipped silently, got %v", sc.Skipped)
	}
}

func TestFinalAndScheduledText(t *testing.T) {
	schema := defaultSchema(t)
	g := liveGame()
	g.Status = state.FINAL
	sc := Builder{}.Build(GAME_DAY, schema, g)
	if inning, _ := sc.Text(layout.Inning); inning.Text != "FINAL" {
		t.Fatalf("expected FINAL, got %q", inning.Text)
	}
	if _, ok := sc.Text(layout.Count); ok {
		t.Fatalf("expected no count on a final")
	}

	g.Status = state.SCHEDULED
	g.StartTime = time.Date(2026, 6, 1, 19, 5, 0, 0, time.UTC)
	sc = Builder{}.Build(GAME_DAY, schema, g)
	if inning, _ := sc.Text(layout.Inning); inning.Text != "7:05" {
		t.Fatalf("expected start time 7:05, got %q", inning.Text)
	}

	g.Status = state.LIVE
	g.InningHalf = state.BOTTOM
	g.Inning = 9
	sc = Builder{}.Build(GAME_DAY, schema, g)
	if inning, _ := sc.Text(layout.Inning); inning.Text != "BOT 9" {
		t.Fatalf("expected BOT 9, got %q", inning.Text)
	}
}

func TestStaleIndicator(t *testing.T) {
	schema := defaultSchema(t)
	b := Builder{StaleAfter: 10 * time.Minute}
	g := liveGame()

	g.Age = 9 * time.Minute
	if sc := b.Build(GAME_DAY, schema, g); sc.Stale || len(sc.Find(layout.Stale)) != 0 {
		t.Fatalf("expected fresh state to have no stale indicator")
	}

	g.Age = 10 * time.Minute
	sc := b.Build(OFF_DAY, schema, g)
	if !sc.Stale {
		t.Fatalf("expected scene to be marked stale")
	}
	last := sc.Primitives[len(sc.Primitives)-1]
	rect, ok := last.(FilledRect)
	if !ok || rect.X != 62 || rect.Y != 30 || rect.W != 2 || rect.H != 2 || rect.Color.Hex() != "#ff0000" {
		t.Fatalf("expected stale rect drawn last, got %#v", last)
	}
}

func TestSceneJSON(t *testing.T) {
	schema := defaultSchema(t)
	sc := Builder{}.Build(GAME_DAY, schema, liveGame())
	raw, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"kind":"GAME_DAY"`, `"type":"bitmap"`, `"type":"text"`, `"type":"pixels"`, `"text":"NYM 3-5 ATL"`, `"color":"#ffffff"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}
