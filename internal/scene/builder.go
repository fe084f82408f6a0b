package scene

import (
	"image"
	"strings"
	"time"

	"github.com/rook-computer/scoreboard/internal/geometry"
	"github.com/rook-computer/scoreboard/internal/layout"
	"github.com/rook-computer/scoreboard/internal/state"
)

const (
	// DefaultBitmapSize is the box side used when a bitmap element has no max_width/max_height.
	DefaultBitmapSize = 16
	// DefaultStaleSize is the side of the stale indicator.
	DefaultStaleSize = 2

	TeamAssetPrefix = "team:"
	AppLogoAsset    = "logo"
)

var white = layout.RGB{R: 0xFF, G: 0xFF, B: 0xFF}

// Builder turns a layout and a game snapshot into a Scene. Build has no side
// effects; identical inputs give identical scenes.
type Builder struct {
	// Version is shown by the splash screen's version element.
	Version string
	// StaleAfter is the snapshot age from which the stale indicator is drawn.
	// Zero disables it.
	StaleAfter time.Duration
}

// IsStale reports whether g is old enough for the stale indicator.
func (b Builder) IsStale(g state.GameState) bool {
	return b.StaleAfter > 0 && g.Age >= b.StaleAfter
}

func (b Builder) Build(kind Kind, schema *layout.Schema, g state.GameState) Scene {
	g, warnings := state.Normalize(g)
	c := &composer{schema: schema, game: g}

	switch kind {
	case SPLASH:
		c.bitmap(layout.SplashLogo, AppLogoAsset)
		c.text(layout.Version, versionText(b.Version))
		c.qr()
	case GAME_DAY:
		c.bitmap(layout.Logo, TeamAssetPrefix+"{team}")
		c.text(layout.Matchup, matchupText(g))
		c.text(layout.Inning, inningText(g))
		c.diamond()
		c.text(layout.Score, scoreText(g))
		if g.Status != state.FINAL {
			c.text(layout.Count, countText(g))
		}
	case OFF_DAY:
		c.bitmap(layout.OffDayLogo, TeamAssetPrefix+"{team}")
		c.text(layout.Record, recordText(g))
		c.text(layout.NextGame, nextGameText(g))
	}

	stale := kind != SPLASH && b.IsStale(g)
	if stale {
		c.staleIndicator()
	}

	return Scene{
		Kind:       kind,
		Primitives: c.out,
		Stale:      stale,
		Warnings:   warnings,
		Skipped:    c.skipped,
	}
}

type composer struct {
	schema  *layout.Schema
	game    state.GameState
	out     []Primitive
	skipped []error
}

func (c *composer) element(name string) (layout.ElementSpec, bool) {
	spec, err := c.schema.Get(name)
	if err != nil || !spec.Positioned() {
		return layout.ElementSpec{}, false
	}
	return spec, true
}

func (c *composer) text(name, text string) {
	spec, ok := c.element(name)
	if !ok {
		return
	}
	color, ok := spec.Color()
	if !ok {
		color = white
	}
	c.out = append(c.out, TextRun{
		Element: name,
		X:       spec.X,
		Y:       spec.Y,
		Text:    text,
		Color:   color,
		Font:    spec.Font,
	})
}

// bitmap centers the element's box on its anchor.
func (c *composer) bitmap(name, defaultAsset string) {
	spec, ok := c.element(name)
	if !ok {
		return
	}
	asset := spec.Asset
	if asset == "" {
		asset = defaultAsset
	}
	box := geometry.CenteredOn(spec.Point(), orDefault(spec.MaxWidth, DefaultBitmapSize), orDefault(spec.MaxHeight, DefaultBitmapSize))
	c.out = append(c.out, BitmapRef{
		Element: name,
		X:       box.Min.X,
		Y:       box.Min.Y,
		W:       box.Dx(),
		H:       box.Dy(),
		AssetID: c.expand(asset),
	})
}

// qr is only drawn when the layout names a payload.
func (c *composer) qr() {
	spec, ok := c.element(layout.QR)
	if !ok || spec.Asset == "" {
		return
	}
	c.bitmap(layout.QR, spec.Asset)
}

func (c *composer) expand(asset string) string {
	team := c.game.Team
	if team == "" {
		team = c.game.HomeAbbr
	}
	return strings.ReplaceAll(asset, "{team}", team)
}

func (c *composer) diamond() {
	spec, err := c.schema.Get(layout.Bases)
	if err != nil {
		return
	}
	var anchors [4]image.Point
	for i, base := range geometry.Bases {
		child, found := spec.Child(base.String())
		if !found || !child.Positioned() {
			return
		}
		anchors[i] = child.Point()
	}

	width, height := c.schema.Size()
	d := geometry.NewGenerator(width, height).Diamond(anchors[0], anchors[1], anchors[2], anchors[3], spec.Size)

	occupied := [4]bool{c.game.Bases.First, c.game.Bases.Second, c.game.Bases.Third, false}
	var colors [4]layout.RGB
	for i, base := range geometry.Bases {
		color, err := geometry.BaseColor(c.schema, base, occupied[i])
		if err != nil {
			c.skipped = append(c.skipped, err)
			return
		}
		colors[i] = color
	}
	lineColor, err := geometry.LineColor(c.schema)
	if err != nil {
		c.skipped = append(c.skipped, err)
		return
	}

	points := make([]ColoredPoint, 0, len(d.LinePixels())+4*len(d.Squares[0].Pixels))
	for _, p := range d.LinePixels() {
		points = append(points, ColoredPoint{X: p.X, Y: p.Y, Color: lineColor})
	}
	for i, sq := range d.Squares {
		for _, p := range sq.Pixels {
			points = append(points, ColoredPoint{X: p.X, Y: p.Y, Color: colors[i]})
		}
	}
	c.out = append(c.out, PixelSet{Element: layout.Bases, Points: points})
}

func (c *composer) staleIndicator() {
	spec, ok := c.element(layout.Stale)
	if !ok {
		return
	}
	color, ok := spec.Color()
	if !ok {
		color = layout.RGB{R: 0xFF}
	}
	w, h := orDefault(spec.MaxWidth, DefaultStaleSize), orDefault(spec.MaxHeight, DefaultStaleSize)
	rect := geometry.Clip(image.Rect(spec.X, spec.Y, spec.X+w, spec.Y+h), c.schema.Bounds())
	c.out = append(c.out, FilledRect{
		Element: layout.Stale,
		X:       rect.Min.X,
		Y:       rect.Min.Y,
		W:       rect.Dx(),
		H:       rect.Dy(),
		Color:   color,
	})
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
