package layout

// Element names the scene builder looks up.
const (
	Logo        = "logo"
	Matchup     = "matchup"
	Inning      = "inning"
	Bases       = "bases"
	Score       = "score"
	Count       = "count"
	OffDayLogo  = "off_day_logo"
	Record      = "record"
	NextGame    = "next_game"
	SplashLogo  = "splash_logo"
	Version     = "version"
	QR          = "qr"
	Stale       = "stale"
	FirstBase   = "first"
	SecondBase  = "second"
	ThirdBase   = "third"
	HomePlate   = "home"
	KeyColor    = "color"
	KeyColorOn  = "color_on"
	KeyColorOff = "color_off"
)

type requirement struct {
	keys     []string
	children map[string][]string
}

var (
	positioned = []string{"x", "y"}
	textual    = []string{"x", "y", KeyColor}
	baseKeys   = []string{"x", "y", KeyColorOn, KeyColorOff}
)

// known lists the required keys of every element the scene builder understands.
// Elements outside this table are accepted as long as their coordinates are valid.
var known = map[string]requirement{
	Logo:       {keys: positioned},
	OffDayLogo: {keys: positioned},
	SplashLogo: {keys: positioned},
	QR:         {keys: positioned},
	Matchup:    {keys: textual},
	Inning:     {keys: textual},
	Score:      {keys: textual},
	Count:      {keys: textual},
	Record:     {keys: textual},
	NextGame:   {keys: textual},
	Version:    {keys: textual},
	Stale:      {keys: textual},
	Bases: {children: map[string][]string{
		FirstBase:  baseKeys,
		SecondBase: baseKeys,
		ThirdBase:  baseKeys,
		HomePlate:  textual,
	}},
}

// childOrder fixes the order nested requirements are reported in.
var childOrder = []string{FirstBase, SecondBase, ThirdBase, HomePlate}
