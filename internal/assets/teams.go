package assets

import "github.com/rook-computer/scoreboard/internal/layout"

// Team is the static identity of an MLB club.
type Team struct {
	Abbr      string
	ID        int
	Primary   layout.RGB
	Secondary layout.RGB
	Text      layout.RGB
}

func team(abbr string, id int, primary, secondary uint32) Team {
	return Team{
		Abbr:      abbr,
		ID:        id,
		Primary:   layout.RGBFromUint(primary),
		Secondary: layout.RGBFromUint(secondary),
		Text:      layout.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	}
}

var teams = []Team{
	// AL East
	team("BAL", 110, 0xDF4601, 0x000000),
	team("BOS", 111, 0xBD3039, 0x0C2340),
	team("NYY", 147, 0x003087, 0xC4CED4),
	team("TB", 139, 0x092C5C, 0x8FBCE6),
	team("TOR", 141, 0x134A8E, 0xE8291C),
	// AL Central
	team("CWS", 145, 0x000000, 0xC4CED4),
	team("CLE", 114, 0xE31937, 0x00295D),
	team("DET", 116, 0x0C2340, 0xFA4616),
	team("KC", 118, 0x004687, 0xBD9B60),
	team("MIN", 142, 0x002B5C, 0xD31145),
	// AL West
	team("HOU", 117, 0xEB6E1F, 0x002D62),
	team("LAA", 108, 0xBA0021, 0x003263),
	team("OAK", 133, 0x003831, 0xEFB21E),
	team("SEA", 136, 0x0C2C56, 0x005C5C),
	team("TEX", 140, 0xC0111F, 0x003278),
	// NL East
	team("ATL", 144, 0xCE1141, 0x13274F),
	team("MIA", 146, 0x00A3E0, 0xEF3340),
	team("NYM", 121, 0xFF5910, 0x002D72),
	team("PHI", 143, 0xE81828, 0x002D72),
	team("WSH", 120, 0xAB0003, 0x11225B),
	// NL Central
	team("CHC", 112, 0x0E3386, 0xCC3433),
	team("CIN", 113, 0xC6011F, 0x000000),
	team("MIL", 158, 0x0A2351, 0xB6922E),
	team("PIT", 134, 0x000000, 0xFDB827),
	team("STL", 138, 0xC41E3A, 0x0C2340),
	// NL West
	team("ARI", 109, 0xA71930, 0x000000),
	team("COL", 115, 0x333366, 0xC4CED4),
	team("LAD", 119, 0x005A9C, 0xA5ACAF),
	team("SD", 135, 0x2F241D, 0xFFC425),
	team("SF", 137, 0xFD5A1E, 0x000000),
}

// League is used for clubs missing from the table.
var League = team("MLB", 1, 0x002D72, 0xE4002B)

var (
	byAbbr = make(map[string]Team, len(teams))
	byID   = make(map[int]Team, len(teams))
)

func init() {
	for _, t := range teams {
		byAbbr[t.Abbr] = t
		byID[t.ID] = t
	}
}

func LookupTeam(abbr string) (Team, bool) {
	t, ok := byAbbr[abbr]
	return t, ok
}

func TeamByID(id int) (Team, bool) {
	t, ok := byID[id]
	return t, ok
}

// Teams returns the table in division order.
func Teams() []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}
