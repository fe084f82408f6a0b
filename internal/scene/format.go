package scene

import (
	"fmt"

	"github.com/rook-computer/scoreboard/internal/state"
)

func matchupText(g state.GameState) string {
	return g.AwayAbbr + "@" + g.HomeAbbr
}

// inningText renders "TOP 4" / "BOT 4", "FINAL", or the first-pitch time for
// a game that has not started.
func inningText(g state.GameState) string {
	switch g.Status {
	case state.FINAL:
		return "FINAL"
	case state.SCHEDULED:
		if g.StartTime.IsZero() {
			return "PRE"
		}
		return g.StartTime.Format("3:04")
	}
	half := "TOP"
	if g.InningHalf == state.BOTTOM {
		half = "BOT"
	}
	return fmt.Sprintf("%s %d", half, g.Inning)
}

func scoreText(g state.GameState) string {
	return fmt.Sprintf("%s %d-%d %s", g.AwayAbbr, g.AwayScore, g.HomeScore, g.HomeAbbr)
}

func countText(g state.GameState) string {
	return fmt.Sprintf("B:%d S:%d O:%d", g.Balls, g.Strikes, g.Outs)
}

func recordText(g state.GameState) string {
	if g.Team == "" {
		return fmt.Sprintf("%d-%d", g.Record.Wins, g.Record.Losses)
	}
	return fmt.Sprintf("%s %d-%d", g.Team, g.Record.Wins, g.Record.Losses)
}

func nextGameText(g state.GameState) string {
	next := g.NextGame
	if next == nil || next.Opponent == "" {
		return "NO GAME"
	}
	prefix := "@"
	if next.Home {
		prefix = "vs "
	}
	if next.Start.IsZero() {
		return prefix + next.Opponent
	}
	return fmt.Sprintf("%s%s %s", prefix, next.Opponent, next.Start.Format("1/2"))
}

func versionText(version string) string {
	if version == "" {
		return "dev"
	}
	if version[0] >= '0' && version[0] <= '9' {
		return "v" + version
	}
	return version
}
