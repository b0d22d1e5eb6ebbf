package internal

import (
	"strconv"
	"strings"
)

// Winner value of a GameResult whose match is not played yet
const NoWinner = -1

// The outcome of one match between two teams of a group.
//
// Teams are referred to by their index in the team list of
// the prediction run.
type GameResult struct {
	Team1, Team2 int
	// Distinguishes repeated meetings of the same pair
	// (0 for the first pass, 1 for the second...)
	Seq int
	// Index of the winning team or NoWinner
	Winner int
}

func NewGameResult(team1, team2, seq, winner int) GameResult {
	return GameResult{Team1: team1, Team2: team2, Seq: seq, Winner: winner}
}

// Returns true when both results describe the same match.
// The winner is not compared.
func (r GameResult) SameGame(other GameResult) bool {
	return r.Team1 == other.Team1 && r.Team2 == other.Team2 && r.Seq == other.Seq
}

func (r GameResult) Finished() bool {
	return r.Winner != NoWinner
}

func (r GameResult) Involves(team int) bool {
	return r.Team1 == team || r.Team2 == team
}

// Returns the index of the team that did not win.
// Returns NoWinner when the match is not finished.
func (r GameResult) Loser() int {
	switch r.Winner {
	case r.Team1:
		return r.Team2
	case r.Team2:
		return r.Team1
	}
	return NoWinner
}

func (r GameResult) writeKey(sb *strings.Builder) {
	sb.WriteString(strconv.Itoa(r.Team1))
	sb.WriteRune('-')
	sb.WriteString(strconv.Itoa(r.Team2))
	sb.WriteRune('#')
	sb.WriteString(strconv.Itoa(r.Seq))
	sb.WriteRune(':')
	sb.WriteString(strconv.Itoa(r.Winner))
}
