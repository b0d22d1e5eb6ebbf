package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrBothWalkover = errors.New("both walkover")
	ErrNoScore      = errors.New("no score")
	ErrEqualScore   = errors.New("equal score")
	ErrSameTeam     = errors.New("a team can not play against itself")
)

// A match between two teams of a group.
//
// A match is finished when it has a score, a decided winner
// or exactly one withdrawn team.
type Match struct {
	Team1, Team2 string

	// Counts the meetings of the same two teams.
	// It is the index of the schedule pass the match belongs to.
	Seq int

	// Score of the match or
	// nil when the match is not completed
	Score Score

	// The winner of a match that was decided without a score
	// (e.g. an imported result). Empty otherwise.
	DecidedWinner string

	// The teams who withdrew from this match
	WithdrawnTeams []string
}

func (m *Match) GetWinner() (string, error) {
	withdrawn := m.WithdrawnSlots()

	if len(withdrawn) == 1 {
		return m.Other(withdrawn[0]), nil
	} else if len(withdrawn) == 2 {
		return "", ErrBothWalkover
	}

	if m.Score == nil {
		if m.DecidedWinner != "" {
			return m.DecidedWinner, nil
		}
		return "", ErrNoScore
	}

	winnerIndex, err := m.Score.GetWinner()
	if err != nil {
		return "", ErrEqualScore
	}

	if winnerIndex == 0 {
		return m.Team1, nil
	}
	if winnerIndex == 1 {
		return m.Team2, nil
	}

	panic("Something went wrong while getting the match's winner")
}

// Returns the opponent of the given team
func (m *Match) Other(team string) string {
	if team == m.Team1 {
		return m.Team2
	}
	if team == m.Team2 {
		return m.Team1
	}

	panic("Team is not in the Match")
}

// Returns the teams of the match that have withdrawn
func (m *Match) WithdrawnSlots() []string {
	withdrawn := make([]string, 0, 2)
	if len(m.WithdrawnTeams) == 0 {
		return withdrawn
	}

	if slices.Contains(m.WithdrawnTeams, m.Team1) {
		withdrawn = append(withdrawn, m.Team1)
	}
	if slices.Contains(m.WithdrawnTeams, m.Team2) {
		withdrawn = append(withdrawn, m.Team2)
	}

	return withdrawn
}

func (m *Match) IsWalkover() bool {
	return len(m.WithdrawnSlots()) > 0
}

func (m *Match) ContainsTeam(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// Returns true when the match is between the two teams and has the
// given seq. The order of the teams does not matter.
func (m *Match) Is(team1, team2 string, seq int) bool {
	if m.Seq != seq {
		return false
	}
	return (m.Team1 == team1 && m.Team2 == team2) || (m.Team1 == team2 && m.Team2 == team1)
}

// Returns true when the match has a winner
func (m *Match) Finished() bool {
	_, err := m.GetWinner()
	return err == nil
}

// Removes the result of the match. Withdrawals are not touched.
func (m *Match) clearResult() {
	m.Score = nil
	m.DecidedWinner = ""
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(m.Team1)
	sb.WriteString(" vs. ")
	sb.WriteString(m.Team2)
	if m.Seq > 0 {
		sb.WriteString(fmt.Sprintf(" (%v)", m.Seq+1))
	}

	if m.Score != nil {
		p1, p2 := m.Score.Points1(), m.Score.Points2()
		sb.WriteRune('\t')
		for i := range len(p1) {
			roundString := fmt.Sprintf("%v - %v ", p1[i], p2[i])
			sb.WriteString(roundString)
		}
	} else if m.IsWalkover() || m.DecidedWinner != "" {
		winner, err := m.GetWinner()
		if err == nil {
			sb.WriteString("\twon by ")
			sb.WriteString(winner)
		}
	}

	return sb.String()
}

func NewMatch(team1, team2 string, seq int) *Match {
	match := &Match{
		Team1: team1,
		Team2: team2,
		Seq:   seq,
	}
	return match
}

// The result of a match.
//
// The scores are slices to be able to model
// matches that consist of multiple rounds.
type Score interface {
	// Points of first opponent
	Points1() []int

	// Points of second opponent
	Points2() []int

	// Returns either 0 or 1 whether the
	// first opponent won or the second.
	// Errors when no winner is determined.
	GetWinner() (int, error)

	// Returns a new Score that has Points1
	// and Points2 flipped
	Invert() Score
}

// A Score whose last round can be an extra round that only
// decides a drawn match. The extra round is not counted
// in the round metrics.
type ExtraRoundScore interface {
	Score

	ExtraRound() bool
}

// Returns the number of rounds of the score that count
// for the round metrics
func regularRounds(score Score) int {
	numRounds := len(score.Points1())
	if s, ok := score.(ExtraRoundScore); ok && s.ExtraRound() {
		numRounds -= 1
	}
	return numRounds
}

// A Round is a list of matches that can be played in
// parallel during a group stage. Every team plays
// at most once per round.
type Round struct {
	// The matches that are played in this round
	Matches []*Match
}
