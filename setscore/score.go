// Package setscore implements the round based match scores of a group.
//
// A match has two or three regular rounds and, when enabled, one extra
// round that only decides an otherwise drawn match.
package setscore

import (
	"errors"

	"github.com/ezBadminton/grouprank/core"
)

const (
	// TimeWinner value of a score whose extra round was not decided on time
	NoTimeWinner = -1

	// The largest round differential a team can gain or lose in one match.
	// 2-0 and draw-win-win both end at 2.
	MaxRoundDifferential = 2

	numRegularRounds = 3

	drawn = -1
)

var (
	ErrPointsZero = errors.New("max points are zero or less")

	ErrUndetermined = errors.New("the winner is undeterminable from the score")

	ErrEmpty                  = errors.New("empty score")
	ErrUnequalRounds          = errors.New("opponents have unequal number of rounds")
	ErrTooManyRounds          = errors.New("too many rounds")
	ErrTooFewRounds           = errors.New("too few rounds")
	ErrNegativePoints         = errors.New("negative points")
	ErrTooManyPoints          = errors.New("points exceed the max points setting")
	ErrUnneededRounds         = errors.New("score contains unneeded extra rounds")
	ErrUndeterminedExtraRound = errors.New("the extra round has equal points and no time winner")
)

type ScoreSettings struct {
	// The most points a team can score in one round
	MaxPoints int
	// Whether a match that is drawn after the regular rounds
	// is decided by an extra round
	ExtraRound bool
}

func NewScoreSettings(maxPoints int, extraRound bool) (ScoreSettings, error) {
	settings := ScoreSettings{MaxPoints: maxPoints, ExtraRound: extraRound}

	if maxPoints <= 0 {
		return settings, ErrPointsZero
	}

	return settings, nil
}

// The Score of one match. It is only created through NewScore
// which guarantees a winner.
type Score struct {
	a, b []int

	timeWinner int
	winner     int
}

func (s *Score) Points1() []int {
	return s.a
}

func (s *Score) Points2() []int {
	return s.b
}

func (s *Score) GetWinner() (int, error) {
	if s.winner == drawn {
		return -1, ErrUndetermined
	}
	return s.winner, nil
}

func (s *Score) Invert() core.Score {
	score := &Score{
		a:          s.b,
		b:          s.a,
		timeWinner: invertIndex(s.timeWinner),
		winner:     invertIndex(s.winner),
	}
	return score
}

// Returns true when the match went into the extra round
func (s *Score) ExtraRound() bool {
	return len(s.a) > numRegularRounds
}

// Returns 0 or 1 when the extra round was drawn and decided on
// time, otherwise NoTimeWinner
func (s *Score) TimeWinner() int {
	return s.timeWinner
}

// Returns the regular rounds won by the first opponent minus the
// regular rounds won by the second. Drawn rounds count for nobody.
func (s *Score) RoundDifferential() int {
	wins1, wins2 := s.roundWins()
	return wins1 - wins2
}

// Returns the index of the round's winner or drawn
func (s *Score) roundWinner(round int) int {
	switch {
	case s.a[round] > s.b[round]:
		return 0
	case s.b[round] > s.a[round]:
		return 1
	}
	return drawn
}

func (s *Score) roundWins() (int, int) {
	wins1, wins2 := 0, 0
	for i := range min(len(s.a), numRegularRounds) {
		switch s.roundWinner(i) {
		case 0:
			wins1 += 1
		case 1:
			wins2 += 1
		}
	}
	return wins1, wins2
}

func (s *Score) regularPoints() (int, int) {
	points1, points2 := 0, 0
	for i := range min(len(s.a), numRegularRounds) {
		points1 += s.a[i]
		points2 += s.b[i]
	}
	return points1, points2
}

// Creates a validated score from the round points of both opponents.
//
// The first two rounds decide the match when one team won both.
// Otherwise the third round is needed and the team with more round
// wins, or with equal round wins the team with more points, wins.
// When that is equal as well the extra round decides by points or,
// with equal points, by the timeWinner (0 or 1).
func NewScore(
	a, b []int,
	timeWinner int,
	settings ScoreSettings,
) (*Score, error) {
	maxRounds := numRegularRounds
	if settings.ExtraRound {
		maxRounds += 1
	}

	switch {
	case len(a) == 0 || len(b) == 0:
		return nil, ErrEmpty
	case len(a) != len(b):
		return nil, ErrUnequalRounds
	case len(a) < 2:
		return nil, ErrTooFewRounds
	case len(a) > maxRounds:
		return nil, ErrTooManyRounds
	}

	for i := range len(a) {
		w := max(a[i], b[i])
		l := min(a[i], b[i])
		switch {
		case l < 0:
			return nil, ErrNegativePoints
		case w > settings.MaxPoints:
			return nil, ErrTooManyPoints
		}
	}

	score := &Score{a: a, b: b, timeWinner: NoTimeWinner, winner: drawn}

	first, second := score.roundWinner(0), score.roundWinner(1)
	if first != drawn && first == second {
		if len(a) > 2 {
			return nil, ErrUnneededRounds
		}
		score.winner = first
		return score, nil
	}
	if len(a) == 2 {
		return nil, ErrTooFewRounds
	}

	wins1, wins2 := score.roundWins()
	points1, points2 := score.regularPoints()
	switch {
	case wins1 != wins2:
		score.winner = boolIndex(wins2 > wins1)
	case points1 != points2:
		score.winner = boolIndex(points2 > points1)
	case !settings.ExtraRound:
		return nil, ErrUndetermined
	case len(a) == numRegularRounds:
		return nil, ErrTooFewRounds
	default:
		extra := score.roundWinner(numRegularRounds)
		if extra == drawn {
			if timeWinner != 0 && timeWinner != 1 {
				return nil, ErrUndeterminedExtraRound
			}
			extra = timeWinner
			score.timeWinner = timeWinner
		}
		score.winner = extra
		return score, nil
	}

	if len(a) > numRegularRounds {
		return nil, ErrUnneededRounds
	}

	return score, nil
}

func boolIndex(second bool) int {
	if second {
		return 1
	}
	return 0
}

func invertIndex(index int) int {
	if index == 0 || index == 1 {
		return 1 - index
	}
	return index
}
