package core

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrTooFewTeams   = errors.New("not enough teams for a group")
	ErrDuplicateTeam = errors.New("duplicate team")
	ErrUnknownTeam   = errors.New("unknown team")
	ErrUnknownMatch  = errors.New("unknown match")
)

// A Group is a round robin where every team plays every other
// team once per pass.
type Group struct {
	Name  string
	Teams []string

	// How often all matchups are played through
	Passes int

	Matches []*Match
	Rounds  []*Round
}

// Creates a group and schedules its matches with the circle method.
// A passes value below 1 means one pass.
func NewGroup(name string, teams []string, passes int) (*Group, error) {
	if len(teams) < 2 {
		return nil, ErrTooFewTeams
	}
	for i, t := range teams {
		if slices.Contains(teams[:i], t) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateTeam, t)
		}
	}

	if passes < 1 {
		passes = 1
	}

	group := &Group{
		Name:   name,
		Teams:  slices.Clone(teams),
		Passes: passes,
	}
	group.schedule()

	return group, nil
}

func (g *Group) schedule() {
	entries := slices.Clone(g.Teams)
	if len(entries)%2 != 0 {
		// The opponent of "" has a free round
		entries = append(entries, "")
	}

	numRounds := len(entries) - 1
	numMatches := len(entries) / 2

	rounds := make([]*Round, 0, g.Passes*numRounds)
	for passI := range g.Passes {
		for roundI := range numRounds {
			round := createRound(entries, passI, roundI)
			rounds = append(rounds, round)
		}
	}
	matches := make([]*Match, 0, g.Passes*numRounds*numMatches)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}

	g.Rounds = rounds
	g.Matches = matches
}

func createRound(entries []string, passI, roundI int) *Round {
	numMatches := len(entries) / 2
	round := &Round{
		Matches: make([]*Match, 0, numMatches),
	}

	for matchI := range numMatches {
		team1, team2 := pickOpponents(entries, passI, roundI, matchI)
		if team1 == "" || team2 == "" {
			continue
		}
		match := NewMatch(team1, team2, passI)
		round.Matches = append(round.Matches, match)
	}

	return round
}

// Returns the opponents of the specified match by its three indices
// while making sure the share of first-named matches is evenly
// distributed among the teams
func pickOpponents(entries []string, passI, roundI, matchI int) (string, string) {
	i1 := matchI
	i2 := len(entries) - 1 - matchI

	i1 = roundRobinCircleIndex(i1, len(entries), roundI)
	i2 = roundRobinCircleIndex(i2, len(entries), roundI)

	team1 := entries[i1]
	team2 := entries[i2]

	if matchI == 0 && roundI%2 != 0 {
		team1, team2 = team2, team1
	}
	if passI%2 != 0 {
		team1, team2 = team2, team1
	}

	return team1, team2
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	index += 1
	return index
}

// Adds a team to the group. It gets one match against
// every other team per pass. Each new match is put into the
// first round where both of its teams are free.
func (g *Group) AddTeam(team string) error {
	if team == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownTeam)
	}
	if slices.Contains(g.Teams, team) {
		return fmt.Errorf("%w: %v", ErrDuplicateTeam, team)
	}

	for passI := range g.Passes {
		for _, other := range g.Teams {
			team1, team2 := other, team
			if passI%2 != 0 {
				team1, team2 = team2, team1
			}
			match := NewMatch(team1, team2, passI)
			g.addToSchedule(match)
			g.Matches = append(g.Matches, match)
		}
	}

	g.Teams = append(g.Teams, team)
	return nil
}

func (g *Group) addToSchedule(match *Match) {
	for _, r := range g.Rounds {
		free := !slices.ContainsFunc(r.Matches, func(m *Match) bool {
			return m.ContainsTeam(match.Team1) || m.ContainsTeam(match.Team2)
		})
		if free {
			r.Matches = append(r.Matches, match)
			return
		}
	}
	g.Rounds = append(g.Rounds, &Round{Matches: []*Match{match}})
}

// Removes the team and all of its matches from the group.
// Results against the team are dropped with them, so its opponents
// lose those wins and losses. Rounds without matches are removed.
//
// Returns the removed matches.
func (g *Group) RemoveTeam(team string) ([]*Match, error) {
	if !slices.Contains(g.Teams, team) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTeam, team)
	}
	if len(g.Teams) <= 2 {
		return nil, ErrTooFewTeams
	}

	removed := g.MatchesOfTeam(team)
	isRemoved := func(m *Match) bool { return m.ContainsTeam(team) }

	g.Matches = slices.DeleteFunc(g.Matches, isRemoved)
	for _, r := range g.Rounds {
		r.Matches = slices.DeleteFunc(r.Matches, isRemoved)
	}
	g.Rounds = slices.DeleteFunc(g.Rounds, func(r *Round) bool { return len(r.Matches) == 0 })
	g.Teams = slices.DeleteFunc(g.Teams, func(t string) bool { return t == team })

	return removed, nil
}

// Renames a team in the group and in all of its matches
func (g *Group) RenameTeam(team, newName string) error {
	i := slices.Index(g.Teams, team)
	if i == -1 {
		return fmt.Errorf("%w: %v", ErrUnknownTeam, team)
	}
	if newName == team {
		return nil
	}
	if newName == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownTeam)
	}
	if slices.Contains(g.Teams, newName) {
		return fmt.Errorf("%w: %v", ErrDuplicateTeam, newName)
	}

	rename := func(t *string) {
		if *t == team {
			*t = newName
		}
	}

	g.Teams[i] = newName
	for _, m := range g.MatchesOfTeam(team) {
		rename(&m.Team1)
		rename(&m.Team2)
		rename(&m.DecidedWinner)
		for j := range m.WithdrawnTeams {
			rename(&m.WithdrawnTeams[j])
		}
	}

	return nil
}

// Returns the match between the two teams with the given seq.
// The order of the teams does not matter.
func (g *Group) Match(team1, team2 string, seq int) (*Match, error) {
	for _, m := range g.Matches {
		if m.Is(team1, team2, seq) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v vs. %v (%v)", ErrUnknownMatch, team1, team2, seq)
}

// Sets the score of a match. The score is given from the
// perspective of team1 and is inverted when the match lists
// the teams the other way around.
//
// A new score replaces a walkover of the match.
func (g *Group) RecordResult(team1, team2 string, seq int, score Score) error {
	match, err := g.Match(team1, team2, seq)
	if err != nil {
		return err
	}
	if score == nil {
		return ErrNoScore
	}
	if _, err := score.GetWinner(); err != nil {
		return ErrEqualScore
	}

	if match.Team1 != team1 {
		score = score.Invert()
	}

	match.clearResult()
	match.Score = score
	match.WithdrawnTeams = nil
	return nil
}

// Sets the winner of a match without a score
func (g *Group) RecordWinner(team1, team2 string, seq int, winner string) error {
	match, err := g.Match(team1, team2, seq)
	if err != nil {
		return err
	}
	if !match.ContainsTeam(winner) {
		return fmt.Errorf("%w: %v did not play %v", ErrUnknownTeam, winner, match)
	}

	match.clearResult()
	match.DecidedWinner = winner
	return nil
}

// Removes the result of a match
func (g *Group) ClearResult(team1, team2 string, seq int) error {
	match, err := g.Match(team1, team2, seq)
	if err != nil {
		return err
	}
	match.clearResult()
	return nil
}

func (g *Group) MatchesOfTeam(team string) []*Match {
	matches := make([]*Match, 0, (len(g.Teams)-1)*g.Passes)
	for _, m := range g.Matches {
		if m.ContainsTeam(team) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Returns the matches that have a winner
func (g *Group) Finished() []*Match {
	return slices.DeleteFunc(slices.Clone(g.Matches), func(m *Match) bool { return !m.Finished() })
}

// Returns the matches that are still to be played.
// Matches that both opponents withdrew from are neither
// finished nor remaining.
func (g *Group) Remaining() []*Match {
	return slices.DeleteFunc(slices.Clone(g.Matches), func(m *Match) bool {
		_, err := m.GetWinner()
		return !errors.Is(err, ErrNoScore)
	})
}

// Returns true when all matches in the group are complete
func (g *Group) MatchesComplete() bool {
	return len(g.Remaining()) == 0
}

func (g *Group) Standings() (*Standings, error) {
	return NewStandings(g.Teams, g.Matches)
}
