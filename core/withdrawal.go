package core

import (
	"fmt"
	"slices"
)

// The WithdrawalPolicy dictates how a team can
// withdraw from a group and also if a team
// would be allowed to reenter.
type WithdrawalPolicy interface {
	// Withdraws the given team from the group.
	// The specific matches that the team was withdrawn from
	// are returned.
	WithdrawTeam(team string) ([]*Match, error)

	// Attempts to reenter the team into the group.
	// On success the specific matches that the team
	// was reentered into are returned.
	ReenterTeam(team string) ([]*Match, error)

	// Lists the matches that a team would be withdrawn from
	// if WithdrawTeam was called
	ListWithdrawMatches(team string) []*Match

	// Lists the matches that a team would reenter into
	// if ReenterTeam was called
	ListReenterMatches(team string) []*Match
}

var _ WithdrawalPolicy = (*Group)(nil)

// Withdraws the team from its remaining matches.
// Those matches become walkovers for the opponents.
func (g *Group) WithdrawTeam(team string) ([]*Match, error) {
	if !slices.Contains(g.Teams, team) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTeam, team)
	}
	withdrawMatches := g.ListWithdrawMatches(team)
	withdrawFromMatches(team, withdrawMatches)
	return withdrawMatches, nil
}

// Reverts the walkovers of the team that were not
// replaced by a scored result in the meantime
func (g *Group) ReenterTeam(team string) ([]*Match, error) {
	if !slices.Contains(g.Teams, team) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTeam, team)
	}
	reenterMatches := g.ListReenterMatches(team)
	reenterIntoMatches(team, reenterMatches)
	return reenterMatches, nil
}

func (g *Group) ListWithdrawMatches(team string) []*Match {
	withdrawMatches := make([]*Match, 0, len(g.Teams))
	for _, m := range g.MatchesOfTeam(team) {
		if m.Score == nil && m.DecidedWinner == "" && !slices.Contains(m.WithdrawnTeams, team) {
			withdrawMatches = append(withdrawMatches, m)
		}
	}
	return withdrawMatches
}

func (g *Group) ListReenterMatches(team string) []*Match {
	reenterMatches := make([]*Match, 0, len(g.Teams))
	for _, m := range g.MatchesOfTeam(team) {
		if slices.Contains(m.WithdrawnTeams, team) {
			reenterMatches = append(reenterMatches, m)
		}
	}
	return reenterMatches
}

func withdrawFromMatches(team string, withdrawMatches []*Match) {
	for _, m := range withdrawMatches {
		m.WithdrawnTeams = append(m.WithdrawnTeams, team)
	}
}

func reenterIntoMatches(team string, reenterMatches []*Match) {
	for _, m := range reenterMatches {
		m.WithdrawnTeams = slices.DeleteFunc(m.WithdrawnTeams, func(t string) bool { return t == team })
	}
}
