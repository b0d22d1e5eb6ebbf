package core

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrInvalidQualifications = errors.New("the number of qualifications is outside of the team count")
	ErrGroupUnfinished       = errors.New("the group has remaining matches")
)

// A Phase is a set of groups that are played in parallel.
// The best teams of all groups qualify for the next stage.
type Phase struct {
	Groups []*Group

	NumQualifications int
}

func NewPhase(groups []*Group, numQualifications int) (*Phase, error) {
	if len(groups) == 0 {
		return nil, ErrInvalidGroupCount
	}

	numTeams := 0
	for _, g := range groups {
		numTeams += len(g.Teams)
	}
	if numQualifications < 1 || numQualifications > numTeams {
		return nil, fmt.Errorf("%w: %v of %v teams", ErrInvalidQualifications, numQualifications, numTeams)
	}

	phase := &Phase{
		Groups:            groups,
		NumQualifications: numQualifications,
	}
	return phase, nil
}

// Returns the rounds of all groups intertwined. The i-th round of the
// phase holds the i-th rounds of the groups with their matches alternating
// between the groups.
func (p *Phase) Rounds() []*Round {
	numRounds := 0
	for _, g := range p.Groups {
		numRounds = max(numRounds, len(g.Rounds))
	}

	rounds := make([]*Round, 0, numRounds)
	for i := range numRounds {
		groupRounds := collectRounds(i, p.Groups)
		rounds = append(rounds, &Round{Matches: intertwineRounds(groupRounds)})
	}
	return rounds
}

func collectRounds(roundI int, groups []*Group) []*Round {
	rounds := make([]*Round, 0, len(groups))
	for _, g := range groups {
		if roundI > len(g.Rounds)-1 {
			continue
		}
		rounds = append(rounds, g.Rounds[roundI])
	}
	return rounds
}

func intertwineRounds(rounds []*Round) []*Match {
	maxMatches := 0
	numMatches := 0
	for _, r := range rounds {
		maxMatches = max(maxMatches, len(r.Matches))
		numMatches += len(r.Matches)
	}

	matches := make([]*Match, 0, numMatches)
	for i := range maxMatches {
		for _, r := range rounds {
			if i > len(r.Matches)-1 {
				continue
			}
			matches = append(matches, r.Matches[i])
		}
	}
	return matches
}

// Returns the qualified teams of the finished phase.
//
// Every group sends its best NumQualifications/len(Groups) teams. When
// the qualifications are not divisible by the number of groups, the
// teams on the next rank of each group are compared across the groups
// and the best of them fill the remaining places.
func (p *Phase) Qualified() ([]string, error) {
	numGroups := len(p.Groups)
	perGroup := p.NumQualifications / numGroups
	numExtra := p.NumQualifications % numGroups

	standings := make([]*Standings, 0, numGroups)
	for _, g := range p.Groups {
		if !g.MatchesComplete() {
			return nil, fmt.Errorf("%w: %v", ErrGroupUnfinished, g.Name)
		}
		s, err := g.Standings()
		if err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}

	qualified := make([]string, 0, p.NumQualifications)
	candidates := make([]string, 0, numGroups)
	for _, s := range standings {
		ranks := s.Ranks()
		qualified = append(qualified, ranks[:min(perGroup, len(ranks))]...)
		if perGroup < len(ranks) {
			candidates = append(candidates, ranks[perGroup])
		}
	}

	if numExtra == 0 {
		return qualified, nil
	}

	metrics := p.crossGroupMetrics(standings)
	ranked := slices.Concat(sortByTieBreakers(candidates, metrics, crossGroupTieBreakers)...)
	qualified = append(qualified, ranked[:min(numExtra, len(ranked))]...)

	return qualified, nil
}

var crossGroupTieBreakers = []tieBreaker{byWins, byFewerLosses, byRoundDifference, byPointAverage, byDraws}

// Returns metrics that are comparable between the groups.
//
// When the groups differ in size the teams of the bigger groups played
// more matches. To balance this the matches against the last placed team
// of a bigger group count as walkover wins for its opponents and every
// team of a smaller group gets one walkover win per pass. The last placed
// teams keep their metrics.
func (p *Phase) crossGroupMetrics(standings []*Standings) map[string]*TeamMetrics {
	minSize := len(p.Groups[0].Teams)
	maxSize := minSize
	for _, g := range p.Groups {
		minSize = min(minSize, len(g.Teams))
		maxSize = max(maxSize, len(g.Teams))
	}

	metrics := make(map[string]*TeamMetrics)
	for i, g := range p.Groups {
		if minSize == maxSize {
			maps.Copy(metrics, standings[i].Metrics)
			continue
		}

		walkover := &TeamMetrics{NumMatches: g.Passes, Wins: g.Passes}

		if len(g.Teams) == minSize {
			groupMetrics := CreateMetrics(g.Matches, g.Teams)
			addZeroMetrics(groupMetrics, g.Teams)
			for _, m := range groupMetrics {
				m.Add(walkover)
			}
			maps.Copy(metrics, groupMetrics)
			continue
		}

		ranks := standings[i].Ranks()
		last := ranks[len(ranks)-1]
		withoutLast := slices.DeleteFunc(slices.Clone(g.Matches), func(m *Match) bool {
			return m.ContainsTeam(last)
		})
		groupMetrics := CreateMetrics(withoutLast, g.Teams)
		addZeroMetrics(groupMetrics, g.Teams)
		for _, m := range groupMetrics {
			m.Add(walkover)
		}
		groupMetrics[last] = standings[i].Metrics[last]
		maps.Copy(metrics, groupMetrics)
	}

	return metrics
}
