package core

import (
	"cmp"
	"slices"

	"github.com/ezBadminton/grouprank/internal"
)

// The Standings rank the teams of a group by their
// performance in the group's matches.
type Standings struct {
	// Each team's metrics which are the basis for the ranks
	Metrics map[string]*TeamMetrics

	teams   []string
	results *internal.ResultGraph
	ranks   [][]string
}

// A tie-break criterion, higher is better
type tieBreaker func(m *TeamMetrics) float64

var (
	byRoundDifference tieBreaker = func(m *TeamMetrics) float64 { return float64(m.RoundDifference) }
	byPointAverage    tieBreaker = func(m *TeamMetrics) float64 { return m.PointAverage() }
	byDraws           tieBreaker = func(m *TeamMetrics) float64 { return float64(m.Draws) }
	byWins            tieBreaker = func(m *TeamMetrics) float64 { return float64(m.Wins) }
	byFewerLosses     tieBreaker = func(m *TeamMetrics) float64 { return float64(-m.Losses) }

	tieBreakers = []tieBreaker{byRoundDifference, byPointAverage, byDraws}
)

func NewStandings(teams []string, matches []*Match) (*Standings, error) {
	metrics := CreateMetrics(matches, teams)
	addZeroMetrics(metrics, teams)

	results := internal.NewResultGraph(teams)
	for _, m := range matches {
		winner, err := m.GetWinner()
		if err != nil {
			continue
		}
		if err := results.AddResult(winner, m.Other(winner)); err != nil {
			return nil, err
		}
	}

	standings := &Standings{
		Metrics: metrics,
		teams:   teams,
		results: results,
	}
	standings.updateRanks()

	return standings, nil
}

// Returns the ranks in descending order. More than one team in a
// rank means the tie could not be broken.
func (s *Standings) TiedRanks() [][]string {
	return s.ranks
}

// Returns all teams in rank order
func (s *Standings) Ranks() []string {
	return slices.Concat(s.ranks...)
}

// Returns the rank of the team starting at 1. Tied teams share
// the rank of the best placed team of their tie.
// Returns 0 for unknown teams.
func (s *Standings) RankOf(team string) int {
	rank := 1
	for _, tie := range s.ranks {
		if slices.Contains(tie, team) {
			return rank
		}
		rank += len(tie)
	}
	return 0
}

// Teams that did not finish any match are placed last. The other
// teams are sorted by wins, then by fewer losses and the remaining
// ties are broken by breakTie.
func (s *Standings) updateRanks() {
	played := make([]string, 0, len(s.teams))
	unplayed := make([]string, 0)
	for _, t := range s.teams {
		if s.Metrics[t].NumMatches > 0 {
			played = append(played, t)
		} else {
			unplayed = append(unplayed, t)
		}
	}

	sortedByWins := sortByMetric(played, s.Metrics, byWins)

	ranks := make([][]string, 0, len(s.teams))
	for _, winTie := range sortedByWins {
		sortedByLosses := sortByMetric(winTie, s.Metrics, byFewerLosses)
		for _, tie := range sortedByLosses {
			ranks = append(ranks, s.breakTie(tie)...)
		}
	}

	if len(unplayed) > 0 {
		ranks = append(ranks, unplayed)
	}

	s.ranks = ranks
}

// Attempts to break the tie between teams with the same amount of wins
// and losses.
//
// Two-way ties are forwarded to breakTwoWayTie. Bigger ties are sorted
// by round difference, then point average per round, then draws.
// The direct encounters are not considered for them.
func (s *Standings) breakTie(tie []string) [][]string {
	switch len(tie) {
	case 1:
		return [][]string{tie}
	case 2:
		return s.breakTwoWayTie(tie[0], tie[1])
	}
	return sortByTieBreakers(tie, s.Metrics, tieBreakers)
}

// Attempts to break a two-way-tie between t1 and t2.
//
// The team that won more direct encounters is ranked higher.
// Otherwise the tie-breakers of bigger ties apply.
//
// If none of those criteria are decisive the tie is unbreakable and
// [[t1, t2]] is returned. Otherwise [[winner],[loser]].
func (s *Standings) breakTwoWayTie(t1, t2 string) [][]string {
	wins1 := s.results.Wins(t1, t2)
	wins2 := s.results.Wins(t2, t1)
	switch {
	case wins1 > wins2:
		return [][]string{{t1}, {t2}}
	case wins2 > wins1:
		return [][]string{{t2}, {t1}}
	}

	return sortByTieBreakers([]string{t1, t2}, s.Metrics, tieBreakers)
}

// Sorts the tie by the first tie-breaker and the emerged sub-ties
// by the following ones
func sortByTieBreakers(tie []string, metrics map[string]*TeamMetrics, breakers []tieBreaker) [][]string {
	if len(tie) == 1 || len(breakers) == 0 {
		return [][]string{tie}
	}

	sorted := sortByMetric(tie, metrics, breakers[0])
	subTieBroken := make([][]string, 0, len(tie))
	for _, subTie := range sorted {
		subTieBroken = append(subTieBroken, sortByTieBreakers(subTie, metrics, breakers[1:])...)
	}
	return subTieBroken
}

// Sorts the teams in descending buckets of one of the metrics returned by the getter.
// The order of the teams inside a bucket is kept.
func sortByMetric(teams []string, metrics map[string]*TeamMetrics, getter func(m *TeamMetrics) float64) [][]string {
	buckets := make(map[float64][]string)

	for _, t := range teams {
		metric := getter(metrics[t])
		buckets[metric] = append(buckets[metric], t)
	}

	sortedMetrics := make([]float64, 0, len(buckets))
	for k := range buckets {
		sortedMetrics = append(sortedMetrics, k)
	}
	slices.SortFunc(sortedMetrics, func(a, b float64) int { return cmp.Compare(b, a) })

	sortedTeams := make([][]string, 0, len(sortedMetrics))
	for _, v := range sortedMetrics {
		sortedTeams = append(sortedTeams, buckets[v])
	}

	return sortedTeams
}
