package core

import "slices"

type TeamMetrics struct {
	NumMatches int `json:"numMatches"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`

	NumRounds   int `json:"numRounds"`
	RoundWins   int `json:"roundWins"`
	RoundLosses int `json:"roundLosses"`

	// Points of the regular rounds
	Points int `json:"points"`

	// Drawn rounds count for the loser of the match
	// and against its winner
	Draws int `json:"draws"`

	RoundDifference int `json:"-"`

	Withdrawn bool `json:"-"`
}

func (m *TeamMetrics) UpdateDifferences() {
	m.RoundDifference = m.RoundWins - m.RoundLosses
}

// Returns the points per played round or 0
// when no rounds were played
func (m *TeamMetrics) PointAverage() float64 {
	if m.NumRounds == 0 {
		return 0
	}
	return float64(m.Points) / float64(m.NumRounds)
}

// Add the other team metrics to this one
func (m *TeamMetrics) Add(other *TeamMetrics) {
	m.NumMatches += other.NumMatches
	m.Wins += other.Wins
	m.Losses += other.Losses

	m.NumRounds += other.NumRounds
	m.RoundWins += other.RoundWins
	m.RoundLosses += other.RoundLosses

	m.Points += other.Points
	m.Draws += other.Draws

	m.Withdrawn = m.Withdrawn || other.Withdrawn

	m.UpdateDifferences()
}

// Creates a TeamMetrics struct for each team in the matches.
// If the teams slice is not nil/empty only the matches where both
// opponents are in the slice are counted.
//
// Walkovers count as wins and losses without any rounds.
func CreateMetrics(matches []*Match, teams []string) map[string]*TeamMetrics {
	metrics := make(map[string]*TeamMetrics)
	for _, match := range matches {
		extractTeamMetrics(match, teams, metrics)
	}

	for _, m := range metrics {
		m.UpdateDifferences()
	}

	return metrics
}

func extractTeamMetrics(
	match *Match,
	teams []string,
	metrics map[string]*TeamMetrics,
) {
	t1 := match.Team1
	t2 := match.Team2

	doCount1 := len(teams) == 0 || slices.Contains(teams, t1)
	doCount2 := len(teams) == 0 || slices.Contains(teams, t2)
	if !doCount1 || !doCount2 {
		return
	}

	winner, err := match.GetWinner()
	if err != nil {
		return
	}

	m1 := getOrCreateMetrics(metrics, t1)
	m2 := getOrCreateMetrics(metrics, t2)

	m1.NumMatches += 1
	m2.NumMatches += 1

	if winner == t1 {
		m1.Wins += 1
		m2.Losses += 1
	} else {
		m2.Wins += 1
		m1.Losses += 1
	}

	if match.IsWalkover() {
		for _, withdrawn := range match.WithdrawnSlots() {
			metrics[withdrawn].Withdrawn = true
		}
		return
	}

	score := match.Score
	if score == nil {
		return
	}

	score1 := score.Points1()
	score2 := score.Points2()
	numRounds := regularRounds(score)
	draws := 0
	for i := range numRounds {
		m1.NumRounds += 1
		m2.NumRounds += 1

		points1 := score1[i]
		points2 := score2[i]

		m1.Points += points1
		m2.Points += points2

		if points1 == points2 {
			draws += 1
			continue
		}
		if points1 > points2 {
			m1.RoundWins += 1
			m2.RoundLosses += 1
		} else {
			m2.RoundWins += 1
			m1.RoundLosses += 1
		}
	}

	if winner == t1 {
		m1.Draws -= draws
		m2.Draws += draws
	} else {
		m2.Draws -= draws
		m1.Draws += draws
	}
}

func getOrCreateMetrics(metrics map[string]*TeamMetrics, team string) *TeamMetrics {
	m, ok := metrics[team]
	if !ok {
		m = &TeamMetrics{}
		metrics[team] = m
	}
	return m
}

// Adds zeroed metrics to the metrics map for teams which are
// not already present in the map but are in the teams slice
func addZeroMetrics(metrics map[string]*TeamMetrics, teams []string) {
	for _, t := range teams {
		getOrCreateMetrics(metrics, t)
	}
}
