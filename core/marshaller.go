package core

import (
	"encoding/json"
	"maps"
)

func marshalPrediction(prediction *Prediction) map[string]any {
	remaining := make([]map[string]any, len(prediction.Remaining))
	for i, f := range prediction.Remaining {
		remaining[i] = map[string]any{
			"team1": f.Team1,
			"team2": f.Team2,
			"seq":   f.Seq,
		}
	}

	result := map[string]any{
		"teams":          prediction.Teams,
		"target":         prediction.Target,
		"rank":           prediction.Rank,
		"remaining":      remaining,
		"scenarios":      marshalScenarios(prediction.Scenarios),
		"roundScenarios": marshalScenarios(prediction.RoundScenarios),
		"reversed":       prediction.Reversed,
		"counts":         prediction.Counts,
	}

	return result
}

func marshalScenarios(scenarios []Scenario) [][]Outcome {
	outcomes := make([][]Outcome, len(scenarios))
	for i, s := range scenarios {
		outcomes[i] = s.Outcomes
		if outcomes[i] == nil {
			outcomes[i] = []Outcome{}
		}
	}
	return outcomes
}

func marshalStandings(standings *Standings) map[string]any {
	metrics := make([]map[string]any, 0, len(standings.Metrics))
	for _, team := range standings.Ranks() {
		m := map[string]any{
			"team": team,
			"rank": standings.RankOf(team),
		}
		maps.Copy(m, marshalMetrics(standings.Metrics[team]))
		metrics = append(metrics, m)
	}

	result := map[string]any{
		"ranks":   standings.TiedRanks(),
		"metrics": metrics,
	}

	return result
}

func marshalMetrics(metrics *TeamMetrics) map[string]any {
	result := map[string]any{
		"numMatches":      metrics.NumMatches,
		"wins":            metrics.Wins,
		"losses":          metrics.Losses,
		"numRounds":       metrics.NumRounds,
		"roundDifference": metrics.RoundDifference,
		"points":          metrics.Points,
		"draws":           metrics.Draws,
		"withdrawn":       metrics.Withdrawn,
	}
	return result
}

func marshalRounds(rounds []*Round) [][]map[string]any {
	marshalled := make([][]map[string]any, len(rounds))
	for i, round := range rounds {
		roundMatches := make([]map[string]any, len(round.Matches))
		for i, match := range round.Matches {
			roundMatches[i] = marshalMatch(match)
		}
		marshalled[i] = roundMatches
	}
	return marshalled
}

func marshalMatch(match *Match) map[string]any {
	score := make([][]int, 0)
	if match.Score != nil {
		score = append(
			score,
			match.Score.Points1(),
			match.Score.Points2(),
		)
	}
	winner, _ := match.GetWinner()
	result := map[string]any{
		"team1":     match.Team1,
		"team2":     match.Team2,
		"seq":       match.Seq,
		"score":     score,
		"winner":    winner,
		"walkover":  match.IsWalkover(),
		"withdrawn": match.WithdrawnSlots(),
	}
	return result
}

func marshalGroup(group *Group) (map[string]any, error) {
	standings, err := group.Standings()
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"name":   group.Name,
		"teams":  group.Teams,
		"passes": group.Passes,
		"rounds": marshalRounds(group.Rounds),
	}
	maps.Copy(result, marshalStandings(standings))

	return result, nil
}

func (p *Prediction) MarshalJSON() ([]byte, error) {
	anymap := marshalPrediction(p)
	return json.Marshal(anymap)
}

func (s *Standings) MarshalJSON() ([]byte, error) {
	anymap := marshalStandings(s)
	return json.Marshal(anymap)
}

func (g *Group) MarshalJSON() ([]byte, error) {
	anymap, err := marshalGroup(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(anymap)
}
