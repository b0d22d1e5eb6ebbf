package internal

// Team indices of the test groups
const (
	teamA = iota
	teamB
	teamC
	teamD
)

func finished(team1, team2, winner int) GameResult {
	return NewGameResult(team1, team2, 0, winner)
}

func unplayed(team1, team2, seq int) GameResult {
	return NewGameResult(team1, team2, seq, NoWinner)
}

func newPredictor(numTeams int, done, remaining []GameResult, roundWins []int, target, rank int) *Predictor {
	season := NewSeason(numTeams, done)
	return &Predictor{
		Season:    season,
		Remaining: remaining,
		Classifier: &Classifier{
			Target:     target,
			Rank:       rank,
			RoundWins:  roundWins,
			RoundBound: 2,
		},
	}
}

// Three teams where A already beat B.
// B-C and A-C are still to be played.
func leaderGroup() *Predictor {
	done := []GameResult{finished(teamA, teamB, teamA)}
	remaining := []GameResult{unplayed(teamB, teamC, 0), unplayed(teamA, teamC, 0)}
	return newPredictor(3, done, remaining, []int{2, -2, 0}, teamA, 1)
}

// Four teams playing two passes with a few results in
func twoPassGroup(target, rank int) *Predictor {
	done := []GameResult{
		finished(teamA, teamB, teamA),
		finished(teamC, teamD, teamD),
		finished(teamA, teamC, teamC),
		finished(teamB, teamD, teamB),
	}
	remaining := []GameResult{
		unplayed(teamA, teamD, 0),
		unplayed(teamB, teamC, 0),
		NewGameResult(teamB, teamA, 1, NoWinner),
		NewGameResult(teamD, teamC, 1, NoWinner),
		NewGameResult(teamC, teamA, 1, NoWinner),
		NewGameResult(teamD, teamB, 1, NoWinner),
	}
	roundWins := []int{1, 0, -1, 0}
	return newPredictor(4, done, remaining, roundWins, target, rank)
}

func keys(set ScenarioSet) []string {
	keys := make([]string, 0, len(set))
	for _, s := range set.Sorted() {
		keys = append(keys, s.Key())
	}
	return keys
}
