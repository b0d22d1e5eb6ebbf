package internal

// The classification of a completed scenario
type Outcome int

const (
	// The target team can not reach the target rank
	Fail Outcome = iota
	// The target team reaches the target rank regardless
	// of how ties resolve
	Win
	// The round-win tie break decides
	Round
)

func (o Outcome) String() string {
	switch o {
	case Fail:
		return "fail"
	case Win:
		return "win"
	case Round:
		return "round"
	}
	panic("unknown outcome")
}

// The Classifier decides for a scenario whether the target team
// finishes at or above the target rank.
type Classifier struct {
	// Index of the target team
	Target int
	// The rank to reach (1 is first place)
	Rank int
	// Round-win differential of each team from the finished matches
	RoundWins []int
	// The largest change of the round-win differential that one match
	// can cause for one team
	RoundBound int
}

// Classifies the scenario.
// The scenario's win counts are recomputed first.
func (c *Classifier) Classify(s *Scenario) Outcome {
	s.Update()

	wins := s.Wins()
	targetWin := wins[c.Target]

	highTeamCount := 0
	sameWinTeams := make([]int, 0, len(wins))
	for team, w := range wins {
		if w > targetWin {
			highTeamCount += 1
		} else if w == targetWin && team != c.Target {
			sameWinTeams = append(sameWinTeams, team)
		}
	}
	sameWinCount := len(sameWinTeams)

	targetMax := c.bestRoundWins(s, c.Target)
	targetMin := c.worstRoundWins(s, c.Target)

	// A single rival is resolved by the direct encounters instead
	highRndTeamCount, lowRndTeamCount := 0, 0
	if sameWinCount != 1 {
		for _, team := range sameWinTeams {
			if c.worstRoundWins(s, team) > targetMax {
				highRndTeamCount += 1
			}
			if c.bestRoundWins(s, team) < targetMin {
				lowRndTeamCount += 1
			}
		}
	}

	switch {
	case highTeamCount+highRndTeamCount >= c.Rank:
		return Fail
	case highTeamCount+sameWinCount-lowRndTeamCount < c.Rank:
		return Win
	case sameWinCount == 1:
		return c.headToHead(s, sameWinTeams[0])
	default:
		return Round
	}
}

// Decides a tie between the target and exactly one rival
// by the matches between the two.
func (c *Classifier) headToHead(s *Scenario, rival int) Outcome {
	winCount, loseCount := 0, 0

	count := func(r GameResult) {
		if !r.Finished() || !r.Involves(c.Target) || !r.Involves(rival) {
			return
		}
		if r.Winner == c.Target {
			winCount += 1
		} else {
			loseCount += 1
		}
	}
	for _, r := range s.season.Finished {
		count(r)
	}
	for _, r := range s.results {
		count(r)
	}

	switch {
	case winCount > loseCount:
		return Win
	case winCount < loseCount:
		return Fail
	default:
		return c.compareRoundWins(s, rival)
	}
}

func (c *Classifier) compareRoundWins(s *Scenario, rival int) Outcome {
	switch {
	case c.worstRoundWins(s, c.Target) > c.bestRoundWins(s, rival):
		return Win
	case c.worstRoundWins(s, rival) > c.bestRoundWins(s, c.Target):
		return Fail
	default:
		return Round
	}
}

func (c *Classifier) bestRoundWins(s *Scenario, team int) int {
	return c.RoundWins[team] + c.RoundBound*s.NewWinNum(team)
}

func (c *Classifier) worstRoundWins(s *Scenario, team int) int {
	return c.RoundWins[team] - c.RoundBound*s.NewLoseNum(team)
}
