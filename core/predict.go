package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ezBadminton/grouprank/internal"
)

// The largest round differential one match can cause for one team.
// It matches the round scoring of the setscore package.
const DefaultRoundBound = 2

var (
	ErrInvalidRank       = errors.New("the rank is outside of the team count")
	ErrInvalidFixture    = errors.New("invalid fixture")
	ErrInvalidRoundBound = errors.New("the round bound is negative")
)

// A team of the group as the prediction sees it
type Entry struct {
	Alias string `json:"alias"`
	Wins  int    `json:"wins"`
	// Round wins minus round losses
	RoundWins int `json:"roundWins"`
}

// A match of the group as the prediction sees it
type Fixture struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	// Distinguishes repeated meetings of the same teams
	Seq int `json:"seq"`
	// Alias of the winner or empty when the match is unplayed
	Winner string `json:"winner,omitempty"`
}

func (f Fixture) Finished() bool {
	return f.Winner != ""
}

type PredictSettings struct {
	// The largest change of the round differential that one match
	// can cause for one team. 0 means DefaultRoundBound.
	RoundBound int

	// Receives the progress of the prediction in percent.
	// The values never decrease. May be nil.
	Progress func(percent int)

	// May be nil
	Logger *slog.Logger
}

func NewPredictSettings() *PredictSettings {
	return &PredictSettings{RoundBound: DefaultRoundBound}
}

// The winner of one match in a scenario
type Outcome struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Seq    int    `json:"seq"`
	Winner string `json:"winner"`
}

// A Scenario is a set of match outcomes. The remaining matches
// that are not listed can end either way.
type Scenario struct {
	Outcomes []Outcome
}

// Returns true when the scenario does not depend on
// any remaining match
func (s Scenario) Unconditional() bool {
	return len(s.Outcomes) == 0
}

// Number of completed scenarios per classification
type PredictionCounts struct {
	Win    int `json:"win"`
	Round  int `json:"round"`
	Fail   int `json:"fail"`
	Leaves int `json:"leaves"`
}

// The result of PredictRank
type Prediction struct {
	Teams  []string
	Target string
	Rank   int

	// The unplayed fixtures in the order the scenarios refer to them
	Remaining []Fixture

	// The scenarios in which the target reaches the rank.
	// When Reversed is true these are the scenarios in which
	// the target does not reach the rank and it is reached in
	// all other scenarios.
	Scenarios []Scenario

	// The scenarios in which the round differential decides
	RoundScenarios []Scenario

	Reversed bool

	Counts PredictionCounts
}

// Returns true when the target reaches the rank in every scenario
func (p *Prediction) Guaranteed() bool {
	return p.Reversed && len(p.Scenarios) == 0 && len(p.RoundScenarios) == 0
}

// Returns true when the target can not reach the rank in any scenario
func (p *Prediction) Impossible() bool {
	return !p.Reversed && len(p.Scenarios) == 0 && len(p.RoundScenarios) == 0
}

// Predicts in which combinations of results of the unplayed fixtures
// the target team finishes at the rank or better.
//
// All 2^k outcomes of the k unplayed fixtures are enumerated, so the
// caller should limit k. The wins of the teams are counted from the
// finished fixtures.
//
// The settings may be nil for the defaults.
func PredictRank(
	ctx context.Context,
	entries []Entry,
	fixtures []Fixture,
	target string,
	rank int,
	settings *PredictSettings,
) (*Prediction, error) {
	if settings == nil {
		settings = NewPredictSettings()
	}
	logger := settings.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no teams", ErrUnknownTeam)
	}
	if settings.RoundBound < 0 {
		return nil, ErrInvalidRoundBound
	}
	roundBound := settings.RoundBound
	if roundBound == 0 {
		roundBound = DefaultRoundBound
	}

	teams := make([]string, 0, len(entries))
	index := make(map[string]int, len(entries))
	roundWins := make([]int, 0, len(entries))
	for i, e := range entries {
		if _, ok := index[e.Alias]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateTeam, e.Alias)
		}
		index[e.Alias] = i
		teams = append(teams, e.Alias)
		roundWins = append(roundWins, e.RoundWins)
	}

	targetIndex, ok := index[target]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTeam, target)
	}
	if rank < 1 || rank > len(entries) {
		return nil, fmt.Errorf("%w: %v of %v teams", ErrInvalidRank, rank, len(entries))
	}

	finished := make([]internal.GameResult, 0, len(fixtures))
	remaining := make([]internal.GameResult, 0, len(fixtures))
	remainingFixtures := make([]Fixture, 0, len(fixtures))
	seen := make(map[[3]int]struct{}, len(fixtures))
	for _, f := range fixtures {
		result, err := fixtureResult(f, index)
		if err != nil {
			return nil, err
		}
		key := [3]int{min(result.Team1, result.Team2), max(result.Team1, result.Team2), result.Seq}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %v vs. %v (%v) is listed twice", ErrInvalidFixture, f.Team1, f.Team2, f.Seq)
		}
		seen[key] = struct{}{}
		if result.Finished() {
			finished = append(finished, result)
		} else {
			remaining = append(remaining, result)
			remainingFixtures = append(remainingFixtures, f)
		}
	}

	season := internal.NewSeason(len(entries), finished)
	for i, e := range entries {
		if wins := season.FinishedWins(i); wins != e.Wins {
			logger.Warn(
				"team wins disagree with the finished fixtures",
				slog.String("team", e.Alias),
				slog.Int("entry", e.Wins),
				slog.Int("fixtures", wins),
			)
		}
	}

	predictor := &internal.Predictor{
		Season:    season,
		Remaining: remaining,
		Classifier: &internal.Classifier{
			Target:     targetIndex,
			Rank:       rank,
			RoundWins:  roundWins,
			RoundBound: roundBound,
		},
		Progress: settings.Progress,
		Logger:   logger.With(slog.String("target", target), slog.Int("rank", rank)),
	}

	result, err := predictor.Predict(ctx)
	if err != nil {
		return nil, err
	}

	prediction := &Prediction{
		Teams:          teams,
		Target:         target,
		Rank:           rank,
		Remaining:      remainingFixtures,
		Scenarios:      convertScenarios(result.Scenarios, teams),
		RoundScenarios: convertScenarios(result.RoundScenarios, teams),
		Reversed:       result.Reversed,
		Counts: PredictionCounts{
			Win:    result.Counts[internal.Win],
			Round:  result.Counts[internal.Round],
			Fail:   result.Counts[internal.Fail],
			Leaves: result.NumLeaves,
		},
	}
	return prediction, nil
}

func fixtureResult(f Fixture, index map[string]int) (internal.GameResult, error) {
	team1, ok1 := index[f.Team1]
	team2, ok2 := index[f.Team2]
	switch {
	case !ok1:
		return internal.GameResult{}, fmt.Errorf("%w: %v", ErrUnknownTeam, f.Team1)
	case !ok2:
		return internal.GameResult{}, fmt.Errorf("%w: %v", ErrUnknownTeam, f.Team2)
	case team1 == team2:
		return internal.GameResult{}, fmt.Errorf("%w: %v plays itself", ErrInvalidFixture, f.Team1)
	}

	winner := internal.NoWinner
	switch f.Winner {
	case "":
	case f.Team1:
		winner = team1
	case f.Team2:
		winner = team2
	default:
		return internal.GameResult{}, fmt.Errorf(
			"%w: winner %v of %v vs. %v",
			ErrInvalidFixture, f.Winner, f.Team1, f.Team2,
		)
	}

	return internal.NewGameResult(team1, team2, f.Seq, winner), nil
}

func convertScenarios(set internal.ScenarioSet, teams []string) []Scenario {
	sorted := set.Sorted()
	scenarios := make([]Scenario, 0, len(sorted))
	for _, s := range sorted {
		results := s.Results()
		outcomes := make([]Outcome, 0, len(results))
		for _, r := range results {
			outcome := Outcome{
				Team1:  teams[r.Team1],
				Team2:  teams[r.Team2],
				Seq:    r.Seq,
				Winner: teams[r.Winner],
			}
			outcomes = append(outcomes, outcome)
		}
		scenarios = append(scenarios, Scenario{Outcomes: outcomes})
	}
	return scenarios
}

// Returns the prediction snapshot of the group. The round wins of
// an entry are its round difference.
func (g *Group) Snapshot() ([]Entry, []Fixture, error) {
	standings, err := g.Standings()
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, 0, len(g.Teams))
	for _, t := range g.Teams {
		m := standings.Metrics[t]
		entries = append(entries, Entry{Alias: t, Wins: m.Wins, RoundWins: m.RoundDifference})
	}

	fixtures := make([]Fixture, 0, len(g.Matches))
	for _, m := range g.Matches {
		winner, err := m.GetWinner()
		if err != nil && !errors.Is(err, ErrNoScore) {
			// Nobody can win a match that both teams withdrew from
			continue
		}
		fixtures = append(fixtures, Fixture{Team1: m.Team1, Team2: m.Team2, Seq: m.Seq, Winner: winner})
	}

	return entries, fixtures, nil
}

// Predicts the rank of the target team from the current state
// of the group. See PredictRank.
func (g *Group) PredictRank(
	ctx context.Context,
	target string,
	rank int,
	settings *PredictSettings,
) (*Prediction, error) {
	if !slices.Contains(g.Teams, target) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTeam, target)
	}
	entries, fixtures, err := g.Snapshot()
	if err != nil {
		return nil, err
	}
	return PredictRank(ctx, entries, fixtures, target, rank, settings)
}
