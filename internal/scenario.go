package internal

import (
	"maps"
	"slices"
	"strings"
)

// The fixed part of a prediction run: the number of teams and
// the results of all finished matches.
// A Season is shared read-only by all scenarios of a run.
type Season struct {
	NumTeams int
	Finished []GameResult

	finishedWins []int
}

func NewSeason(numTeams int, finished []GameResult) *Season {
	finishedWins := make([]int, numTeams)
	for _, r := range finished {
		if r.Finished() {
			finishedWins[r.Winner] += 1
		}
	}

	season := &Season{
		NumTeams:     numTeams,
		Finished:     finished,
		finishedWins: finishedWins,
	}
	return season
}

// Number of wins the team collected in the finished matches
func (s *Season) FinishedWins(team int) int {
	return s.finishedWins[team]
}

// A Scenario is one hypothesized completion of a season.
//
// It holds one result per unfinished match in the canonical
// order of the remaining matches. After compaction a scenario
// can hold fewer results; the missing matches are "don't care".
//
// The win counts are derived and only valid after Update was called.
// Equality and the set key only consider the hypothesized results.
type Scenario struct {
	season  *Season
	results []GameResult
	wins    []int
}

func NewScenario(season *Season, results []GameResult) *Scenario {
	return &Scenario{season: season, results: results}
}

func (s *Scenario) Season() *Season {
	return s.season
}

// Returns a copy of the hypothesized results
func (s *Scenario) Results() []GameResult {
	return slices.Clone(s.results)
}

func (s *Scenario) Len() int {
	return len(s.results)
}

// Returns true when every outcome of the remaining matches
// is covered by this scenario
func (s *Scenario) Unconditional() bool {
	return len(s.results) == 0
}

// Recomputes the win counts of all teams from the finished
// and the hypothesized results
func (s *Scenario) Update() {
	if s.wins == nil {
		s.wins = make([]int, s.season.NumTeams)
	}
	copy(s.wins, s.season.finishedWins)
	for _, r := range s.results {
		if r.Finished() {
			s.wins[r.Winner] += 1
		}
	}
}

// Returns the win counts indexed by team.
// Only valid after Update.
func (s *Scenario) Wins() []int {
	return s.wins
}

func (s *Scenario) WinNum(team int) int {
	if s.wins == nil {
		return 0
	}
	return s.wins[team]
}

// Number of wins the team gets from the hypothesized results
func (s *Scenario) NewWinNum(team int) int {
	return s.WinNum(team) - s.season.FinishedWins(team)
}

// Number of losses the team gets from the hypothesized results
func (s *Scenario) NewLoseNum(team int) int {
	played := 0
	for _, r := range s.results {
		if r.Involves(team) {
			played += 1
		}
	}
	return played - s.NewWinNum(team)
}

func (s *Scenario) sameGames(other *Scenario) bool {
	if len(s.results) != len(other.results) {
		return false
	}
	for i := range s.results {
		if !s.results[i].SameGame(other.results[i]) {
			return false
		}
	}
	return true
}

// Returns the index of the only result that has a different
// winner in the other scenario.
// Returns -1 when the scenarios are about different matches
// or differ in zero or more than one result.
func (s *Scenario) DiffOne(other *Scenario) int {
	if !s.sameGames(other) {
		return -1
	}

	diff := -1
	for i := range s.results {
		if s.results[i].Winner == other.results[i].Winner {
			continue
		}
		if diff != -1 {
			return -1
		}
		diff = i
	}
	return diff
}

// Returns a new scenario without the result at index i
func (s *Scenario) Without(i int) *Scenario {
	results := make([]GameResult, 0, len(s.results)-1)
	results = append(results, s.results[:i]...)
	results = append(results, s.results[i+1:]...)
	return NewScenario(s.season, results)
}

// Returns a new scenario where the other team wins the match at index i
func (s *Scenario) Flipped(i int) *Scenario {
	results := slices.Clone(s.results)
	r := results[i]
	if r.Winner == r.Team1 {
		r.Winner = r.Team2
	} else {
		r.Winner = r.Team1
	}
	results[i] = r
	return NewScenario(s.season, results)
}

func (s *Scenario) Equal(other *Scenario) bool {
	return slices.Equal(s.results, other.results)
}

// Returns a string that is equal for two scenarios
// iff their hypothesized results are equal
func (s *Scenario) Key() string {
	var sb strings.Builder
	for i, r := range s.results {
		if i > 0 {
			sb.WriteRune(';')
		}
		r.writeKey(&sb)
	}
	return sb.String()
}

// The mutable scenario that the depth first exploration
// pushes and pops results on.
// It is never handed out; completed scenarios are copied out
// with snapshot.
type scenarioBuffer struct {
	season  *Season
	results []GameResult
}

func newScenarioBuffer(season *Season, capacity int) *scenarioBuffer {
	return &scenarioBuffer{
		season:  season,
		results: make([]GameResult, 0, capacity),
	}
}

func (b *scenarioBuffer) push(r GameResult) {
	b.results = append(b.results, r)
}

func (b *scenarioBuffer) pop() {
	b.results = b.results[:len(b.results)-1]
}

func (b *scenarioBuffer) depth() int {
	return len(b.results)
}

func (b *scenarioBuffer) snapshot() *Scenario {
	return NewScenario(b.season, slices.Clone(b.results))
}

// A set of scenarios keyed by Scenario.Key
type ScenarioSet map[string]*Scenario

func NewScenarioSet(scenarios ...*Scenario) ScenarioSet {
	set := make(ScenarioSet, len(scenarios))
	for _, s := range scenarios {
		set.Add(s)
	}
	return set
}

// Adds the scenario unless an equal one is already in the set
func (set ScenarioSet) Add(s *Scenario) {
	key := s.Key()
	if _, ok := set[key]; ok {
		return
	}
	set[key] = s
}

func (set ScenarioSet) Contains(s *Scenario) bool {
	_, ok := set[s.Key()]
	return ok
}

// Returns the scenarios ordered by their keys
func (set ScenarioSet) Sorted() []*Scenario {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	scenarios := make([]*Scenario, 0, len(keys))
	for _, k := range keys {
		scenarios = append(scenarios, set[k])
	}
	return scenarios
}

func (set ScenarioSet) Clone() ScenarioSet {
	return maps.Clone(set)
}
