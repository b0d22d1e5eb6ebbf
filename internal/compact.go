package internal

import "context"

// Minimizes a set of scenarios of one classification.
//
// Each pass merges every pair of scenarios that differ in exactly
// one winner into a scenario without that match. Merged pairs are
// replaced by their merge, and the merges are the input of the next
// pass. The compaction ends with the first pass that merges nothing.
//
// The returned set covers exactly the same completed scenarios as
// the given one. onPass is called after every pass with its number
// (starting at 1) and may be nil.
func Compact(ctx context.Context, scenarios ScenarioSet, onPass func(pass int)) (ScenarioSet, error) {
	compacted := scenarios.Clone()
	current := scenarios.Sorted()

	for pass := 1; len(current) > 0; pass++ {
		mergeGraph := NewMergeGraph(current)
		if err := mergeGraph.Connect(ctx); err != nil {
			return nil, err
		}

		consumed, err := mergeGraph.Consumed()
		if err != nil {
			return nil, err
		}
		merged, err := mergeGraph.Merged()
		if err != nil {
			return nil, err
		}

		for _, key := range consumed {
			delete(compacted, key)
		}
		mergedSet := NewScenarioSet(merged...)
		for _, s := range mergedSet {
			compacted.Add(s)
		}

		if onPass != nil {
			onPass(pass)
		}

		current = mergedSet.Sorted()
	}

	return compacted, nil
}

// Returns the set of completed scenarios that the given scenarios
// cover when every missing match is expanded to both winners.
// The remaining matches define the completed scenarios.
func Expand(scenarios ScenarioSet, remaining []GameResult) ScenarioSet {
	expanded := make(ScenarioSet)
	for _, s := range scenarios {
		expandInto(expanded, s, remaining)
	}
	return expanded
}

func expandInto(expanded ScenarioSet, s *Scenario, remaining []GameResult) {
	results := make([]GameResult, 0, len(remaining))

	var expand func(depth, fixed int)
	expand = func(depth, fixed int) {
		if depth == len(remaining) {
			expanded.Add(NewScenario(s.season, append([]GameResult(nil), results...)))
			return
		}

		match := remaining[depth]
		if fixed < len(s.results) && s.results[fixed].SameGame(match) {
			results = append(results, s.results[fixed])
			expand(depth+1, fixed+1)
			results = results[:len(results)-1]
			return
		}

		for _, winner := range [2]int{match.Team1, match.Team2} {
			results = append(results, NewGameResult(match.Team1, match.Team2, match.Seq, winner))
			expand(depth+1, fixed)
			results = results[:len(results)-1]
		}
	}
	expand(0, 0)
}
