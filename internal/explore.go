package internal

import "context"

// How many leaves are visited between two cancellation checks
const cancelCheckInterval = 256

// The Explorer walks the binary outcome tree of the remaining
// matches depth first. Every leaf is a completed scenario.
type Explorer struct {
	season    *Season
	remaining []GameResult
	buffer    *scenarioBuffer

	visit   func(s *Scenario)
	visited int
	ctx     context.Context
}

func NewExplorer(season *Season, remaining []GameResult) *Explorer {
	explorer := &Explorer{
		season:    season,
		remaining: remaining,
		buffer:    newScenarioBuffer(season, len(remaining)),
	}
	return explorer
}

// Number of leaves of the outcome tree
func (e *Explorer) NumLeaves() int {
	return 1 << len(e.remaining)
}

// Visits all leaves and passes a copy of each completed scenario
// to visit. The first team of a match wins in the first branch.
//
// Returns the number of visited leaves or the context error
// when the exploration was cancelled.
func (e *Explorer) Explore(ctx context.Context, visit func(s *Scenario)) (int, error) {
	e.ctx = ctx
	e.visit = visit
	e.visited = 0

	err := e.explore()
	if err != nil {
		return e.visited, err
	}
	return e.visited, nil
}

func (e *Explorer) explore() error {
	depth := e.buffer.depth()
	if depth == len(e.remaining) {
		return e.leaf()
	}

	match := e.remaining[depth]
	for _, winner := range [2]int{match.Team1, match.Team2} {
		e.buffer.push(NewGameResult(match.Team1, match.Team2, match.Seq, winner))
		err := e.explore()
		e.buffer.pop()
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *Explorer) leaf() error {
	if e.visited%cancelCheckInterval == 0 {
		if err := e.ctx.Err(); err != nil {
			return err
		}
	}
	e.visit(e.buffer.snapshot())
	e.visited += 1
	return nil
}
