package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Progress segments of a prediction run
const (
	segmentExplore = iota
	segmentCompactScenarios
	segmentCompactRounds
)

var progressWeights = []int{20, 40, 40}

// The result of a prediction run
type Prediction struct {
	// The compacted scenarios in which the target team reaches the
	// target rank. When Reversed is true these are the scenarios
	// in which it fails instead.
	Scenarios ScenarioSet
	// The compacted scenarios that depend on the round-win tie break
	RoundScenarios ScenarioSet
	Reversed       bool

	// The uncompacted buckets of the enumeration
	Buckets map[Outcome]ScenarioSet
	// Number of leaves classified into each bucket
	Counts map[Outcome]int
	// Number of leaves of the outcome tree
	NumLeaves int
}

type Predictor struct {
	Season     *Season
	Remaining  []GameResult
	Classifier *Classifier

	// Receives the progress in percent. May be nil.
	Progress func(percent int)
	// May be nil
	Logger *slog.Logger
}

// Enumerates and classifies all scenarios and compacts the buckets
// that are reported.
//
// The context cancels the run. A cancelled run returns no prediction.
func (p *Predictor) Predict(ctx context.Context) (*Prediction, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	progress := NewProgress(p.Progress, progressWeights...)

	explorer := NewExplorer(p.Season, p.Remaining)
	numLeaves := explorer.NumLeaves()

	buckets := map[Outcome]ScenarioSet{
		Fail:  make(ScenarioSet),
		Win:   make(ScenarioSet),
		Round: make(ScenarioSet),
	}
	counts := map[Outcome]int{Fail: 0, Win: 0, Round: 0}

	visited, err := explorer.Explore(ctx, func(s *Scenario) {
		outcome := p.Classifier.Classify(s)
		counts[outcome] += 1
		buckets[outcome].Add(s)

		progress.Advance(segmentExplore, float64(counts[Fail]+counts[Win]+counts[Round])/float64(numLeaves))
	})
	if err != nil {
		return nil, fmt.Errorf("exploring scenarios: %w", err)
	}

	logger.Debug(
		"scenarios classified",
		slog.Int("remaining", len(p.Remaining)),
		slog.Int("leaves", visited),
		slog.Int("win", counts[Win]),
		slog.Int("round", counts[Round]),
		slog.Int("fail", counts[Fail]),
	)

	// Report the failures when they are fewer than the successes
	reversed := numLeaves-counts[Win]-counts[Round] < counts[Win]
	primary := buckets[Win]
	if reversed {
		primary = buckets[Fail]
	}

	maxPasses := float64(len(p.Remaining) + 1)

	var scenarios, roundScenarios ScenarioSet
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		scenarios, err = Compact(groupCtx, primary, func(pass int) {
			progress.Advance(segmentCompactScenarios, float64(pass)/maxPasses)
		})
		return err
	})
	group.Go(func() error {
		var err error
		roundScenarios, err = Compact(groupCtx, buckets[Round], func(pass int) {
			progress.Advance(segmentCompactRounds, float64(pass)/maxPasses)
		})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("compacting scenarios: %w", err)
	}

	logger.Debug(
		"scenarios compacted",
		slog.Bool("reversed", reversed),
		slog.Int("scenarios", len(scenarios)),
		slog.Int("roundScenarios", len(roundScenarios)),
	)

	progress.Complete()

	prediction := &Prediction{
		Scenarios:      scenarios,
		RoundScenarios: roundScenarios,
		Reversed:       reversed,
		Buckets:        buckets,
		Counts:         counts,
		NumLeaves:      numLeaves,
	}
	return prediction, nil
}
