package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/internal/config"
)

const group = `
name: A
teams: [A, B, C]
matches:
  - {team1: A, team2: B, score: [[21, 21], [10, 10]]}
`

func writeGroup(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "group.yaml")
	require.NoError(t, os.WriteFile(path, []byte(group), 0o644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := &config.Config{MaxRemaining: 16}

	err := run(context.Background(), cfg, discardLogger(), out, writeGroup(t), "A", 1)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Group A")
	// The outcome order follows the schedule
	assert.Contains(t, out.String(), "A finishes at rank 1 unless:\n")
	assert.Contains(t, out.String(), "C beats B")
	assert.Contains(t, out.String(), "The round difference decides if:\n")
	assert.Contains(t, out.String(), "B beats C")
	assert.Contains(t, out.String(), "(4 scenarios: 2 reached, 1 decided by rounds, 1 missed)")
}

func TestRunStandingsOnly(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := &config.Config{MaxRemaining: 0}

	err := run(context.Background(), cfg, discardLogger(), out, writeGroup(t), "", 1)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Team")
	assert.NotContains(t, out.String(), "finishes")
}

func TestRunErrors(t *testing.T) {
	cfg := &config.Config{MaxRemaining: 1}

	err := run(context.Background(), cfg, discardLogger(), io.Discard, writeGroup(t), "A", 1)
	assert.ErrorIs(t, err, config.ErrTooManyRemaining)

	cfg.MaxRemaining = 16
	err = run(context.Background(), cfg, discardLogger(), io.Discard, writeGroup(t), "X", 1)
	assert.ErrorIs(t, err, core.ErrUnknownTeam)

	err = run(context.Background(), cfg, discardLogger(), io.Discard, filepath.Join(t.TempDir(), "missing.yaml"), "A", 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrintPrediction(t *testing.T) {
	tests := []struct {
		name       string
		prediction *core.Prediction
		expected   string
	}{
		{
			"guaranteed",
			&core.Prediction{Target: "A", Rank: 2, Reversed: true},
			"A finishes at rank 2 or better in every scenario.\n",
		},
		{
			"impossible",
			&core.Prediction{Target: "A", Rank: 1},
			"There is no way that A finishes at rank 1.\n",
		},
		{
			"only if",
			&core.Prediction{
				Target: "B",
				Rank:   1,
				Scenarios: []core.Scenario{
					{Outcomes: []core.Outcome{{Team1: "A", Team2: "B", Seq: 1, Winner: "B"}}},
				},
				Counts: core.PredictionCounts{Win: 1, Fail: 1, Leaves: 2},
			},
			"B finishes at rank 1 only if:\n" +
				"  - B beats A (meeting 2)\n" +
				"(2 scenarios: 1 reached, 0 decided by rounds, 1 missed)\n",
		},
		{
			"unconditional round scenario",
			&core.Prediction{
				Target:         "A",
				Rank:           1,
				RoundScenarios: []core.Scenario{{}},
				Counts:         core.PredictionCounts{Round: 1, Leaves: 1},
			},
			"A finishes at rank 1 only if it wins on the round difference when:\n" +
				"  - unconditional\n" +
				"(1 scenarios: 0 reached, 1 decided by rounds, 0 missed)\n",
		},
		{
			"missed only on rounds",
			&core.Prediction{
				Target:   "A",
				Rank:     2,
				Reversed: true,
				RoundScenarios: []core.Scenario{
					{Outcomes: []core.Outcome{{Team1: "A", Team2: "B", Winner: "B"}}},
				},
				Counts: core.PredictionCounts{Win: 1, Round: 1, Leaves: 2},
			},
			"A finishes at rank 2 or better unless it loses on the round difference when:\n" +
				"  - B beats A\n" +
				"(2 scenarios: 1 reached, 1 decided by rounds, 0 missed)\n",
		},
	}

	for _, test := range tests {
		out := &bytes.Buffer{}
		require.NoError(t, printPrediction(out, test.prediction), test.name)
		assert.Equal(t, test.expected, out.String(), test.name)
	}
}
