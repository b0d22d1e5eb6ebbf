package groupfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/setscore"
)

const leaderGroup = `
name: A
teams: [Tigers, Lions, Bears]
scoring:
  maxPoints: 30
  extraRound: true
matches:
  - {team1: Tigers, team2: Lions, score: [[21, 21], [10, 15]]}
  - {team1: Lions, team2: Bears}
`

func TestDecodeGroup(t *testing.T) {
	doc, err := Decode(strings.NewReader(leaderGroup))
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)
	assert.Equal(t, []string{"Tigers", "Lions", "Bears"}, doc.Teams)
	assert.Len(t, doc.Matches, 2)

	group, err := doc.Group()
	require.NoError(t, err)
	assert.Equal(t, 1, group.Passes)
	assert.Len(t, group.Finished(), 1)
	assert.Len(t, group.Remaining(), 2)

	standings, err := group.Standings()
	require.NoError(t, err)
	assert.Equal(t, []string{"Tigers", "Lions", "Bears"}, standings.Ranks())
	assert.Equal(t, 2, standings.Metrics["Tigers"].RoundDifference)
}

func TestDecodeJSON(t *testing.T) {
	document := `{
  "name": "B",
  "passes": 2,
  "teams": ["X", "Y"],
  "matches": [
    {"team1": "X", "team2": "Y", "seq": 1, "winner": "Y"}
  ],
  "withdrawn": ["X"]
}`

	doc, err := Decode(strings.NewReader(document))
	require.NoError(t, err)

	group, err := doc.Group()
	require.NoError(t, err)

	first, err := group.Match("X", "Y", 0)
	require.NoError(t, err)
	assert.True(t, first.IsWalkover())

	second, err := group.Match("X", "Y", 1)
	require.NoError(t, err)
	assert.False(t, second.IsWalkover())
	winner, _ := second.GetWinner()
	assert.Equal(t, "Y", winner)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.yaml")
	require.NoError(t, os.WriteFile(path, []byte(leaderGroup), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtraRound(t *testing.T) {
	document := `
teams: [X, Y]
scoring: {maxPoints: 30, extraRound: true}
matches:
  - {team1: X, team2: Y, score: [[21, 10, 15, 7], [10, 21, 15, 7]], timeWinner: Y}
`
	doc, err := Decode(strings.NewReader(document))
	require.NoError(t, err)
	group, err := doc.Group()
	require.NoError(t, err)

	match, _ := group.Match("X", "Y", 0)
	winner, _ := match.GetWinner()
	assert.Equal(t, "Y", winner)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("teams: [X, Y]\ncolor: blue\n"))
	assert.Error(t, err, "unknown fields are rejected")

	tests := []struct {
		name     string
		document string
		err      error
	}{
		{"score and winner", `
teams: [X, Y]
matches: [{team1: X, team2: Y, score: [[21, 21], [0, 0]], winner: X}]`, ErrScoreAndWinner},
		{"one sided score", `
teams: [X, Y]
matches: [{team1: X, team2: Y, score: [[21, 21]]}]`, ErrInvalidScore},
		{"invalid rounds", `
teams: [X, Y]
matches: [{team1: X, team2: Y, score: [[21, 21, 21], [0, 0, 0]]}]`, setscore.ErrUnneededRounds},
		{"foreign time winner", `
teams: [X, Y]
scoring: {extraRound: true}
matches: [{team1: X, team2: Y, score: [[21, 10, 15, 7], [10, 21, 15, 7]], timeWinner: Z}]`, ErrInvalidScore},
		{"unknown match", `
teams: [X, Y]
matches: [{team1: X, team2: Z}]`, core.ErrUnknownMatch},
		{"unknown withdrawal", `
teams: [X, Y]
withdrawn: [Z]`, core.ErrUnknownTeam},
		{"too few teams", `
teams: [X]`, core.ErrTooFewTeams},
	}

	for _, test := range tests {
		doc, err := Decode(strings.NewReader(test.document))
		require.NoError(t, err, test.name)
		_, err = doc.Group()
		assert.ErrorIs(t, err, test.err, test.name)
	}
}
