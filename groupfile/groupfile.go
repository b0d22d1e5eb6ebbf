// Package groupfile reads group documents.
//
// A group document lists the teams of one group and the results of its
// matches. It is YAML, so JSON documents are accepted as well.
//
//	name: A
//	passes: 1
//	teams: [Tigers, Lions, Bears]
//	scoring:
//	  maxPoints: 30
//	  extraRound: true
//	matches:
//	  - {team1: Tigers, team2: Lions, score: [[21, 21], [10, 15]]}
//	  - {team1: Lions, team2: Bears, winner: Bears}
//	withdrawn: []
package groupfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/setscore"
)

const defaultMaxPoints = 99

var (
	ErrInvalidScore   = errors.New("invalid score")
	ErrScoreAndWinner = errors.New("a match has both a score and a winner")
)

type Scoring struct {
	MaxPoints  int  `yaml:"maxPoints" json:"maxPoints"`
	ExtraRound bool `yaml:"extraRound" json:"extraRound"`
}

type Match struct {
	Team1 string `yaml:"team1" json:"team1"`
	Team2 string `yaml:"team2" json:"team2"`
	Seq   int    `yaml:"seq" json:"seq"`

	// The points of team1 and team2 per round
	Score [][]int `yaml:"score,flow,omitempty" json:"score,omitempty"`
	// Decides an extra round with equal points
	TimeWinner string `yaml:"timeWinner,omitempty" json:"timeWinner,omitempty"`

	// The winner of a match without a score
	Winner string `yaml:"winner,omitempty" json:"winner,omitempty"`
}

func (m *Match) hasScore() bool {
	return len(m.Score) > 0
}

type Document struct {
	Name    string   `yaml:"name" json:"name"`
	Passes  int      `yaml:"passes" json:"passes"`
	Teams   []string `yaml:"teams" json:"teams"`
	Scoring Scoring  `yaml:"scoring" json:"scoring"`
	Matches []Match  `yaml:"matches" json:"matches"`

	// Teams that withdrew from the group
	Withdrawn []string `yaml:"withdrawn" json:"withdrawn"`
}

// Reads a group document from a file
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return doc, nil
}

// Reads a group document. Unknown fields are an error.
func Decode(r io.Reader) (*Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	doc := &Document{}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding group document: %w", err)
	}
	return doc, nil
}

func (d *Document) scoreSettings() (setscore.ScoreSettings, error) {
	maxPoints := d.Scoring.MaxPoints
	if maxPoints == 0 {
		maxPoints = defaultMaxPoints
	}
	return setscore.NewScoreSettings(maxPoints, d.Scoring.ExtraRound)
}

// Creates the group with all results of the document.
// Results are recorded before the withdrawals so the walkovers
// only replace unplayed matches.
func (d *Document) Group() (*core.Group, error) {
	settings, err := d.scoreSettings()
	if err != nil {
		return nil, err
	}

	group, err := core.NewGroup(d.Name, d.Teams, d.Passes)
	if err != nil {
		return nil, err
	}

	for _, m := range d.Matches {
		if err := recordMatch(group, m, settings); err != nil {
			return nil, err
		}
	}

	for _, team := range d.Withdrawn {
		if _, err := group.WithdrawTeam(team); err != nil {
			return nil, err
		}
	}

	return group, nil
}

func recordMatch(group *core.Group, m Match, settings setscore.ScoreSettings) error {
	switch {
	case m.hasScore() && m.Winner != "":
		return fmt.Errorf("%w: %v vs. %v", ErrScoreAndWinner, m.Team1, m.Team2)
	case m.Winner != "":
		return group.RecordWinner(m.Team1, m.Team2, m.Seq, m.Winner)
	case !m.hasScore():
		// Scheduled but unplayed
		_, err := group.Match(m.Team1, m.Team2, m.Seq)
		return err
	}

	if len(m.Score) != 2 {
		return fmt.Errorf("%w: %v vs. %v needs the points of both teams", ErrInvalidScore, m.Team1, m.Team2)
	}

	timeWinner := setscore.NoTimeWinner
	switch m.TimeWinner {
	case "":
	case m.Team1:
		timeWinner = 0
	case m.Team2:
		timeWinner = 1
	default:
		return fmt.Errorf("%w: time winner %v did not play %v vs. %v", ErrInvalidScore, m.TimeWinner, m.Team1, m.Team2)
	}

	score, err := setscore.NewScore(m.Score[0], m.Score[1], timeWinner, settings)
	if err != nil {
		return fmt.Errorf("%w: %v vs. %v: %w", ErrInvalidScore, m.Team1, m.Team2, err)
	}

	return group.RecordResult(m.Team1, m.Team2, m.Seq, score)
}
