package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
)

func teamNames(n int) []string {
	teams := make([]string, 0, n)
	for i := range n {
		teams = append(teams, fmt.Sprintf("Team %v", i+1))
	}
	return teams
}

// Checks that every pairing is played once per pass
// and no team plays twice in one round
func checkSchedule(t *testing.T, group *Group) {
	t.Helper()

	numTeams := len(group.Teams)
	expectedMatches := numTeams * (numTeams - 1) / 2 * group.Passes
	if len(group.Matches) != expectedMatches {
		t.Fatalf("expected %v matches, got %v", expectedMatches, len(group.Matches))
	}

	for _, round := range group.Rounds {
		playing := make([]string, 0, numTeams)
		for _, m := range round.Matches {
			if slices.Contains(playing, m.Team1) || slices.Contains(playing, m.Team2) {
				t.Fatal("a team plays twice in one round")
			}
			playing = append(playing, m.Team1, m.Team2)
		}
	}

	for i, t1 := range group.Teams {
		for _, t2 := range group.Teams[i+1:] {
			for seq := range group.Passes {
				if _, err := group.Match(t1, t2, seq); err != nil {
					t.Fatalf("missing match %v vs. %v (%v)", t1, t2, seq)
				}
			}
		}
	}
}

func TestGroupSchedule(t *testing.T) {
	for numTeams := 2; numTeams <= 7; numTeams += 1 {
		for passes := 1; passes <= 2; passes += 1 {
			group, err := NewGroup("A", teamNames(numTeams), passes)
			if err != nil {
				t.Fatal(err)
			}
			checkSchedule(t, group)
		}
	}

	group, _ := NewGroup("A", teamNames(4), 1)
	if len(group.Rounds) != 3 {
		t.Fatal("four teams did not play three rounds")
	}

	group, _ = NewGroup("A", teamNames(5), 1)
	if len(group.Rounds) != 5 || len(group.Rounds[0].Matches) != 2 {
		t.Fatal("five teams did not play five rounds of two matches")
	}
}

func TestGroupSecondPassSwapsSides(t *testing.T) {
	group, _ := NewGroup("A", teamNames(4), 2)

	for _, m := range group.Matches {
		if m.Seq != 0 {
			continue
		}
		second, err := group.Match(m.Team1, m.Team2, 1)
		if err != nil {
			t.Fatal(err)
		}
		if second.Team1 != m.Team2 || second.Team2 != m.Team1 {
			t.Fatal("the second pass did not swap the sides")
		}
	}
}

func TestGroupErrors(t *testing.T) {
	_, err := NewGroup("A", teamNames(1), 1)
	if err != ErrTooFewTeams {
		t.Fatal("a group with one team did not error")
	}

	_, err = NewGroup("A", []string{"X", "Y", "X"}, 1)
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Fatal("a duplicate team did not error")
	}

	group, _ := NewGroup("A", []string{"X", "Y"}, 1)
	err = group.RecordResult("X", "Z", 0, NewScore(21, 10))
	if !errors.Is(err, ErrUnknownMatch) {
		t.Fatal("recording an unknown match did not error")
	}
	err = group.RecordResult("X", "Y", 1, NewScore(21, 10))
	if !errors.Is(err, ErrUnknownMatch) {
		t.Fatal("recording a match of a missing pass did not error")
	}
	err = group.RecordResult("X", "Y", 0, NewScore(21, 21))
	if err != ErrEqualScore {
		t.Fatal("recording an undecided score did not error")
	}
	err = group.RecordResult("X", "Y", 0, nil)
	if err != ErrNoScore {
		t.Fatal("recording no score did not error")
	}
	err = group.RecordWinner("X", "Y", 0, "Z")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("recording a foreign winner did not error")
	}
}

func TestGroupResults(t *testing.T) {
	group, _ := NewGroup("A", []string{"X", "Y", "Z"}, 1)

	match, _ := group.Match("X", "Y", 0)
	// Record the score from the perspective of the second team of the match
	other := match.Other(match.Team1)
	err := group.RecordResult(other, match.Team1, 0, NewScore(21, 10))
	if err != nil {
		t.Fatal(err)
	}
	winner, _ := match.GetWinner()
	if winner != other {
		t.Fatal("the score was not inverted for the match")
	}

	err = group.RecordWinner("Y", "Z", 0, "Z")
	if err != nil {
		t.Fatal(err)
	}

	if len(group.Finished()) != 2 || len(group.Remaining()) != 1 {
		t.Fatal("finished and remaining matches are wrong")
	}

	err = group.ClearResult("Z", "Y", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(group.Remaining()) != 2 || group.MatchesComplete() {
		t.Fatal("clearing the result did not make the match remaining")
	}
}

func TestAddTeam(t *testing.T) {
	group, _ := NewGroup("A", teamNames(3), 2)
	err := group.AddTeam("New")
	if err != nil {
		t.Fatal(err)
	}

	if len(group.MatchesOfTeam("New")) != 6 {
		t.Fatal("the new team did not get a match against every team per pass")
	}
	checkSchedule(t, group)

	err = group.AddTeam("New")
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Fatal("adding a team twice did not error")
	}
}

func TestWithdrawal(t *testing.T) {
	group, _ := NewGroup("A", []string{"X", "Y", "Z"}, 1)
	group.RecordResult("X", "Y", 0, NewScore(21, 10))

	withdrawn, err := group.WithdrawTeam("X")
	if err != nil {
		t.Fatal(err)
	}
	if len(withdrawn) != 1 || !withdrawn[0].Is("X", "Z", 0) {
		t.Fatal("the team was not withdrawn from its remaining match only")
	}
	winner, _ := withdrawn[0].GetWinner()
	if winner != "Z" {
		t.Fatal("the walkover did not go to the opponent")
	}

	standings, _ := group.Standings()
	if !standings.Metrics["X"].Withdrawn || standings.Metrics["Z"].Wins != 1 {
		t.Fatal("the walkover was not counted in the metrics")
	}

	reentered, err := group.ReenterTeam("X")
	if err != nil {
		t.Fatal(err)
	}
	if len(reentered) != 1 || withdrawn[0].IsWalkover() {
		t.Fatal("the team did not reenter its walkover match")
	}

	group.WithdrawTeam("X")
	group.RecordResult("X", "Z", 0, NewScore(21, 15))
	reentered, _ = group.ReenterTeam("X")
	if len(reentered) != 0 {
		t.Fatal("a scored result did not replace the walkover")
	}

	_, err = group.WithdrawTeam("W")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("withdrawing an unknown team did not error")
	}
}

func TestRemoveTeam(t *testing.T) {
	group, _ := NewGroup("A", []string{"A", "B", "C", "D"}, 1)
	record(t, group, "A", "B", 0, NewScore(21, 10))
	record(t, group, "C", "A", 0, NewScore(21, 10))
	record(t, group, "C", "D", 0, NewScore(21, 10))

	removed, err := group.RemoveTeam("C")
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 3 || slices.Contains(group.Teams, "C") {
		t.Fatal("the team and its matches were not removed")
	}
	checkSchedule(t, group)

	standings, _ := group.Standings()
	a := standings.Metrics["A"]
	if a.Wins != 1 || a.Losses != 0 || standings.RankOf("A") != 1 {
		t.Fatal("the result against the removed team still counts")
	}
	if _, ok := standings.Metrics["C"]; ok {
		t.Fatal("the removed team is still in the standings")
	}

	prediction, err := group.PredictRank(context.Background(), "A", 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if prediction.Counts.Leaves != 4 {
		t.Fatalf("the prediction ran over %v leaves instead of 4", prediction.Counts.Leaves)
	}
	_, err = group.PredictRank(context.Background(), "C", 1, nil)
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("the removed team could still be predicted")
	}
}

func TestRemoveTeamPrunesRounds(t *testing.T) {
	group, _ := NewGroup("A", []string{"A", "B", "C"}, 1)
	if _, err := group.RemoveTeam("C"); err != nil {
		t.Fatal(err)
	}
	if len(group.Rounds) != 1 || len(group.Matches) != 1 {
		t.Fatalf("the emptied rounds were not removed: %v rounds", len(group.Rounds))
	}

	_, err := group.RemoveTeam("B")
	if err != ErrTooFewTeams {
		t.Fatal("removing from a group of two teams did not error")
	}
	_, err = group.RemoveTeam("X")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("removing an unknown team did not error")
	}
}

func TestRenameTeam(t *testing.T) {
	group, _ := NewGroup("A", []string{"A", "B", "C"}, 1)
	if err := group.RecordWinner("A", "B", 0, "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := group.WithdrawTeam("C"); err != nil {
		t.Fatal(err)
	}

	if err := group.RenameTeam("A", "X"); err != nil {
		t.Fatal(err)
	}
	if err := group.RenameTeam("C", "Z"); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(group.Teams, []string{"X", "B", "Z"}) {
		t.Fatalf("the teams were not renamed: %v", group.Teams)
	}

	match, err := group.Match("X", "B", 0)
	if err != nil {
		t.Fatal(err)
	}
	if winner, _ := match.GetWinner(); winner != "X" {
		t.Fatal("the decided winner was not renamed")
	}
	match, err = group.Match("X", "Z", 0)
	if err != nil {
		t.Fatal(err)
	}
	if winner, _ := match.GetWinner(); winner != "X" {
		t.Fatal("the withdrawal was not renamed")
	}

	standings, _ := group.Standings()
	if standings.RankOf("X") != 1 || standings.Metrics["X"].Wins != 2 {
		t.Fatal("the renamed team lost its results")
	}

	if err := group.RenameTeam("A", "Y"); !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("renaming an unknown team did not error")
	}
	if err := group.RenameTeam("X", "B"); !errors.Is(err, ErrDuplicateTeam) {
		t.Fatal("renaming to a taken name did not error")
	}
	if err := group.RenameTeam("X", ""); !errors.Is(err, ErrUnknownTeam) {
		t.Fatal("renaming to an empty name did not error")
	}
}
