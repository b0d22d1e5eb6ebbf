package core

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestGroupSeeding(t *testing.T) {
	teams := teamNames(12)
	groups := groupTeams(teams, 4)

	eq1 := groups[0][0] == teams[0]
	eq2 := groups[1][0] == teams[1]
	eq3 := groups[2][0] == teams[2]
	eq4 := groups[3][0] == teams[3]
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("The first four seeds did not get put into the first slots of the four groups.")
	}

	eq1 = groups[0][1] == teams[7]
	eq2 = groups[1][1] == teams[6]
	eq3 = groups[2][1] == teams[5]
	eq4 = groups[3][1] == teams[4]
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("The second four seeds did not get put into the second slots of the four groups in reverse.")
	}

	eq1 = groups[0][2] == teams[8]
	eq2 = groups[1][2] == teams[9]
	eq3 = groups[2][2] == teams[10]
	eq4 = groups[3][2] == teams[11]
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("The third four seeds did not get put into the third slots of the four groups.")
	}

	teams = teamNames(6)
	groups = groupTeams(teams, 4)

	eq1 = len(groups[0]) == 1
	eq2 = len(groups[1]) == 1
	eq3 = len(groups[2]) == 2
	eq4 = len(groups[3]) == 2
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("The remaining teams were not put into the higher index groups")
	}

	eq1 = groups[2][1] == teams[5]
	eq2 = groups[3][1] == teams[4]
	if !eq1 || !eq2 {
		t.Fatal("The two remaining teams did not go into the groups in reverse order")
	}
}

func TestDraw(t *testing.T) {
	teams := teamNames(8)

	groups, err := Draw(teams, 2, 1, SeedSingle, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 || groups[0].Name != "A" || groups[1].Name != "B" {
		t.Fatal("the groups were not named in order")
	}
	expected := []string{teams[0], teams[3], teams[4], teams[7]}
	if !reflect.DeepEqual(groups[0].Teams, expected) {
		t.Fatalf("the single seeding did not snake the teams: %v", groups[0].Teams)
	}
	for _, g := range groups {
		checkSchedule(t, g)
	}

	_, err = Draw(teams, 0, 1, SeedSingle, 0)
	if err != ErrInvalidGroupCount {
		t.Fatal("zero groups did not error")
	}
	_, err = Draw(teams, 5, 1, SeedSingle, 0)
	if !errors.Is(err, ErrTooFewTeams) {
		t.Fatal("groups with less than two teams did not error")
	}
}

func TestDrawTieredKeepsPots(t *testing.T) {
	teams := teamNames(12)
	groups, err := Draw(teams, 4, 1, SeedTiered, 42)
	if err != nil {
		t.Fatal(err)
	}

	for _, g := range groups {
		for pot := range 3 {
			potTeams := teams[pot*4 : pot*4+4]
			if !slices.Contains(potTeams, g.Teams[pot]) {
				t.Fatalf("group %v did not get one team of pot %v", g.Name, pot+1)
			}
		}
	}
}

func TestDrawIsSeeded(t *testing.T) {
	teams := teamNames(16)
	first, _ := Draw(teams, 4, 1, SeedRandom, 7)
	second, _ := Draw(teams, 4, 1, SeedRandom, 7)

	for i := range first {
		if !reflect.DeepEqual(first[i].Teams, second[i].Teams) {
			t.Fatal("the same rng seed did not yield the same draw")
		}
	}

	if !reflect.DeepEqual(teams, teamNames(16)) {
		t.Fatal("the draw shuffled the given slice")
	}
}
