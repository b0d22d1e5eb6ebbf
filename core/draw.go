package core

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"slices"
)

type SeedingMode int

const (
	// All teams are shuffled
	SeedRandom SeedingMode = iota
	// The given order of the teams is the seeding
	SeedSingle
	// The teams are shuffled inside of pots with one team per group.
	// The first pot holds the first numGroups teams and so on.
	SeedTiered
)

var ErrInvalidGroupCount = errors.New("the number of groups is less than one")

// Draws the teams into numGroups groups.
//
// The teams are seeded according to the seeding mode and then
// distributed in a "snaking" order so the best seeds are spread
// over all groups. Each group is scheduled with the given passes.
// The groups are named A, B, C...
func Draw(
	teams []string,
	numGroups, passes int,
	seedingMode SeedingMode,
	rngSeed int64,
) ([]*Group, error) {
	if numGroups < 1 {
		return nil, ErrInvalidGroupCount
	}
	if len(teams) < 2*numGroups {
		return nil, fmt.Errorf("%w: %v teams for %v groups", ErrTooFewTeams, len(teams), numGroups)
	}

	seeded := slices.Clone(teams)
	SeededShuffle(seeded, numGroups, seedingMode, rngSeed)

	teamGroups := groupTeams(seeded, numGroups)
	groups := make([]*Group, 0, numGroups)
	for i, groupTeams := range teamGroups {
		group, err := NewGroup(groupName(i), groupTeams, passes)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, nil
}

func groupName(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%v", i+1)
}

func SeededShuffle[S ~[]E, E any](slice S, potSize int, seedingMode SeedingMode, rngSeed int64) {
	if seedingMode == SeedSingle {
		return
	}

	rng := rand.New(rand.NewSource(rngSeed))
	switch seedingMode {
	case SeedRandom:
		shuffle(slice, rng)
	case SeedTiered:
		tieredShuffle(slice, potSize, rng)
	}
}

func tieredShuffle[S ~[]E, E any](slice S, potSize int, rng *rand.Rand) {
	if potSize < 1 {
		return
	}
	for start := 0; start < len(slice); start += potSize {
		end := min(len(slice), start+potSize)
		shuffle(slice[start:end], rng)
	}
}

func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	rng.Shuffle(
		len(slice),
		func(i, j int) { slice[i], slice[j] = slice[j], slice[i] },
	)
}

// Groups the given teams into numGroups groups.
// The teams are distributed among the groups in a "snaking"
// order going back and forth for seeding purposes.
func groupTeams(teams []string, numGroups int) [][]string {
	groups := make([][]string, 0, numGroups)
	maxGroupSize := len(teams) / numGroups
	if len(teams)%numGroups != 0 {
		maxGroupSize += 1
	}
	for range numGroups {
		groups = append(groups, make([]string, 0, maxGroupSize))
	}

	for len(teams) > 0 {
		snakeDirection := len(groups[0])%2 == 0
		sliceSize := min(len(teams), numGroups)
		currentTeams := teams[:sliceSize]
		teams = teams[sliceSize:]

		for i, team := range directionalSeq(currentTeams, snakeDirection) {
			// The higher index groups get the remaining teams
			// if not divisible by numGroups
			i += (numGroups - sliceSize)
			groups[i] = append(groups[i], team)
		}
	}

	return groups
}

// Returns an index-value-sequence that iterates the given slice normally
// when the direction bool is true, otherwise iterates in
// reverse order. The index is ascending in both cases.
func directionalSeq[V any](slice []V, direction bool) iter.Seq2[int, V] {
	l := len(slice)
	iterator := func(yield func(int, V) bool) {
		for i := range l {
			v := i
			if !direction {
				v = l - i - 1
			}
			if !yield(i, slice[v]) {
				return
			}
		}
	}

	return iterator
}
