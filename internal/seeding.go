package internal

import "math/rand"

func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	rng.Shuffle(
		len(slice),
		func(i, j int) { slice[i], slice[j] = slice[j], slice[i] },
	)
}

// Picks one element uniformly at random
func pickRandom[S ~[]E, E any](slice S, rng *rand.Rand) E {
	return slice[rng.Intn(len(slice))]
}

// Assigns the seeds 1..n in the order of the given ranking
// and clears the seed of everyone else.
func assignSeeds(ranked []*Team, unseeded []*Team) {
	for _, t := range unseeded {
		t.Seed = 0
	}
	for i, t := range ranked {
		t.Seed = i + 1
	}
}

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
