package internal

import (
	"errors"
	"slices"
	"testing"
)

// Creates num qualified teams that rank in slice order
func QualifiedSlice(num int) []*Team {
	teams := TeamSlice(num)
	for i, team := range teams {
		setRecord(team, 3, 0, 100-i, 100-i)
	}
	return teams
}

// Decides every match of the current round. The home team wins
// unless its seed is in upsets.
func playBracketRound(t *testing.T, bracket *Bracket, upsets ...int) {
	round := bracket.CurrentRound()
	matches := round.AllMatches()
	scores := make([]Score, 0, len(matches))
	for _, m := range matches {
		if slices.Contains(upsets, m.Home.Seed) {
			scores = append(scores, NewScore(0, 1))
		} else {
			scores = append(scores, NewScore(2, 1))
		}
	}
	if err := bracket.RecordRound(scores); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func seedsOf(teams []*Team) []int {
	seeds := make([]int, 0, len(teams))
	for _, team := range teams {
		seeds = append(seeds, team.Seed)
	}
	return seeds
}

func pairingSeeds(round *BracketRound) [][2]int {
	pairings := make([][2]int, 0, len(round.Matches))
	for _, m := range round.Matches {
		pairings = append(pairings, [2]int{m.Home.Seed, m.Away.Seed})
	}
	return pairings
}

func TestBracketShapes(t *testing.T) {
	tests := []struct {
		qualifiers int
		name       string
		pairings   [][2]int
		waiting    []int
	}{
		{3, RoundSemifinal, [][2]int{{2, 3}}, []int{1}},
		{4, RoundSemifinals, [][2]int{{1, 4}, {2, 3}}, []int{}},
		{5, RoundWildcard, [][2]int{{4, 5}}, []int{1, 2, 3}},
		{6, RoundQuarterfinals, [][2]int{{4, 5}, {3, 6}}, []int{1, 2}},
		{7, RoundQuarterfinals, [][2]int{{4, 5}, {3, 6}, {2, 7}}, []int{1}},
		{8, RoundQuarterfinals, [][2]int{{1, 8}, {2, 7}, {3, 6}, {4, 5}}, []int{}},
		{12, RoundQuarterfinals, [][2]int{{1, 8}, {2, 7}, {3, 6}, {4, 5}}, []int{}},
	}

	for _, test := range tests {
		settings := DefaultSettings()
		teams := QualifiedSlice(test.qualifiers)

		bracket, err := NewBracket(teams, &settings, &idSource{})
		if err != nil {
			t.Fatalf("%d qualifiers: unexpected error: %v", test.qualifiers, err)
		}

		round := bracket.CurrentRound()
		if round.Name != test.name {
			t.Fatalf("%d qualifiers: expected %s, got %s", test.qualifiers, test.name, round.Name)
		}
		if !slices.Equal(pairingSeeds(round), test.pairings) {
			t.Fatalf("%d qualifiers: unexpected pairings %v", test.qualifiers, pairingSeeds(round))
		}
		if !slices.Equal(seedsOf(round.Waiting), test.waiting) {
			t.Fatalf("%d qualifiers: unexpected waiting seeds %v", test.qualifiers, seedsOf(round.Waiting))
		}
		for _, m := range round.Matches {
			if m.Score != nil || m.Winner != nil || m.Label == "" {
				t.Fatalf("%d qualifiers: match %v does not start empty", test.qualifiers, m)
			}
		}
		if bracket.State() != BracketInitialized {
			t.Fatal("a new bracket is not in the initialized state")
		}
	}
}

func TestBracketCap(t *testing.T) {
	settings := DefaultSettings()
	teams := QualifiedSlice(12)

	bracket, err := NewBracket(teams, &settings, &idSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bracket.Seeds) != 8 || !slices.Equal(bracket.Seeds, teams[:8]) {
		t.Fatal("the top 8 qualifiers were not seeded")
	}
	for _, dropped := range teams[8:] {
		if dropped.Seed != 0 || dropped.Status != Qualified {
			t.Fatal("a dropped qualifier lost its status or kept a seed")
		}
	}
}

func TestBracketTooFewQualifiers(t *testing.T) {
	settings := DefaultSettings()

	_, err := NewBracket(QualifiedSlice(2), &settings, &idSource{})
	if !errors.Is(err, ErrInvalidTeamCount) {
		t.Fatal("a bracket with 2 qualifiers did not error")
	}
}

// 8 qualifiers without upsets: quarterfinals, semifinals 1v4 and 2v3,
// then the final and the match for 3rd
func TestBracketEightQualifiers(t *testing.T) {
	settings := DefaultSettings()
	teams := QualifiedSlice(8)
	bracket, _ := NewBracket(teams, &settings, &idSource{})

	playBracketRound(t, bracket)
	semis, err := bracket.Advance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if semis.Name != RoundSemifinals || !slices.Equal(pairingSeeds(semis), [][2]int{{1, 4}, {2, 3}}) {
		t.Fatalf("unexpected semifinals %v", pairingSeeds(semis))
	}

	playBracketRound(t, bracket)
	finals, _ := bracket.Advance()
	if finals.Name != RoundFinals || finals.Consolation == nil {
		t.Fatal("the final round has no match for 3rd")
	}
	if !slices.Equal(pairingSeeds(finals), [][2]int{{1, 2}}) {
		t.Fatal("the semifinal winners do not meet in the final")
	}
	if finals.Consolation.Home.Seed != 3 || finals.Consolation.Away.Seed != 4 {
		t.Fatal("the semifinal losers do not meet in the match for 3rd")
	}

	playBracketRound(t, bracket)
	next, err := bracket.Advance()
	if next != nil || err != nil {
		t.Fatal("the bracket did not finish after the final")
	}
	if bracket.State() != BracketFinished {
		t.Fatal("the bracket is not in the finished state")
	}

	podium := bracket.Podium
	if podium.Champion != teams[0] || podium.RunnerUp != teams[1] || podium.Third != teams[2] {
		t.Fatal("the podium does not match the results")
	}

	_, err = bracket.Advance()
	if err != ErrWrongPhase {
		t.Fatal("a finished bracket advanced")
	}
}

// 6 qualifiers where seed 6 wins qf_b. The semifinals follow
// the bracket slots instead of a re-rank.
func TestBracketSixQualifierSlots(t *testing.T) {
	settings := DefaultSettings()
	bracket, _ := NewBracket(QualifiedSlice(6), &settings, &idSource{})

	playBracketRound(t, bracket, 3)
	semis, err := bracket.Advance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if semis.Name != RoundSemifinals || !slices.Equal(pairingSeeds(semis), [][2]int{{1, 4}, {2, 6}}) {
		t.Fatalf("the semifinals do not follow the slots: %v", pairingSeeds(semis))
	}
	if semis.Matches[0].Label != "semi1" || semis.Matches[1].Label != "semi2" {
		t.Fatal("the semifinals are labelled wrong")
	}

	qfB := bracket.Rounds[0].Matches[1]
	if bracket.NextMatch(qfB) != semis.Matches[1] {
		t.Fatal("the winner of qf_b does not play semi2")
	}

	playBracketRound(t, bracket)
	finals, _ := bracket.Advance()
	if finals.Name != RoundFinals || !slices.Equal(pairingSeeds(finals), [][2]int{{1, 2}}) {
		t.Fatal("the semifinal winners do not meet in the final")
	}
}

// 7 qualifiers where seed 7 wins qf_c and seed 6 wins qf_b
func TestBracketSevenQualifierSlots(t *testing.T) {
	settings := DefaultSettings()
	bracket, _ := NewBracket(QualifiedSlice(7), &settings, &idSource{})

	playBracketRound(t, bracket, 2, 3)
	semis, _ := bracket.Advance()

	if !slices.Equal(pairingSeeds(semis), [][2]int{{1, 4}, {7, 6}}) {
		t.Fatalf("the semifinals do not follow the slots: %v", pairingSeeds(semis))
	}

	playBracketRound(t, bracket, 7)
	finals, _ := bracket.Advance()
	if !slices.Equal(pairingSeeds(finals), [][2]int{{1, 6}}) || finals.Consolation == nil {
		t.Fatalf("the final is wrong: %v", pairingSeeds(finals))
	}
	if !slices.Equal(seedsOf([]*Team{finals.Consolation.Home, finals.Consolation.Away}), []int{4, 7}) {
		t.Fatal("the semifinal losers do not meet in the 3rd place match")
	}
}

// 5 qualifiers where the wildcard is won by seed 5
func TestBracketWildcard(t *testing.T) {
	settings := DefaultSettings()
	teams := QualifiedSlice(5)
	bracket, _ := NewBracket(teams, &settings, &idSource{})

	playBracketRound(t, bracket, 4)
	semis, _ := bracket.Advance()

	if semis.Name != RoundSemifinals || !slices.Equal(pairingSeeds(semis), [][2]int{{1, 5}, {2, 3}}) {
		t.Fatalf("the wildcard winner and the waiting teams were not re-ranked: %v", pairingSeeds(semis))
	}

	playBracketRound(t, bracket, 2)
	finals, _ := bracket.Advance()
	if !slices.Equal(pairingSeeds(finals), [][2]int{{1, 3}}) {
		t.Fatal("the semifinal winners do not meet in the final")
	}

	playBracketRound(t, bracket, 1)
	bracket.Advance()

	podium := bracket.Podium
	if podium.Champion != teams[2] || podium.RunnerUp != teams[0] || podium.Third != teams[1] {
		t.Fatal("the podium does not match the results")
	}
}

// 3 qualifiers: seed 1 waits for the winner of 2v3
func TestBracketThreeQualifiers(t *testing.T) {
	settings := DefaultSettings()
	teams := QualifiedSlice(3)
	bracket, _ := NewBracket(teams, &settings, &idSource{})

	playBracketRound(t, bracket, 2)
	final, _ := bracket.Advance()

	if final.Name != RoundGrandFinal || final.Consolation != nil {
		t.Fatal("a single semifinal produced a match for 3rd")
	}
	if !slices.Equal(pairingSeeds(final), [][2]int{{1, 3}}) {
		t.Fatal("the waiting top seed does not meet the semifinal winner")
	}

	playBracketRound(t, bracket)
	bracket.Advance()

	podium := bracket.Podium
	if podium.Champion != teams[0] || podium.RunnerUp != teams[2] || podium.Third != teams[1] {
		t.Fatal("the podium does not match the results")
	}
}

func TestBracketWithoutThirdPlace(t *testing.T) {
	settings := DefaultSettings()
	settings.ThirdPlaceMatch = false
	teams := QualifiedSlice(4)
	bracket, _ := NewBracket(teams, &settings, &idSource{})

	playBracketRound(t, bracket)
	final, _ := bracket.Advance()
	if final.Name != RoundGrandFinal || final.Consolation != nil {
		t.Fatal("a match for 3rd was scheduled although it is disabled")
	}

	playBracketRound(t, bracket)
	bracket.Advance()
	if bracket.Podium.Third != nil || bracket.Podium.RunnerUp != teams[1] {
		t.Fatal("the podium has an unplayed 3rd place")
	}
}

func TestBracketOlympicRound(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxBracketSize = 10
	teams := QualifiedSlice(10)
	bracket, _ := NewBracket(teams, &settings, &idSource{})

	first := bracket.CurrentRound()
	if first.Name != "Round of 10" {
		t.Fatalf("unexpected round name %s", first.Name)
	}
	expected := [][2]int{{1, 10}, {2, 9}, {3, 8}, {4, 7}, {5, 6}}
	if !slices.Equal(pairingSeeds(first), expected) {
		t.Fatalf("unexpected olympic pairings %v", pairingSeeds(first))
	}

	playBracketRound(t, bracket)
	second, _ := bracket.Advance()
	if second.Name != "Round of 5" || !slices.Equal(seedsOf(second.Waiting), []int{1}) {
		t.Fatal("the top seed of an odd pool does not wait")
	}
	if !slices.Equal(pairingSeeds(second), [][2]int{{2, 5}, {3, 4}}) {
		t.Fatalf("unexpected olympic pairings %v", pairingSeeds(second))
	}
}

func TestBracketTieRejected(t *testing.T) {
	settings := DefaultSettings()
	bracket, _ := NewBracket(QualifiedSlice(4), &settings, &idSource{})

	_, err := bracket.Advance()
	if err != ErrRoundNotComplete {
		t.Fatal("an unplayed round advanced")
	}

	err = bracket.RecordRound([]Score{NewScore(1, 0), NewScore(1, 1)})
	if !errors.Is(err, ErrUnresolvedTie) {
		t.Fatal("a level bracket match was accepted without penalties")
	}
	err = bracket.RecordRound([]Score{NewScore(1, 0), NewPenaltyScore(1, 1, 3, 3)})
	if !errors.Is(err, ErrUnresolvedTie) {
		t.Fatal("a level penalty shootout was accepted")
	}
	err = bracket.RecordRound([]Score{NewScore(1, 0)})
	if !errors.Is(err, ErrIncompleteInput) {
		t.Fatal("a missing score was accepted")
	}

	round := bracket.CurrentRound()
	if round.Completed || round.Matches[0].IsDecided() {
		t.Fatal("a rejected submission changed the round")
	}

	err = bracket.RecordRound([]Score{NewScore(1, 0), NewPenaltyScore(1, 1, 3, 4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if round.Matches[1].Winner.Seed != 3 {
		t.Fatal("the shootout winner did not win the match")
	}
}

func TestEliminationGraph(t *testing.T) {
	settings := DefaultSettings()
	bracket, _ := NewBracket(QualifiedSlice(8), &settings, &idSource{})
	quarters := bracket.CurrentRound()

	playBracketRound(t, bracket)
	semis, _ := bracket.Advance()
	playBracketRound(t, bracket)
	finals, _ := bracket.Advance()

	feeders, paths := bracket.Feeders(semis.Matches[0])
	expected := []*Match{quarters.Matches[0], quarters.Matches[3]}
	if !slices.Equal(feeders, expected) || !slices.Equal(paths, []string{PathWinner, PathWinner}) {
		t.Fatal("semifinal 1 is not fed by the winners of qf1 and qf4")
	}

	if bracket.NextMatch(quarters.Matches[1]) != semis.Matches[1] {
		t.Fatal("the winner of qf2 does not go to semifinal 2")
	}

	feeders, paths = bracket.Feeders(finals.Consolation)
	if !slices.Equal(feeders, semis.Matches) || !slices.Equal(paths, []string{PathLoser, PathLoser}) {
		t.Fatal("the match for 3rd is not fed by the semifinal losers")
	}

	if bracket.NextMatch(semis.Matches[0]) != finals.Matches[0] {
		t.Fatal("the winner path of a semifinal does not lead to the final")
	}

	depths := make(map[*Match]int)
	for m, depth := range bracket.EliminationGraph.BreadthSearchIter(quarters.Matches[0]) {
		depths[m] = depth
	}
	if depths[finals.Matches[0]] != 2 || depths[finals.Consolation] != 2 {
		t.Fatal("the final round is not two steps from the quarterfinals")
	}
}
