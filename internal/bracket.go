package internal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

var ErrRoundNotComplete = errors.New("the bracket round is not complete")

const (
	RoundSemifinal     = "Semifinal"
	RoundSemifinals    = "Semifinals"
	RoundWildcard      = "Wildcard"
	RoundQuarterfinals = "Quarterfinals"
	RoundGrandFinal    = "Grand Final"
	RoundFinals        = "Finals"
)

// BracketState is the progress of the elimination stage
type BracketState int

const (
	BracketInitialized BracketState = iota
	BracketRoundInProgress
	BracketRoundCompleted
	BracketFinished
)

func (s BracketState) String() string {
	switch s {
	case BracketInitialized:
		return "Initialized"
	case BracketRoundInProgress:
		return "RoundInProgress"
	case BracketRoundCompleted:
		return "RoundCompleted"
	case BracketFinished:
		return "Finished"
	}
	return fmt.Sprintf("BracketState(%d)", int(s))
}

// A BracketRound is a round of elimination matches. Teams
// that are Waiting skip this round and enter the next one.
type BracketRound struct {
	Name    string
	Matches []*Match
	Waiting []*Team

	// The 3rd place match between the semifinal losers.
	// Only present in the Finals round.
	Consolation *Match

	Completed bool
}

// Returns the matches in the order that results are submitted,
// the consolation match comes last
func (r *BracketRound) AllMatches() []*Match {
	matches := slices.Clone(r.Matches)
	if r.Consolation != nil {
		matches = append(matches, r.Consolation)
	}
	return matches
}

// The winners of the main matches in match order
func (r *BracketRound) Winners() []*Team {
	winners := make([]*Team, 0, len(r.Matches))
	for _, m := range r.Matches {
		if m.Winner != nil {
			winners = append(winners, m.Winner)
		}
	}
	return winners
}

// The losers of the main matches in match order
func (r *BracketRound) Losers() []*Team {
	losers := make([]*Team, 0, len(r.Matches))
	for _, m := range r.Matches {
		if loser := m.Loser(); loser != nil {
			losers = append(losers, loser)
		}
	}
	return losers
}

// The final placements of the tournament.
// RunnerUp and Third are nil when they were not played out.
type Podium struct {
	Champion *Team
	RunnerUp *Team
	Third    *Team
}

type seedPairing struct {
	label string
	// 1-based seeds
	home, away int
}

// A place in the next round, either a seed or the winner
// of the labelled match
type slot struct {
	seed     int
	winnerOf string
}

type slotPairing struct {
	label      string
	home, away slot
}

type bracketShape struct {
	name     string
	pairings []seedPairing
	waiting  []int

	// The semifinals by slot. Without them the pool of
	// the next round is re-ranked by seed.
	semifinals []slotPairing
}

// The first bracket round by number of entrants. Seeds that are not
// paired wait for the winners so the next round has 2 or 4 teams.
var bracketShapes = map[int]bracketShape{
	3: {
		name:     RoundSemifinal,
		pairings: []seedPairing{{"semi1", 2, 3}},
		waiting:  []int{1},
	},
	4: {
		name:     RoundSemifinals,
		pairings: []seedPairing{{"semi1", 1, 4}, {"semi2", 2, 3}},
	},
	5: {
		name:     RoundWildcard,
		pairings: []seedPairing{{"wild1", 4, 5}},
		waiting:  []int{1, 2, 3},
	},
	6: {
		name:     RoundQuarterfinals,
		pairings: []seedPairing{{"qf_a", 4, 5}, {"qf_b", 3, 6}},
		waiting:  []int{1, 2},
		semifinals: []slotPairing{
			{"semi1", slot{seed: 1}, slot{winnerOf: "qf_a"}},
			{"semi2", slot{seed: 2}, slot{winnerOf: "qf_b"}},
		},
	},
	7: {
		name:     RoundQuarterfinals,
		pairings: []seedPairing{{"qf_a", 4, 5}, {"qf_b", 3, 6}, {"qf_c", 2, 7}},
		waiting:  []int{1},
		semifinals: []slotPairing{
			{"semi1", slot{seed: 1}, slot{winnerOf: "qf_a"}},
			{"semi2", slot{winnerOf: "qf_c"}, slot{winnerOf: "qf_b"}},
		},
	},
	8: {
		name:     RoundQuarterfinals,
		pairings: []seedPairing{{"qf1", 1, 8}, {"qf2", 2, 7}, {"qf3", 3, 6}, {"qf4", 4, 5}},
	},
}

// The Bracket is the elimination stage. It is an append-only
// list of rounds that ends with a Podium.
type Bracket struct {
	Rounds []*BracketRound

	// The teams in bracket order, index i has seed i+1
	Seeds []*Team

	Podium *Podium

	EliminationGraph *EliminationGraph

	// Slot pairings of the round after the first one, if any
	semifinals []slotPairing

	state    BracketState
	settings *Settings
	ids      *idSource
}

func (b *Bracket) State() BracketState {
	return b.state
}

func (b *Bracket) CurrentRound() *BracketRound {
	if len(b.Rounds) == 0 {
		return nil
	}
	return b.Rounds[len(b.Rounds)-1]
}

// Returns all bracket matches in the order they were scheduled
func (b *Bracket) Matches() []*Match {
	matches := make([]*Match, 0, 2*len(b.Rounds))
	for _, r := range b.Rounds {
		matches = append(matches, r.AllMatches()...)
	}
	return matches
}

// Returns the matches whose winners (or losers) play in the given match.
// The paths are PathWinner or PathLoser for each returned match.
func (b *Bracket) Feeders(match *Match) ([]*Match, []string) {
	return b.EliminationGraph.GetDependencies(match)
}

// Returns the match that the winner of the given match plays next
// or nil when there is none (yet).
func (b *Bracket) NextMatch(match *Match) *Match {
	dependants, paths := b.EliminationGraph.GetDependants(match)
	for i, m := range dependants {
		if paths[i] == PathWinner {
			return m
		}
	}
	return nil
}

// Records the results of the current round. All scores are
// checked before any match is decided so a rejected submission
// leaves the round untouched.
func (b *Bracket) RecordRound(scores []Score) error {
	round := b.CurrentRound()
	inProgress := b.state == BracketInitialized || b.state == BracketRoundInProgress
	if !inProgress || round == nil {
		return ErrWrongPhase
	}

	matches := round.AllMatches()
	if err := checkScores(matches, scores); err != nil {
		return err
	}

	if err := decideMatches(matches, scores); err != nil {
		return err
	}
	round.Completed = true
	b.state = BracketRoundCompleted

	b.settings.logger().WithFields(logrus.Fields{
		"round":   round.Name,
		"winners": teamNames(round.Winners()),
	}).Info("bracket round completed")

	return nil
}

// Schedules the next round from the completed current round.
//
// The waiting teams and the winners form the pool which is ranked
// by seed. Two teams play the final, four teams the semifinals and
// other pool sizes are paired first against last. A pool of one
// team ends the bracket with that team as the champion.
//
// Quarterfinals of 6 or 7 entrants lead into semifinals by
// bracket slot so an upset does not reshuffle the other half.
//
// Returns nil when the bracket is finished.
func (b *Bracket) Advance() (*BracketRound, error) {
	round := b.CurrentRound()
	switch {
	case b.state == BracketFinished:
		return nil, ErrWrongPhase
	case b.state != BracketRoundCompleted:
		return nil, ErrRoundNotComplete
	}

	pool := slices.Clone(round.Waiting)
	pool = append(pool, round.Winners()...)
	ranking := NewSeedRanking(pool)

	var next *BracketRound
	switch {
	case len(b.Rounds) == 1 && b.semifinals != nil:
		next = b.createSlottedRound(round)
	case len(pool) == 1:
		b.finish(ranking.At(0))
		return nil, nil
	case len(pool) == 2:
		next = b.createFinalRound(ranking, round)
	case len(pool) == 4:
		next = &BracketRound{
			Name: RoundSemifinals,
			Matches: []*Match{
				b.newMatch("semi1", ranking.At(0), ranking.At(3)),
				b.newMatch("semi2", ranking.At(1), ranking.At(2)),
			},
		}
	default:
		next = b.createOlympicRound(ranking)
	}

	b.linkRounds(round, next)
	b.Rounds = append(b.Rounds, next)
	b.state = BracketRoundInProgress

	b.settings.logger().WithFields(logrus.Fields{
		"round":   next.Name,
		"matches": len(next.AllMatches()),
	}).Info("bracket round scheduled")

	return next, nil
}

// Pairs the semifinals by the slots of the first round
func (b *Bracket) createSlottedRound(previous *BracketRound) *BracketRound {
	resolve := func(s slot) *Team {
		if s.winnerOf == "" {
			return b.Seeds[s.seed-1]
		}
		i := slices.IndexFunc(previous.Matches, func(m *Match) bool { return m.Label == s.winnerOf })
		return previous.Matches[i].Winner
	}

	round := &BracketRound{
		Name:    RoundSemifinals,
		Matches: make([]*Match, 0, len(b.semifinals)),
	}
	for _, p := range b.semifinals {
		round.Matches = append(round.Matches, b.newMatch(p.label, resolve(p.home), resolve(p.away)))
	}
	return round
}

func (b *Bracket) createFinalRound(ranking Ranking, previous *BracketRound) *BracketRound {
	final := b.newMatch("final", ranking.At(0), ranking.At(1))
	round := &BracketRound{
		Name:    RoundGrandFinal,
		Matches: []*Match{final},
	}

	semiLosers := NewSeedRanking(previous.Losers())
	if b.settings.ThirdPlaceMatch && len(semiLosers.GetRanks()) == 2 {
		round.Name = RoundFinals
		round.Consolation = b.newMatch("third", semiLosers.At(0), semiLosers.At(1))
	}

	return round
}

// Pairs the ranked pool first against last. With an odd pool
// the top seed waits for the next round.
func (b *Bracket) createOlympicRound(ranking Ranking) *BracketRound {
	ranks := ranking.GetRanks()
	round := &BracketRound{
		Name:    fmt.Sprintf("Round of %d", len(ranks)),
		Matches: make([]*Match, 0, len(ranks)/2),
	}

	if len(ranks)%2 != 0 {
		round.Waiting = []*Team{ranks[0]}
		ranks = ranks[1:]
	}

	numRound := len(b.Rounds) + 1
	for i := range len(ranks) / 2 {
		label := fmt.Sprintf("e%d_m%d", numRound, i+1)
		round.Matches = append(round.Matches, b.newMatch(label, ranks[i], ranks[len(ranks)-1-i]))
	}

	return round
}

// Connects the matches of the previous round to the matches
// that their winners and losers play in the next round
func (b *Bracket) linkRounds(previous, next *BracketRound) {
	link := func(source, target *Match, path string) {
		err := b.EliminationGraph.Link(source, target, path)
		if err != nil {
			b.settings.logger().WithError(err).Warn("could not link bracket matches")
		}
	}

	for _, source := range previous.Matches {
		for _, target := range next.Matches {
			if target.ContainsTeam(source.Winner) {
				link(source, target, PathWinner)
			}
		}
		if next.Consolation != nil && next.Consolation.ContainsTeam(source.Loser()) {
			link(source, next.Consolation, PathLoser)
		}
	}
}

func (b *Bracket) finish(champion *Team) {
	podium := &Podium{Champion: champion}

	final := b.CurrentRound()
	if len(final.Matches) == 1 {
		podium.RunnerUp = final.Matches[0].Loser()
	}

	if final.Consolation != nil {
		podium.Third = final.Consolation.Winner
	} else if len(b.Rounds) > 1 {
		semis := b.Rounds[len(b.Rounds)-2]
		if losers := semis.Losers(); len(losers) == 1 {
			podium.Third = losers[0]
		}
	}

	b.Podium = podium
	b.state = BracketFinished

	fields := logrus.Fields{"champion": champion.Name}
	if podium.RunnerUp != nil {
		fields["runner_up"] = podium.RunnerUp.Name
	}
	if podium.Third != nil {
		fields["third"] = podium.Third.Name
	}
	b.settings.logger().WithFields(fields).Info("bracket finished")
}

func (b *Bracket) newMatch(label string, home, away *Team) *Match {
	return NewMatch(b.ids.Next(), label, home, away)
}

// Creates the bracket and its first round from the qualified teams.
//
// The qualifiers are ranked by merit and seeded. Only the top
// MaxBracketSize qualifiers enter, the rest keep their status but
// get no seed. Fewer than MinBracketSize qualifiers is an error.
func NewBracket(qualified []*Team, settings *Settings, ids *idSource) (*Bracket, error) {
	if len(qualified) < settings.MinBracketSize {
		return nil, fmt.Errorf(
			"%w: %d qualifiers, at least %d are needed for the bracket",
			ErrInvalidTeamCount,
			len(qualified),
			settings.MinBracketSize,
		)
	}

	ranked := RankTeams(qualified, settings.Ranking, nil)
	numEntries := min(len(ranked), settings.MaxBracketSize)

	seeds := ranked[:numEntries]
	assignSeeds(seeds, ranked[numEntries:])

	bracket := &Bracket{
		Seeds:            seeds,
		EliminationGraph: NewEliminationGraph(),
		settings:         settings,
		ids:              ids,
	}

	var first *BracketRound
	if shape, ok := bracketShapes[numEntries]; ok {
		first = &BracketRound{
			Name:    shape.name,
			Matches: make([]*Match, 0, len(shape.pairings)),
			Waiting: make([]*Team, 0, len(shape.waiting)),
		}
		for _, p := range shape.pairings {
			first.Matches = append(first.Matches, bracket.newMatch(p.label, seeds[p.home-1], seeds[p.away-1]))
		}
		for _, w := range shape.waiting {
			first.Waiting = append(first.Waiting, seeds[w-1])
		}
		bracket.semifinals = shape.semifinals
	} else {
		// Bracket sizes above 8 have no fixed shape
		first = bracket.createOlympicRound(NewSeedRanking(seeds))
	}

	for _, m := range first.Matches {
		bracket.EliminationGraph.AddVertex(m)
	}

	bracket.Rounds = append(bracket.Rounds, first)
	bracket.state = BracketInitialized

	settings.logger().WithFields(logrus.Fields{
		"round":   first.Name,
		"seeds":   teamNames(seeds),
		"dropped": teamNames(ranked[numEntries:]),
	}).Info("bracket initialized")

	return bracket, nil
}
