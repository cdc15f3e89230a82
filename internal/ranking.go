package internal

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
)

// A Ranking orders a set of Teams according to an implementation specific metric.
type Ranking interface {
	// Returns the current ranks
	GetRanks() []*Team

	// Returns the occupant of the ith place in the Ranking.
	// Returns nil if the place is out of bounds.
	At(i int) *Team

	// Updates the return value of the GetRanks() method.
	// Should be called whenever a result that influences the
	// ranking becomes known.
	UpdateRanks()
}

type BaseRanking struct {
	Ranks []*Team
}

func (r *BaseRanking) GetRanks() []*Team {
	return r.Ranks
}

func (r *BaseRanking) At(i int) *Team {
	if i >= len(r.Ranks) || i < 0 {
		return nil
	}
	return r.Ranks[i]
}

func (r *BaseRanking) UpdateRanks() {}

// The keys of the merit order. Wins always come first,
// the other keys break ties in this order:
//   - fewer losses (when ByLosses is set)
//   - never received a bye
//   - higher goal difference
//   - more goals scored
type RankCriteria struct {
	ByLosses bool
}

// Compares two teams by merit. Negative means a ranks above b.
func (c RankCriteria) Compare(a, b *Team) int {
	if r := cmp.Compare(b.Wins, a.Wins); r != 0 {
		return r
	}
	if c.ByLosses {
		if r := cmp.Compare(a.Losses, b.Losses); r != 0 {
			return r
		}
	}
	if a.ReceivedBye != b.ReceivedBye {
		if !a.ReceivedBye {
			return -1
		}
		return 1
	}
	if r := cmp.Compare(b.GoalDifference, a.GoalDifference); r != 0 {
		return r
	}
	return cmp.Compare(b.GoalsFor, a.GoalsFor)
}

// Returns the teams in merit order without touching the given slice.
//
// With a non-nil rng the teams are shuffled before the stable sort
// so teams that are level on every key end up in random order
// (pairing mode). A nil rng keeps the input order among level teams
// which makes the result deterministic (standings mode).
func RankTeams(teams []*Team, criteria RankCriteria, rng *rand.Rand) []*Team {
	ranked := slices.Clone(teams)
	if rng != nil {
		shuffle(ranked, rng)
	}
	slices.SortStableFunc(ranked, criteria.Compare)
	return ranked
}

// The MeritRanking ranks teams by their Swiss record.
// Teams that are level on every key are tied on the same rank.
type MeritRanking struct {
	BaseRanking

	Criteria RankCriteria

	teams     []*Team
	tiedRanks [][]*Team
}

func (r *MeritRanking) UpdateRanks() {
	r.Ranks = RankTeams(r.teams, r.Criteria, nil)

	tiedRanks := make([][]*Team, 0, len(r.Ranks))
	for i, t := range r.Ranks {
		if i > 0 && r.Criteria.Compare(r.Ranks[i-1], t) == 0 {
			last := len(tiedRanks) - 1
			tiedRanks[last] = append(tiedRanks[last], t)
			continue
		}
		tiedRanks = append(tiedRanks, []*Team{t})
	}
	r.tiedRanks = tiedRanks
}

// Returns a slice of slices of teams.
//
// A slice with multiple teams in it means the rank
// is tied between them.
func (r *MeritRanking) TiedRanks() [][]*Team {
	return r.tiedRanks
}

func (r *MeritRanking) String() string {
	var sb strings.Builder

	for _, tie := range r.TiedRanks() {
		sb.WriteString(strings.Join(teamNames(tie), ", "))
		sb.WriteRune('\n')
	}

	return sb.String()
}

func NewMeritRanking(teams []*Team, criteria RankCriteria) *MeritRanking {
	ranking := &MeritRanking{
		Criteria: criteria,
		teams:    teams,
	}
	ranking.UpdateRanks()
	return ranking
}

// The SeedRanking orders bracket teams by their seed.
//
// Seeds are the merit order at bracket entry. Bracket results do
// not change Swiss records so ranking by seed is the same as
// re-ranking by merit, with the entry order breaking full ties.
type SeedRanking struct {
	BaseRanking
}

func (r *SeedRanking) UpdateRanks() {
	slices.SortStableFunc(r.Ranks, func(a, b *Team) int { return cmp.Compare(a.Seed, b.Seed) })
}

func NewSeedRanking(teams []*Team) *SeedRanking {
	ranking := &SeedRanking{BaseRanking: BaseRanking{Ranks: slices.Clone(teams)}}
	ranking.UpdateRanks()
	return ranking
}
