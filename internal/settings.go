package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Settings control the thresholds and options of a tournament.
type Settings struct {
	// Allowed number of registered teams when the tournament starts
	MinTeams, MaxTeams int

	// Swiss record thresholds. Reaching QualifyWins qualifies a
	// team for the bracket, reaching EliminateLosses eliminates it.
	QualifyWins, EliminateLosses int

	// Allowed number of bracket entrants. Qualifiers beyond
	// MaxBracketSize are dropped from the bracket by rank.
	MinBracketSize, MaxBracketSize int

	// Play a consolation match between the semifinal losers
	ThirdPlaceMatch bool

	Ranking RankCriteria

	// Seed of the RNG used for pairing shuffles and bye draws
	RngSeed int64

	Logger logrus.FieldLogger
}

func DefaultSettings() Settings {
	return Settings{
		MinTeams:        6,
		MaxTeams:        16,
		QualifyWins:     3,
		EliminateLosses: 3,
		MinBracketSize:  3,
		MaxBracketSize:  8,
		ThirdPlaceMatch: true,
		Ranking:         RankCriteria{ByLosses: true},
	}
}

func (s *Settings) logger() logrus.FieldLogger {
	if s.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.Logger = discard
	}
	return s.Logger
}

// Hands out unique ids for teams and matches.
// Match ids double as node hashes in the elimination graph.
type idSource struct {
	last int
}

func (s *idSource) Next() int {
	s.last += 1
	return s.last
}
