package football

import (
	"errors"

	"github.com/ezBadminton/swisscup/internal"
)

var (
	ErrNegativeGoals     = errors.New("negative goals")
	ErrEqualPenalties    = errors.New("the penalty shootout has no winner")
	ErrUnneededPenalties = errors.New("penalties for a match decided in normal time")

	ErrUndetermined = errors.New("the winner is undeterminable from the score")
)

type score struct {
	home, away int

	penalties        bool
	penHome, penAway int
}

func (s *score) Goals() (int, int) {
	return s.home, s.away
}

func (s *score) Penalties() (int, int, bool) {
	return s.penHome, s.penAway, s.penalties
}

func (s *score) GetWinner() (int, error) {
	home, away := s.home, s.away
	if home == away && s.penalties {
		home, away = s.penHome, s.penAway
	}

	if home > away {
		return 0, nil
	}
	if away > home {
		return 1, nil
	}

	return -1, ErrUndetermined
}

func (s *score) Invert() internal.Score {
	score := &score{
		home:      s.away,
		away:      s.home,
		penalties: s.penalties,
		penHome:   s.penAway,
		penAway:   s.penHome,
	}
	return score
}

// Creates a normal time score.
//
// A level score is valid but does not decide a match on its own.
// Use NewPenaltyScore once the shootout was played.
func NewScore(home, away int) (*score, error) {
	if home < 0 || away < 0 {
		return nil, ErrNegativeGoals
	}
	return &score{home: home, away: away}, nil
}

// Creates a level normal time score that was decided by a
// penalty shootout.
func NewPenaltyScore(home, away, penHome, penAway int) (*score, error) {
	switch {
	case home < 0 || away < 0 || penHome < 0 || penAway < 0:
		return nil, ErrNegativeGoals
	case home != away:
		return nil, ErrUnneededPenalties
	case penHome == penAway:
		return nil, ErrEqualPenalties
	}

	score := &score{
		home:      home,
		away:      away,
		penalties: true,
		penHome:   penHome,
		penAway:   penAway,
	}
	return score, nil
}
