package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoScore       = errors.New("no score")
	ErrUnresolvedTie = errors.New("tied normal time without a decisive penalty shootout")

	ErrUnexpectedPenalties = errors.New("penalty shootout after a match decided in normal time")
)

// The result of a match.
//
// Goals are the normal time goals. A penalty shootout is only
// present when the normal time goals are level.
type Score interface {
	// Normal time goals of the home and away team
	Goals() (home, away int)

	// Penalty shootout goals. ok is false when
	// no shootout was played.
	Penalties() (home, away int, ok bool)

	// Returns either 0 or 1 whether the
	// home team won or the away team.
	// Errors when no winner is determined.
	GetWinner() (int, error)

	// Returns a new Score with home and away flipped
	Invert() Score
}

// A Match between two teams in either stage.
type Match struct {
	// Reference label such as "semi1" or "r2_m3"
	Label string

	Home *Team
	Away *Team

	// Score of the match or
	// nil when the match is not completed
	Score Score

	// The winner once the match is decided
	Winner *Team

	// Id for graph node hashing
	id int
}

func (m *Match) Id() int {
	return m.id
}

func (m *Match) IsDecided() bool {
	return m.Winner != nil
}

// Returns the team that did not win or nil while undecided
func (m *Match) Loser() *Team {
	if m.Winner == nil {
		return nil
	}
	return m.OtherTeam(m.Winner)
}

func (m *Match) ContainsTeam(team *Team) bool {
	return m.Home == team || m.Away == team
}

func (m *Match) OtherTeam(team *Team) *Team {
	if team == m.Home {
		return m.Away
	}
	if team == m.Away {
		return m.Home
	}

	panic("Team is not in the Match")
}

// Sets the score and the winner. The score is rejected when
// it does not name a winner.
func (m *Match) Decide(score Score) error {
	winnerIndex, err := decisiveWinner(score)
	if err != nil {
		return err
	}

	m.Score = score
	if winnerIndex == 0 {
		m.Winner = m.Home
	} else {
		m.Winner = m.Away
	}
	return nil
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(m.Home.Name)
	sb.WriteString(" vs. ")
	sb.WriteString(m.Away.Name)

	if m.Score != nil {
		home, away := m.Score.Goals()
		sb.WriteString(fmt.Sprintf("\t%v - %v", home, away))
		if penHome, penAway, ok := m.Score.Penalties(); ok {
			sb.WriteString(fmt.Sprintf(" (%v - %v pen.)", penHome, penAway))
		}
	}

	return sb.String()
}

func NewMatch(id int, label string, home, away *Team) *Match {
	return &Match{
		Label: label,
		Home:  home,
		Away:  away,
		id:    id,
	}
}

// Returns 0 or 1 for the winning side of the score.
//
// The winner is read from the goals, or from the penalty shootout
// when normal time is level, whatever the Score implementation
// claims in GetWinner. A shootout after a decided normal time and
// a level shootout are rejected.
func decisiveWinner(score Score) (int, error) {
	if score == nil {
		return -1, ErrNoScore
	}

	home, away := score.Goals()
	penHome, penAway, penalties := score.Penalties()
	if home != away {
		if penalties {
			return -1, ErrUnexpectedPenalties
		}
		return sideOf(home, away), nil
	}

	if !penalties || penHome == penAway {
		return -1, ErrUnresolvedTie
	}
	return sideOf(penHome, penAway), nil
}

func sideOf(home, away int) int {
	if home > away {
		return 0
	}
	return 1
}

// Decides all matches with their scores or none of them
func decideMatches(matches []*Match, scores []Score) error {
	for i, m := range matches {
		if err := m.Decide(scores[i]); err != nil {
			for _, decided := range matches[:i] {
				decided.Score = nil
				decided.Winner = nil
			}
			return fmt.Errorf("%w: match %s", err, m.Label)
		}
	}
	return nil
}

// The answer to a proposed match result.
type Proposal int

const (
	// The result decides the match
	Accepted Proposal = iota
	// Normal time is level, resubmit with a penalty shootout
	NeedsPenalties
)

func (p Proposal) String() string {
	if p == NeedsPenalties {
		return "NeedsPenalties"
	}
	return "Accepted"
}

// First step of the two-step result entry. A level normal time
// score without penalties asks for the shootout. Scores that can
// never decide the match (e.g. a level shootout) are errors.
func ProposeResult(score Score) (Proposal, error) {
	if score == nil {
		return Accepted, ErrIncompleteInput
	}

	home, away := score.Goals()
	if _, _, ok := score.Penalties(); home == away && !ok {
		return NeedsPenalties, nil
	}

	_, err := decisiveWinner(score)
	if err != nil {
		return Accepted, err
	}
	return Accepted, nil
}
