// Package swisscup runs a team tournament that starts with a
// Swiss qualification stage and ends with a single elimination
// bracket.
//
// Register the teams, call Start and submit the scores of every
// round in match order. Each submission returns the next round or
// the podium. Scores are created with the football package.
package swisscup

import (
	"github.com/ezBadminton/swisscup/internal"
)

type (
	Tournament   = internal.Tournament
	Settings     = internal.Settings
	RankCriteria = internal.RankCriteria

	Team       = internal.Team
	TeamStatus = internal.TeamStatus
	Match      = internal.Match
	Score      = internal.Score
	Proposal   = internal.Proposal

	SwissRound   = internal.SwissRound
	Bracket      = internal.Bracket
	BracketRound = internal.BracketRound
	Podium       = internal.Podium
	NextState    = internal.NextState
	Phase        = internal.Phase

	StandingRow = internal.StandingRow
	HistoryRow  = internal.HistoryRow
)

const (
	Active     = internal.Active
	Qualified  = internal.Qualified
	Eliminated = internal.Eliminated

	Accepted       = internal.Accepted
	NeedsPenalties = internal.NeedsPenalties

	PhaseRegistration = internal.PhaseRegistration
	PhaseSwiss        = internal.PhaseSwiss
	PhaseBracket      = internal.PhaseBracket
	PhaseFinished     = internal.PhaseFinished
)

var (
	ErrDuplicateTeamName   = internal.ErrDuplicateTeamName
	ErrEmptyTeamName       = internal.ErrEmptyTeamName
	ErrInvalidTeamCount    = internal.ErrInvalidTeamCount
	ErrIncompleteInput     = internal.ErrIncompleteInput
	ErrUnresolvedTie       = internal.ErrUnresolvedTie
	ErrUnexpectedPenalties = internal.ErrUnexpectedPenalties
	ErrWrongPhase          = internal.ErrWrongPhase
	ErrRoundNotComplete    = internal.ErrRoundNotComplete
)

var (
	StandingsHeader = internal.StandingsHeader
	HistoryHeader   = internal.HistoryHeader
)

func NewTournament(settings Settings) *Tournament {
	return internal.NewTournament(settings)
}

func DefaultSettings() Settings {
	return internal.DefaultSettings()
}

// Checks a score before it is submitted. A level score without
// a penalty shootout returns NeedsPenalties.
func ProposeResult(score Score) (Proposal, error) {
	return internal.ProposeResult(score)
}
