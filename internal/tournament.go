package internal

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateTeamName = errors.New("a team with this name is already registered")
	ErrEmptyTeamName     = errors.New("empty team name")
	ErrInvalidTeamCount  = errors.New("invalid number of teams")
	ErrIncompleteInput   = errors.New("missing match score")
	ErrWrongPhase        = errors.New("operation not allowed in the current phase")
)

// Phase is the stage the tournament is in
type Phase int

const (
	PhaseRegistration Phase = iota
	PhaseSwiss
	PhaseBracket
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRegistration:
		return "registration"
	case PhaseSwiss:
		return "swiss"
	case PhaseBracket:
		return "bracket"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// The outcome of a submitted round. Exactly one of the
// fields is set.
type NextState struct {
	SwissRound   *SwissRound
	BracketRound *BracketRound
	Podium       *Podium
}

// A Tournament is the whole state of one tournament run: the
// registered teams, the Swiss rounds and the bracket.
//
// It is not safe for concurrent use. Every submission has to be
// applied exactly once by the caller.
type Tournament struct {
	RunId uuid.UUID

	// The teams in registration order
	Teams []*Team

	SwissRounds []*SwissRound

	// Nil until the Swiss stage is over
	Bracket *Bracket

	Settings Settings

	phase Phase
	rng   *rand.Rand
	ids   idSource
	log   *logrus.Entry
}

func (t *Tournament) Phase() Phase {
	return t.phase
}

// Registers a new team. Names are unique regardless of case
// and surrounding whitespace.
func (t *Tournament) RegisterTeam(name string) (*Team, error) {
	if t.phase != PhaseRegistration {
		return nil, ErrWrongPhase
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTeamName
	}
	for _, other := range t.Teams {
		if strings.EqualFold(other.Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeamName, name)
		}
	}

	team := NewTeam(t.ids.Next(), name)
	t.Teams = append(t.Teams, team)

	t.log.WithFields(logrus.Fields{"team": name, "team_id": team.Id()}).Debug("team registered")

	return team, nil
}

func (t *Tournament) TeamById(id int) *Team {
	for _, team := range t.Teams {
		if team.Id() == id {
			return team
		}
	}
	return nil
}

// Closes the registration and generates the first Swiss round
func (t *Tournament) Start() (*SwissRound, error) {
	if t.phase != PhaseRegistration {
		return nil, ErrWrongPhase
	}

	numTeams := len(t.Teams)
	if numTeams < t.Settings.MinTeams || numTeams > t.Settings.MaxTeams {
		return nil, fmt.Errorf(
			"%w: %d teams registered, %d to %d are allowed",
			ErrInvalidTeamCount,
			numTeams,
			t.Settings.MinTeams,
			t.Settings.MaxTeams,
		)
	}

	t.phase = PhaseSwiss
	t.log.WithField("teams", numTeams).Info("tournament started")

	return t.nextSwissRound(), nil
}

func (t *Tournament) CurrentSwissRound() *SwissRound {
	if len(t.SwissRounds) == 0 {
		return nil
	}
	return t.SwissRounds[len(t.SwissRounds)-1]
}

func (t *Tournament) logRoundCompleted(round *SwissRound) {
	t.log.WithFields(logrus.Fields{
		"round":      round.Number,
		"active":     len(ActiveTeams(t.Teams)),
		"qualified":  len(QualifiedTeams(t.Teams)),
		"eliminated": len(EliminatedTeams(t.Teams)),
	}).Info("swiss round completed")
}

// A copy of every team record to roll a round back
type teamRecord struct {
	team   *Team
	record Team
}

func saveRecords(teams []*Team) []teamRecord {
	records := make([]teamRecord, 0, len(teams))
	for _, t := range teams {
		records = append(records, teamRecord{team: t, record: *t})
	}
	return records
}

func restoreRecords(records []teamRecord) {
	for _, r := range records {
		*r.team = r.record
	}
}

// Submits the results of the current Swiss round.
//
// scores holds one score per match in match order. A nil score or
// a level score without a decisive shootout rejects the whole
// submission and leaves the tournament unchanged.
//
// When teams are still active the next Swiss round is returned.
// Otherwise the qualifiers enter the bracket and its first
// round is returned. Results that would close the Swiss stage
// with too few qualifiers for the bracket are rejected with
// ErrInvalidTeamCount and the round stays open.
func (t *Tournament) SubmitSwissRound(scores []Score) (*NextState, error) {
	round := t.CurrentSwissRound()
	if t.phase != PhaseSwiss || round == nil || round.Completed {
		return nil, ErrWrongPhase
	}

	if err := checkScores(round.Matches, scores); err != nil {
		return nil, err
	}

	if err := decideMatches(round.Matches, scores); err != nil {
		return nil, err
	}

	records := saveRecords(t.Teams)
	settings := &t.Settings
	for _, m := range round.Matches {
		applyMatch(m, settings)
	}
	if round.Bye != nil {
		applyBye(round.Bye, settings)
	}

	if !SwissStageOver(t.Teams) {
		round.Completed = true
		t.logRoundCompleted(round)
		return &NextState{SwissRound: t.nextSwissRound()}, nil
	}

	bracket, err := NewBracket(QualifiedTeams(t.Teams), settings, &t.ids)
	if err != nil {
		restoreRecords(records)
		for _, m := range round.Matches {
			m.Score = nil
			m.Winner = nil
		}
		t.log.WithError(err).WithField("round", round.Number).Warn("swiss round rejected")
		return nil, err
	}

	round.Completed = true
	t.logRoundCompleted(round)
	t.Bracket = bracket
	t.phase = PhaseBracket

	return &NextState{BracketRound: bracket.CurrentRound()}, nil
}

// Submits the results of the current bracket round in the order
// of BracketRound.AllMatches. Every level score needs a decisive
// penalty shootout.
//
// Returns the next bracket round or the podium once the final
// is decided.
func (t *Tournament) SubmitBracketRound(scores []Score) (*NextState, error) {
	if t.phase != PhaseBracket {
		return nil, ErrWrongPhase
	}

	if err := t.Bracket.RecordRound(scores); err != nil {
		return nil, err
	}

	next, err := t.Bracket.Advance()
	if err != nil {
		return nil, err
	}

	if next == nil {
		t.phase = PhaseFinished
		return &NextState{Podium: t.Bracket.Podium}, nil
	}
	return &NextState{BracketRound: next}, nil
}

// Returns the podium or nil while the tournament is not finished
func (t *Tournament) Podium() *Podium {
	if t.Bracket == nil {
		return nil
	}
	return t.Bracket.Podium
}

func (t *Tournament) nextSwissRound() *SwissRound {
	number := len(t.SwissRounds) + 1
	round := GenerateSwissRound(t.Teams, number, &t.Settings, &t.ids, t.rng)
	t.SwissRounds = append(t.SwissRounds, round)

	fields := logrus.Fields{"round": number, "matches": len(round.Matches)}
	if round.Bye != nil {
		fields["bye"] = round.Bye.Name
	}
	t.log.WithFields(fields).Info("swiss round generated")

	return round
}

// Checks that every match has a decisive score
func checkScores(matches []*Match, scores []Score) error {
	if len(scores) != len(matches) {
		return fmt.Errorf("%w: %d scores for %d matches", ErrIncompleteInput, len(scores), len(matches))
	}

	for i, m := range matches {
		_, err := decisiveWinner(scores[i])
		switch err {
		case nil:
			continue
		case ErrNoScore:
			return fmt.Errorf("%w: match %s (%s vs. %s)", ErrIncompleteInput, m.Label, m.Home.Name, m.Away.Name)
		default:
			return fmt.Errorf("%w: match %s (%s vs. %s)", err, m.Label, m.Home.Name, m.Away.Name)
		}
	}

	return nil
}

func NewTournament(settings Settings) *Tournament {
	runId := uuid.New()
	tournament := &Tournament{
		RunId:    runId,
		Teams:    make([]*Team, 0, settings.MaxTeams),
		Settings: settings,
		phase:    PhaseRegistration,
		rng:      newRng(settings.RngSeed),
	}
	tournament.log = tournament.Settings.logger().WithField("run_id", runId.String())
	tournament.Settings.Logger = tournament.log
	return tournament
}
