package internal

import (
	"fmt"
	"slices"
)

// TeamStatus is the Swiss stage standing of a team.
type TeamStatus int

const (
	Active TeamStatus = iota
	Qualified
	Eliminated
)

func (s TeamStatus) String() string {
	switch s {
	case Active:
		return "Active"
	case Qualified:
		return "Qualified"
	case Eliminated:
		return "Eliminated"
	}
	return fmt.Sprintf("TeamStatus(%d)", int(s))
}

func (s TeamStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// A Team is a participant of the tournament.
//
// The record (wins, losses, goals) only reflects the
// Swiss stage. Bracket matches decide advancement but
// never change the record, so the merit order of the
// qualifiers stays frozen once the bracket starts.
type Team struct {
	Name string

	Wins   int
	Losses int

	GoalsFor       int
	GoalDifference int

	// True once the team was awarded a free win
	ReceivedBye bool

	// True when the latest applied result was a loss
	LostLastMatch bool

	// Ids of the Swiss opponents in the order they were faced
	History []int

	Status TeamStatus

	// 1-based bracket seed or 0 when the team is not in the bracket
	Seed int

	id int
}

func (t *Team) Id() int {
	return t.id
}

// GoalsAgainst is derived from goals for and goal difference
func (t *Team) GoalsAgainst() int {
	return t.GoalsFor - t.GoalDifference
}

// Returns true when the team already played the team with
// the given id in the Swiss stage
func (t *Team) HasFaced(id int) bool {
	return slices.Contains(t.History, id)
}

// The number of Swiss results applied to this team (a bye counts).
func (t *Team) MatchesPlayed() int {
	return t.Wins + t.Losses
}

func (t *Team) String() string {
	return fmt.Sprintf("%s (%d-%d)", t.Name, t.Wins, t.Losses)
}

func NewTeam(id int, name string) *Team {
	return &Team{
		Name:    name,
		History: make([]int, 0, 5),
		Status:  Active,
		id:      id,
	}
}

func teamNames(teams []*Team) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names
}
