package internal

func teamsWithStatus(teams []*Team, status TeamStatus) []*Team {
	filtered := make([]*Team, 0, len(teams))
	for _, t := range teams {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func ActiveTeams(teams []*Team) []*Team {
	return teamsWithStatus(teams, Active)
}

func QualifiedTeams(teams []*Team) []*Team {
	return teamsWithStatus(teams, Qualified)
}

func EliminatedTeams(teams []*Team) []*Team {
	return teamsWithStatus(teams, Eliminated)
}

// Returns true when the Swiss stage is over.
//
// That is the case when at most one team is still active. A single
// leftover team can not form a match and stays undecided.
func SwissStageOver(teams []*Team) bool {
	return len(ActiveTeams(teams)) <= 1
}
