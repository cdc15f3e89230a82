package internal

// Applies one side of a completed Swiss match to the team's record.
//
// The won flag comes from the caller because a level normal time
// is decided by penalties, which never count towards the goals.
// A bye is applied as a 1-0 win with bye set and has no opposing side.
//
// Every team of a match (and the bye team of a round) has to be
// applied exactly once. Applying a result twice corrupts the record.
func ApplyResult(team *Team, scored, conceded int, won, bye bool, settings *Settings) {
	team.GoalsFor += scored
	team.GoalDifference += scored - conceded

	if won {
		team.Wins += 1
	} else {
		team.Losses += 1
	}
	team.LostLastMatch = !won

	if bye {
		team.ReceivedBye = true
	}

	team.Status = StatusOf(team.Wins, team.Losses, settings)
}

// The status is a pure function of the record
func StatusOf(wins, losses int, settings *Settings) TeamStatus {
	switch {
	case wins >= settings.QualifyWins:
		return Qualified
	case losses >= settings.EliminateLosses:
		return Eliminated
	}
	return Active
}

// Credits both sides of a decided Swiss match
func applyMatch(match *Match, settings *Settings) {
	home, away := match.Score.Goals()
	ApplyResult(match.Home, home, away, match.Winner == match.Home, false, settings)
	ApplyResult(match.Away, away, home, match.Winner == match.Away, false, settings)
}

func applyBye(team *Team, settings *Settings) {
	ApplyResult(team, 1, 0, true, true, settings)
}
