package internal

import "strconv"

// A row of the standings table
type StandingRow struct {
	// Shared by teams that are level on every ranking key
	Rank int

	TeamId int
	Team   string

	Wins, Losses   int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int

	Status      TeamStatus
	ReceivedBye bool
	Seed        int
}

var StandingsHeader = []string{
	"rank", "team_id", "team", "wins", "losses",
	"goals_for", "goals_against", "goal_difference",
	"status", "received_bye", "seed",
}

func (r StandingRow) Record() []string {
	return []string{
		strconv.Itoa(r.Rank),
		strconv.Itoa(r.TeamId),
		r.Team,
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		strconv.Itoa(r.GoalsFor),
		strconv.Itoa(r.GoalsAgainst),
		strconv.Itoa(r.GoalDifference),
		r.Status.String(),
		strconv.FormatBool(r.ReceivedBye),
		strconv.Itoa(r.Seed),
	}
}

// A row of the match history table
type HistoryRow struct {
	Phase string
	Round string
	Match string

	Home, Away    string
	HomeGoals     int
	AwayGoals     int
	HasPenalties  bool
	HomePenalties int
	AwayPenalties int
	Winner        string
}

var HistoryHeader = []string{
	"phase", "round", "match", "home", "away",
	"home_goals", "away_goals", "home_penalties", "away_penalties", "winner",
}

func (r HistoryRow) Record() []string {
	homePenalties, awayPenalties := "", ""
	if r.HasPenalties {
		homePenalties = strconv.Itoa(r.HomePenalties)
		awayPenalties = strconv.Itoa(r.AwayPenalties)
	}
	return []string{
		r.Phase,
		r.Round,
		r.Match,
		r.Home,
		r.Away,
		strconv.Itoa(r.HomeGoals),
		strconv.Itoa(r.AwayGoals),
		homePenalties,
		awayPenalties,
		r.Winner,
	}
}

// Returns the current standings in deterministic merit order
func (t *Tournament) Standings() []StandingRow {
	ranking := NewMeritRanking(t.Teams, t.Settings.Ranking)

	rows := make([]StandingRow, 0, len(t.Teams))
	for _, tie := range ranking.TiedRanks() {
		rank := len(rows) + 1
		for _, team := range tie {
			rows = append(rows, StandingRow{
				Rank:           rank,
				TeamId:         team.Id(),
				Team:           team.Name,
				Wins:           team.Wins,
				Losses:         team.Losses,
				GoalsFor:       team.GoalsFor,
				GoalsAgainst:   team.GoalsAgainst(),
				GoalDifference: team.GoalDifference,
				Status:         team.Status,
				ReceivedBye:    team.ReceivedBye,
				Seed:           team.Seed,
			})
		}
	}

	return rows
}

// Returns every played match, Swiss rounds first. A bye is
// listed as a 1-0 row without an away team. Scheduled matches
// without a result are left out.
func (t *Tournament) MatchHistory() []HistoryRow {
	rows := make([]HistoryRow, 0, 8*len(t.SwissRounds))

	for _, r := range t.SwissRounds {
		if !r.Completed {
			continue
		}
		roundName := "Round " + strconv.Itoa(r.Number)
		for _, m := range r.Matches {
			rows = append(rows, historyRow(PhaseSwiss, roundName, m))
		}
		if r.Bye != nil {
			rows = append(rows, HistoryRow{
				Phase:     PhaseSwiss.String(),
				Round:     roundName,
				Match:     "bye",
				Home:      r.Bye.Name,
				HomeGoals: 1,
				Winner:    r.Bye.Name,
			})
		}
	}

	if t.Bracket == nil {
		return rows
	}

	for _, r := range t.Bracket.Rounds {
		for _, m := range r.AllMatches() {
			if m.IsDecided() {
				rows = append(rows, historyRow(PhaseBracket, r.Name, m))
			}
		}
	}

	return rows
}

func historyRow(phase Phase, round string, m *Match) HistoryRow {
	row := HistoryRow{
		Phase: phase.String(),
		Round: round,
		Match: m.Label,
		Home:  m.Home.Name,
		Away:  m.Away.Name,
	}
	if m.Score != nil {
		row.HomeGoals, row.AwayGoals = m.Score.Goals()
		row.HomePenalties, row.AwayPenalties, row.HasPenalties = m.Score.Penalties()
	}
	if m.Winner != nil {
		row.Winner = m.Winner.Name
	}
	return row
}
