package internal

import "encoding/json"

func marshalTeams(teams []*Team) map[int]string {
	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.Id()] = t.Name
	}
	return names
}

func marshalTeamId(team *Team) int {
	if team == nil {
		return 0
	}
	return team.Id()
}

func marshalMatch(match *Match) map[string]any {
	score := make([][]int, 0)
	if match.Score != nil {
		home, away := match.Score.Goals()
		score = append(score, []int{home, away})
		if penHome, penAway, ok := match.Score.Penalties(); ok {
			score = append(score, []int{penHome, penAway})
		}
	}
	result := map[string]any{
		"label":  match.Label,
		"home":   match.Home.Id(),
		"away":   match.Away.Id(),
		"score":  score,
		"winner": marshalTeamId(match.Winner),
	}
	return result
}

func marshalSwissRounds(rounds []*SwissRound) []map[string]any {
	result := make([]map[string]any, len(rounds))
	for i, round := range rounds {
		matches := make([]map[string]any, len(round.Matches))
		for i, m := range round.Matches {
			matches[i] = marshalMatch(m)
		}
		result[i] = map[string]any{
			"number":  round.Number,
			"matches": matches,
			"bye":     marshalTeamId(round.Bye),
		}
	}
	return result
}

// The bracket rounds plus the lineage of every match as
// "label": {"winner": label, "loser": label}
func marshalBracket(bracket *Bracket) map[string]any {
	rounds := make([]map[string]any, len(bracket.Rounds))
	for i, round := range bracket.Rounds {
		matches := make([]map[string]any, 0, len(round.Matches)+1)
		for _, m := range round.AllMatches() {
			matches = append(matches, marshalMatch(m))
		}
		waiting := make([]int, len(round.Waiting))
		for i, t := range round.Waiting {
			waiting[i] = t.Id()
		}
		rounds[i] = map[string]any{
			"name":    round.Name,
			"matches": matches,
			"waiting": waiting,
		}
	}

	lineage := make(map[string]map[string]string)
	for _, m := range bracket.Matches() {
		dependants, paths := bracket.EliminationGraph.GetDependants(m)
		if len(dependants) == 0 {
			continue
		}
		next := make(map[string]string, len(dependants))
		for i, d := range dependants {
			next[paths[i]] = d.Label
		}
		lineage[m.Label] = next
	}

	seeds := make([]int, len(bracket.Seeds))
	for i, t := range bracket.Seeds {
		seeds[i] = t.Id()
	}

	result := map[string]any{
		"state":   bracket.State().String(),
		"seeds":   seeds,
		"rounds":  rounds,
		"lineage": lineage,
	}
	if p := bracket.Podium; p != nil {
		result["podium"] = []int{
			marshalTeamId(p.Champion),
			marshalTeamId(p.RunnerUp),
			marshalTeamId(p.Third),
		}
	}
	return result
}

func marshalTournament(t *Tournament) map[string]any {
	result := map[string]any{
		"runId":     t.RunId.String(),
		"phase":     t.Phase().String(),
		"teams":     marshalTeams(t.Teams),
		"standings": t.Standings(),
		"swiss":     marshalSwissRounds(t.SwissRounds),
	}
	if t.Bracket != nil {
		result["bracket"] = marshalBracket(t.Bracket)
	}
	return result
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	anymap := marshalTournament(t)
	return json.Marshal(anymap)
}
