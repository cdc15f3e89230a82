package internal

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/sirupsen/logrus"
)

// A SwissRound is the list of matches of one Swiss round plus
// the team that sits out with a free win when the number of
// active teams is odd.
type SwissRound struct {
	// 1-based number of the round
	Number int

	Matches []*Match

	// The team that gets the free win or nil
	Bye *Team

	Completed bool
}

// Generates the pairings of the next Swiss round.
//
// The active teams are paired from the top of a shuffled merit
// ranking. Each team gets the highest ranked opponent it has not
// faced yet. When no such opponent is left the rematch is played
// anyway. Both teams' histories are updated right away.
//
// The rng drives the pairing shuffle and the bye draw.
func GenerateSwissRound(
	teams []*Team,
	number int,
	settings *Settings,
	ids *idSource,
	rng *rand.Rand,
) *SwissRound {
	pool := swissPool(teams, settings)
	round := &SwissRound{Number: number}

	if len(pool)%2 != 0 {
		bye := pickByeTeam(pool, rng)
		round.Bye = bye
		pool = slices.DeleteFunc(pool, func(t *Team) bool { return t == bye })

		settings.logger().WithFields(logrus.Fields{
			"round": number,
			"team":  bye.Name,
		}).Info("bye assigned")
	}

	ranked := RankTeams(pool, settings.Ranking, rng)
	round.Matches = pairTeams(ranked, number, settings, ids)

	return round
}

// The teams that take part in the next round. Active status already
// implies the loss limit is not reached but the limit is checked again
// in case a caller changed a record by hand.
func swissPool(teams []*Team, settings *Settings) []*Team {
	pool := make([]*Team, 0, len(teams))
	for _, t := range teams {
		if t.Status == Active && t.Losses < settings.EliminateLosses {
			pool = append(pool, t)
		}
	}
	return pool
}

// Draws the bye team.
//
// Teams that never had a bye and lost their latest match come
// first, then any team that never had a bye and only when every
// team already had one, any team at all.
func pickByeTeam(pool []*Team, rng *rand.Rand) *Team {
	neverByed := slices.DeleteFunc(slices.Clone(pool), func(t *Team) bool { return t.ReceivedBye })
	lostLast := slices.DeleteFunc(slices.Clone(neverByed), func(t *Team) bool { return !t.LostLastMatch })

	switch {
	case len(lostLast) > 0:
		return pickRandom(lostLast, rng)
	case len(neverByed) > 0:
		return pickRandom(neverByed, rng)
	}
	return pickRandom(pool, rng)
}

// Pairs the ranked teams greedily from the top
func pairTeams(ranked []*Team, number int, settings *Settings, ids *idSource) []*Match {
	ranked = slices.Clone(ranked)
	matches := make([]*Match, 0, len(ranked)/2)

	for len(ranked) >= 2 {
		home := ranked[0]
		ranked = ranked[1:]

		opponentIndex := slices.IndexFunc(ranked, func(t *Team) bool { return !home.HasFaced(t.Id()) })
		if opponentIndex == -1 {
			opponentIndex = 0
			settings.logger().WithFields(logrus.Fields{
				"round": number,
				"home":  home.Name,
				"away":  ranked[0].Name,
			}).Info("unavoidable rematch")
		}

		away := ranked[opponentIndex]
		ranked = slices.Delete(ranked, opponentIndex, opponentIndex+1)

		home.History = append(home.History, away.Id())
		away.History = append(away.History, home.Id())

		label := fmt.Sprintf("r%d_m%d", number, len(matches)+1)
		matches = append(matches, NewMatch(ids.Next(), label, home, away))
	}

	return matches
}
