package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/ezBadminton/swisscup"
	"github.com/ezBadminton/swisscup/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The team listed first always wins
func favouriteWins(m *swisscup.Match) (swisscup.Score, error) {
	if m.Home.Id() < m.Away.Id() {
		return football.NewScore(2, 1)
	}
	return football.NewScore(0, 1)
}

func testSettings() swisscup.Settings {
	settings := swisscup.DefaultSettings()
	settings.RngSeed = 3
	return settings
}

func TestRandomResults(t *testing.T) {
	results := randomResults(rand.New(rand.NewSource(1)))
	match := &swisscup.Match{Label: "r1_m1"}

	penalties := 0
	for range 200 {
		score, err := results(match)
		require.NoError(t, err)

		proposal, err := swisscup.ProposeResult(score)
		require.NoError(t, err)
		assert.Equal(t, swisscup.Accepted, proposal)

		_, err = score.GetWinner()
		assert.NoError(t, err)
		if _, _, ok := score.Penalties(); ok {
			penalties += 1
		}
	}
	assert.Positive(t, penalties)
}

func TestSimulate(t *testing.T) {
	var out bytes.Buffer
	tournament, err := simulate(defaultTeams, testSettings(), favouriteWins, &out)
	require.NoError(t, err)

	assert.Equal(t, swisscup.PhaseFinished, tournament.Phase())
	assert.Equal(t, "Rovers", tournament.Podium().Champion.Name)

	text := out.String()
	assert.Contains(t, text, "Round 1")
	assert.Contains(t, text, "Standings")
	assert.Contains(t, text, "Champion: Rovers")
}

func TestSimulateErrors(t *testing.T) {
	var out bytes.Buffer
	_, err := simulate(defaultTeams[:5], testSettings(), favouriteWins, &out)
	assert.ErrorIs(t, err, swisscup.ErrInvalidTeamCount)

	names := append([]string{"rovers"}, defaultTeams...)
	_, err = simulate(names, testSettings(), favouriteWins, &out)
	assert.ErrorIs(t, err, swisscup.ErrDuplicateTeamName)
}

func TestExport(t *testing.T) {
	var out bytes.Buffer
	tournament, err := simulate(defaultTeams, testSettings(), favouriteWins, &out)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	require.NoError(t, export(dir, tournament))

	file, err := os.Open(filepath.Join(dir, "standings.csv"))
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(defaultTeams)+1)
	assert.Equal(t, swisscup.StandingsHeader, records[0])
	assert.Equal(t, "1", records[1][0])

	file, err = os.Open(filepath.Join(dir, "history.csv"))
	require.NoError(t, err)
	defer file.Close()
	records, err = csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, swisscup.HistoryHeader, records[0])
	assert.Len(t, records, len(tournament.MatchHistory())+1)

	data, err := os.ReadFile(filepath.Join(dir, "tournament.json"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tournament.RunId.String(), decoded["runId"])
	assert.Equal(t, "finished", decoded["phase"])
	assert.Contains(t, decoded, "bracket")
}
