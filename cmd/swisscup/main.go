// Command swisscup simulates a tournament with random results.
//
// Team names are taken from the arguments, the options from the
// SWISSCUP_* environment variables or a .env file.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/ezBadminton/swisscup"
	"github.com/ezBadminton/swisscup/football"
	"github.com/ezBadminton/swisscup/internal/config"
	"github.com/sirupsen/logrus"
)

var defaultTeams = []string{
	"Rovers", "United", "Athletic", "Wanderers",
	"Albion", "Rangers", "City", "Harriers",
}

// Produces the score of a scheduled match
type resultFunc func(m *swisscup.Match) (swisscup.Score, error)

// Draws 0 to 4 goals per team. Level scores are proposed first
// and then settled by a shootout.
func randomResults(rng *rand.Rand) resultFunc {
	return func(m *swisscup.Match) (swisscup.Score, error) {
		score, err := football.NewScore(rng.Intn(5), rng.Intn(5))
		if err != nil {
			return nil, err
		}

		proposal, err := swisscup.ProposeResult(score)
		if err != nil || proposal == swisscup.Accepted {
			return score, err
		}

		home, _ := score.Goals()
		penHome, penAway := 3+rng.Intn(3), 3+rng.Intn(3)
		if penHome == penAway {
			penAway -= 1
		}
		return football.NewPenaltyScore(home, home, penHome, penAway)
	}
}

func playMatches(matches []*swisscup.Match, results resultFunc) ([]swisscup.Score, error) {
	scores := make([]swisscup.Score, 0, len(matches))
	for _, m := range matches {
		score, err := results(m)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m.Label, err)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// Runs a whole tournament and prints every round to out
func simulate(
	names []string,
	settings swisscup.Settings,
	results resultFunc,
	out io.Writer,
) (*swisscup.Tournament, error) {
	tournament := swisscup.NewTournament(settings)
	for _, name := range names {
		if _, err := tournament.RegisterTeam(name); err != nil {
			return nil, err
		}
	}

	round, err := tournament.Start()
	if err != nil {
		return nil, err
	}

	state := &swisscup.NextState{SwissRound: round}
	for state.Podium == nil {
		var matches []*swisscup.Match
		if state.SwissRound != nil {
			matches = state.SwissRound.Matches
		} else {
			matches = state.BracketRound.AllMatches()
		}

		scores, err := playMatches(matches, results)
		if err != nil {
			return nil, err
		}

		if r := state.SwissRound; r != nil {
			state, err = tournament.SubmitSwissRound(scores)
			printRound(out, fmt.Sprintf("Round %d", r.Number), r.Matches, r.Bye)
			if err != nil || state.SwissRound == nil {
				printStandings(out, tournament.Standings())
			}
		} else {
			r := state.BracketRound
			state, err = tournament.SubmitBracketRound(scores)
			printRound(out, r.Name, r.AllMatches(), nil)
		}
		if err != nil {
			return tournament, err
		}
	}

	printPodium(out, state.Podium)

	return tournament, nil
}

func printRound(out io.Writer, name string, matches []*swisscup.Match, bye *swisscup.Team) {
	fmt.Fprintf(out, "\n%s\n", name)
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Label, m.Home.Name, scoreText(m.Score), m.Away.Name)
	}
	if bye != nil {
		fmt.Fprintf(w, "bye\t%s\t\t\n", bye.Name)
	}
	w.Flush()
}

func scoreText(score swisscup.Score) string {
	if score == nil {
		return "-:-"
	}
	home, away := score.Goals()
	text := fmt.Sprintf("%d:%d", home, away)
	if penHome, penAway, ok := score.Penalties(); ok {
		text += fmt.Sprintf(" (%d:%d pen.)", penHome, penAway)
	}
	return text
}

func printStandings(out io.Writer, standings []swisscup.StandingRow) {
	fmt.Fprintf(out, "\nStandings\n")
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tTeam\tW\tL\tGF\tGA\tGD\tStatus\tSeed\t")
	for _, row := range standings {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%+d\t%s\t%d\t\n",
			row.Rank, row.Team, row.Wins, row.Losses,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference,
			row.Status, row.Seed)
	}
	w.Flush()
}

func printPodium(out io.Writer, podium *swisscup.Podium) {
	fmt.Fprintf(out, "\nChampion: %s\n", podium.Champion.Name)
	if podium.RunnerUp != nil {
		fmt.Fprintf(out, "Runner-up: %s\n", podium.RunnerUp.Name)
	}
	if podium.Third != nil {
		fmt.Fprintf(out, "Third: %s\n", podium.Third.Name)
	}
}

func writeCSV(path string, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Write(header)
	w.WriteAll(records)
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// Writes standings.csv, history.csv and tournament.json into dir
func export(dir string, tournament *swisscup.Tournament) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	standings := tournament.Standings()
	records := make([][]string, 0, len(standings))
	for _, row := range standings {
		records = append(records, row.Record())
	}
	err := writeCSV(filepath.Join(dir, "standings.csv"), swisscup.StandingsHeader, records)
	if err != nil {
		return err
	}

	history := tournament.MatchHistory()
	records = make([][]string, 0, len(history))
	for _, row := range history {
		records = append(records, row.Record())
	}
	err = writeCSV(filepath.Join(dir, "history.csv"), swisscup.HistoryHeader, records)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tournament, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "tournament.json"), data, 0o644)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	names := os.Args[1:]
	if len(names) == 0 {
		names = defaultTeams
	}

	settings := cfg.Settings(logger)
	results := randomResults(rand.New(rand.NewSource(cfg.Seed)))

	tournament, err := simulate(names, settings, results, os.Stdout)
	if err != nil {
		logger.WithError(err).WithField("seed", cfg.Seed).Fatal("tournament aborted")
	}

	if cfg.ExportDir == "" {
		return
	}
	if err := export(cfg.ExportDir, tournament); err != nil {
		logger.WithError(err).Fatal("export failed")
	}
	logger.WithFields(logrus.Fields{
		"run_id": tournament.RunId.String(),
		"dir":    cfg.ExportDir,
	}).Info("exports written")
}
