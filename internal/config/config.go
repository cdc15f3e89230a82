package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ezBadminton/swisscup/internal"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvSeed         = "SWISSCUP_SEED"
	EnvThirdPlace   = "SWISSCUP_THIRD_PLACE"
	EnvBracketSize  = "SWISSCUP_BRACKET_SIZE"
	EnvRankByLosses = "SWISSCUP_RANK_BY_LOSSES"
	EnvLogLevel     = "SWISSCUP_LOG_LEVEL"
	EnvExportDir    = "SWISSCUP_EXPORT_DIR"
)

var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds the run options of a tournament simulation.
type Config struct {
	// Zero picks a seed from the clock
	Seed int64

	ThirdPlaceMatch bool
	RankByLosses    bool

	// Upper limit of bracket entrants, 3 to 8
	BracketSize int

	LogLevel logrus.Level

	// Where the CSV and JSON exports are written. Empty disables
	// the exports.
	ExportDir string
}

func Default() Config {
	defaults := internal.DefaultSettings()
	return Config{
		ThirdPlaceMatch: defaults.ThirdPlaceMatch,
		RankByLosses:    defaults.Ranking.ByLosses,
		BracketSize:     defaults.MaxBracketSize,
		LogLevel:        logrus.InfoLevel,
	}
}

// Loads a .env file from the working directory when there is one
// and reads the configuration from the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// Reads the configuration with the given lookup. Unset
// variables keep their default.
func FromEnv(lookup func(key string) (string, bool)) (Config, error) {
	config := Default()

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvSeed, v, err)
		}
		config.Seed = seed
	}

	if v, ok := lookup(EnvThirdPlace); ok {
		thirdPlace, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvThirdPlace, v, err)
		}
		config.ThirdPlaceMatch = thirdPlace
	}

	if v, ok := lookup(EnvRankByLosses); ok {
		byLosses, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvRankByLosses, v, err)
		}
		config.RankByLosses = byLosses
	}

	if v, ok := lookup(EnvBracketSize); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvBracketSize, v, err)
		}
		minSize := internal.DefaultSettings().MinBracketSize
		if size < minSize || size > 8 {
			return Config{}, fmt.Errorf("%w: %s=%d is not between %d and 8", ErrInvalidValue, EnvBracketSize, size, minSize)
		}
		config.BracketSize = size
	}

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, EnvLogLevel, v, err)
		}
		config.LogLevel = level
	}

	if v, ok := lookup(EnvExportDir); ok {
		config.ExportDir = v
	}

	return config, nil
}

// Creates the tournament settings. The logger is attached as is.
func (c Config) Settings(logger logrus.FieldLogger) internal.Settings {
	settings := internal.DefaultSettings()
	settings.RngSeed = c.Seed
	settings.ThirdPlaceMatch = c.ThirdPlaceMatch
	settings.Ranking.ByLosses = c.RankByLosses
	settings.MaxBracketSize = c.BracketSize
	settings.Logger = logger
	return settings
}
