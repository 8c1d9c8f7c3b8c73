// meta/meta.go
package meta

import (
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TRIES defines the number of MCTS tries per move.
const TRIES = 300

// GAMES defines the number of games per match up.
const GAMES = 100

// SEED defines the seed of the bots' randomness.
const SEED = 1

const LOG_LEVEL = "info"

const OUT_DIR = "experiments"

// Environment keys
const (
	EnvTries    = "CONNECT4_TRIES"
	EnvGames    = "CONNECT4_GAMES"
	EnvSeed     = "CONNECT4_SEED"
	EnvLogLevel = "CONNECT4_LOG_LEVEL"
	EnvOutDir   = "CONNECT4_OUT_DIR"
)

type Config struct {
	Tries    int
	Games    int
	Seed     uint64
	LogLevel string
	OutDir   string
}

// Load reads the configuration from the environment, after loading the
// given .env files (".env" when none are given) if they exist.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	return Config{
		Tries:    GetEnvAsInt(EnvTries, TRIES),
		Games:    GetEnvAsInt(EnvGames, GAMES),
		Seed:     GetEnvAsUint64(EnvSeed, SEED),
		LogLevel: GetEnv(EnvLogLevel, LOG_LEVEL),
		OutDir:   GetEnv(EnvOutDir, OUT_DIR),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		log.Warn().Msgf("invalid unsigned value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// SetupLogging sends human readable logs to out at the given level, falling
// back to info for unknown levels.
func SetupLogging(out io.Writer, level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	return parsed
}
