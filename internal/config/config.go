// internal/config/config.go
//
// Runtime configuration.
// Values come from, in order of precedence:
//   - command-line flags (-search-workers 8),
//   - environment variables (SEARCH_WORKERS=8), with a .env file loaded first,
//   - the defaults below.
//
// Every flag doubles as an environment variable: upper-cased, with '-'
// replaced by '_'.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DevSecret is the JWT secret used when none is configured.
const DevSecret = "dev_secret_change_me"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	LogLevel string
	Port     string
	DBPath   string

	WordsAllowedFile string
	WordsAnswersFile string
	WordLength       int

	SearchWorkers       int
	SearchMaxExcluded   int
	SearchNaiveKicker   bool
	SearchProgressEvery int64
	SearchTimeout       time.Duration

	JWTSecret      string
	JWTExpiresDays int
	DailySalt      string
	ClientOrigin   string
}

// Load reads .env (a missing file is fine), then parses args for the named
// command. extra, when non-nil, registers command-specific flags on the same
// set before parsing.
func Load(name string, args []string, extra func(fs *flag.FlagSet)) (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", "info", "zerolog level: trace, debug, info, warn, error")
	fs.StringVar(&c.Port, "port", "5175", "HTTP listen port")
	fs.StringVar(&c.DBPath, "db-path", "./data/solver.db", "SQLite history database")

	fs.StringVar(&c.WordsAllowedFile, "words-allowed-file", "", "guess lexicon, one word per line (embedded list when empty)")
	fs.StringVar(&c.WordsAnswersFile, "words-answers-file", "", "target lexicon, one word per line (embedded list when empty)")
	fs.IntVar(&c.WordLength, "word-length", words.DefaultLength, "letters per word")

	fs.IntVar(&c.SearchWorkers, "search-workers", 0, "pair search goroutines (number of CPUs when 0)")
	fs.IntVar(&c.SearchMaxExcluded, "search-max-excluded", 0, "skip pairs eliminating more targets than this (0 disables)")
	fs.BoolVar(&c.SearchNaiveKicker, "search-naive-kicker", false, "score kickers by letter frequency instead of exact bucket size")
	fs.Int64Var(&c.SearchProgressEvery, "search-progress-every", 100000, "pairs between progress reports")
	fs.DurationVar(&c.SearchTimeout, "search-timeout", 10*time.Minute, "upper bound on one HTTP pair search")

	fs.StringVar(&c.JWTSecret, "jwt-secret", DevSecret, "HS256 secret for API tokens")
	fs.IntVar(&c.JWTExpiresDays, "jwt-expires-days", 14, "token lifetime in days")
	fs.StringVar(&c.DailySalt, "daily-salt", "local_dev_salt", "salt for the daily target")
	fs.StringVar(&c.ClientOrigin, "client-origin", "http://localhost:5173", "allowed CORS origin")
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.WordLength <= 0 || c.WordLength > words.AlphabetSize:
		return fmt.Errorf("%w: word length %d", ErrInvalid, c.WordLength)
	case c.SearchMaxExcluded < 0:
		return fmt.Errorf("%w: search max excluded %d", ErrInvalid, c.SearchMaxExcluded)
	case c.SearchProgressEvery < 0:
		return fmt.Errorf("%w: search progress every %d", ErrInvalid, c.SearchProgressEvery)
	case c.SearchTimeout <= 0:
		return fmt.Errorf("%w: search timeout %s", ErrInvalid, c.SearchTimeout)
	case c.JWTExpiresDays <= 0:
		return fmt.Errorf("%w: jwt expires days %d", ErrInvalid, c.JWTExpiresDays)
	}
	return nil
}

// Words is the lexicon source described by c.
func (c *Config) Words() words.Source {
	return words.Source{
		AnswersPath: c.WordsAnswersFile,
		AllowedPath: c.WordsAllowedFile,
		Length:      c.WordLength,
	}
}

// TokenTTL is the JWT lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
