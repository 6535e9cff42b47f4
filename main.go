// main.go
//
// Entrypoint for the solver.
// Subcommands:
//   - serve     HTTP API (sessions, absurdle, daily)
//   - play      interactive solving on stdin/stdout
//   - absurdle  best guess pair search with a progress bar
//   - token     mint an API token for POST /absurdle/search
//
// Every flag also reads from the environment (SEARCH_WORKERS=8 is the same as
// -search-workers 8), after .env is loaded.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/absurdle"
	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/play"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const usage = `usage: solver <command> [flags]

commands:
  serve     run the HTTP API
  play      solve a puzzle interactively
  absurdle  search the best opening guess pair for Absurdle
  token     print an API token
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "play":
		err = runPlay(ctx, args)
	case "absurdle":
		err = runAbsurdle(ctx, args)
	case "token":
		err = runToken(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("failed")
	}
}

// setupLogging applies the level and, for interactive commands, switches to
// the human-readable console writer.
func setupLogging(level string, console bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func loadWords(cfg *config.Config) (*words.Lists, error) {
	lists, err := words.Load(cfg.Words())
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	a, g := lists.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Int("length", cfg.WordLength).Msg("word lists loaded")
	return lists, nil
}

func runServe(args []string) error {
	cfg, err := config.Load("serve", args, nil)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, false)
	if cfg.JWTSecret == config.DevSecret {
		log.Warn().Msg("JWT_SECRET not set; using the development secret")
	}

	lists, err := loadWords(cfg)
	if err != nil {
		return err
	}
	var db *history.DB
	if cfg.DBPath != "" {
		if db, err = history.Open(context.Background(), cfg.DBPath); err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
	}

	srv := httpserver.New(cfg, lists, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Port).Msg("starting solver")
	return srv.Start(":" + cfg.Port)
}

func runPlay(ctx context.Context, args []string) error {
	cfg, err := config.Load("play", args, nil)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, true)
	lists, err := loadWords(cfg)
	if err != nil {
		return err
	}

	var record play.Recorder
	if cfg.DBPath != "" {
		db, err := history.Open(ctx, cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Msg("history disabled")
		} else {
			defer db.Close()
			record = func(ctx context.Context, s *game.Session) {
				if err := db.SaveSession(ctx, s); err != nil {
					log.Warn().Err(err).Str("session", s.ID).Msg("record session")
				}
			}
		}
	}

	_, err = play.New(lists, os.Stdin, os.Stdout, record).Run(ctx)
	return err
}

func runAbsurdle(ctx context.Context, args []string) error {
	var (
		maxExcluded int
		naive       bool
		top         int
	)
	cfg, err := config.Load("absurdle", args, func(fs *flag.FlagSet) {
		fs.IntVar(&maxExcluded, "max-excluded", 0, "skip pairs eliminating more targets (overrides -search-max-excluded)")
		fs.BoolVar(&naive, "naive-kicker", false, "score kickers by letter frequency")
		fs.IntVar(&top, "top", 0, "also print the N words eliminating the most targets")
	})
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, true)
	if maxExcluded < 0 {
		return fmt.Errorf("%w: max excluded %d", config.ErrInvalid, maxExcluded)
	}
	if maxExcluded > 0 {
		cfg.SearchMaxExcluded = maxExcluded
	}
	cfg.SearchNaiveKicker = cfg.SearchNaiveKicker || naive

	lists, err := loadWords(cfg)
	if err != nil {
		return err
	}
	sr, err := absurdle.NewSearcher(ctx, lists.Guesses, lists.Targets, cfg.SearchWorkers)
	if err != nil {
		return err
	}

	if top > 0 {
		for i, e := range sr.Index().MostExcluding(top) {
			fmt.Printf("%3d. %s %d\n", i+1, e.Word, e.Excluded)
		}
	}

	bar := progressbar.Default(sr.TotalPairs())
	res, err := sr.Search(ctx, absurdle.Params{
		MaxExcluded:   cfg.SearchMaxExcluded,
		NaiveKicker:   cfg.SearchNaiveKicker,
		Workers:       cfg.SearchWorkers,
		ProgressEvery: cfg.SearchProgressEvery,
		Progress: func(p absurdle.Progress) {
			_ = bar.Set64(p.Pairs)
			if p.Found {
				bar.Describe(fmt.Sprintf("Best: %s", p.Best))
			}
		},
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	fmt.Printf("Done, best guess pair: %s, %s (excluded %d of %d, kicker %d)\n",
		res.First, res.Second, res.Excluded, lists.Targets.Len(), res.Kicker)
	return nil
}

func runToken(args []string) error {
	var subject string
	cfg, err := config.Load("token", args, func(fs *flag.FlagSet) {
		fs.StringVar(&subject, "subject", "operator", "token subject")
	})
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, true)
	if cfg.JWTSecret == config.DevSecret {
		log.Warn().Msg("JWT_SECRET not set; token only valid against the development secret")
	}
	tok, exp, err := auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL()).Sign(subject)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	log.Info().Time("expires", exp).Str("subject", subject).Msg("token issued")
	return nil
}
