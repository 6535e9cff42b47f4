// internal/absurdle/search.go
//
// Pair search for the adversarial variant (Absurdle).
//
// The adversary keeps the largest bucket of targets consistent with the
// guesses. A pair of guesses with ten distinct letters eliminates every
// target sharing a letter with either word; the search looks for the pair
// eliminating the most targets while leaving the smallest kicker escape.
//
// Rules, applied per unordered pair (first, second) of promising words,
// first being the earlier word in lexicon order:
//   1. skip pairs sharing a letter;
//   2. excluded = |E[first] ∪ E[second]|;
//   3. skip pairs eliminating every target (the adversary must keep an escape);
//   4. skip pairs above MaxExcluded when it is non-zero;
//   5. score the kicker on second when the pair can still win;
//   6. keep the best by (excluded desc, kicker asc, later pair first).
//
// Rows of the pair enumeration are dealt to worker goroutines. Each worker
// folds a local best and merges it into the shared best under a mutex with
// the same comparator, so the result does not depend on scheduling.
// Progress callbacks run under that mutex and must return quickly.

package absurdle

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/elimination"
	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/kicker"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultProgressEvery is the progress cadence in enumerated pairs.
const DefaultProgressEvery = 100000

var (
	ErrNoPair         = errors.New("absurdle: no candidate pair")
	ErrLengthMismatch = errors.New("absurdle: lexicons have different word lengths")
	ErrBadParams      = errors.New("absurdle: invalid search parameters")
)

// Result is the best pair found.
type Result struct {
	First    words.Word `json:"first"`
	Second   words.Word `json:"second"`
	Excluded int        `json:"excluded"`
	Kicker   int        `json:"kicker"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s+%s excluded=%d kicker=%d", r.First, r.Second, r.Excluded, r.Kicker)
}

// Params controls one search.
type Params struct {
	MaxExcluded   int  // skip pairs eliminating more targets; 0 disables
	NaiveKicker   bool // frequency proxy instead of the exact bucket count
	Workers       int  // goroutines; runtime.NumCPU() when <= 0
	ProgressEvery int64
	Progress      func(Progress) // optional, advisory only
}

// Progress is reported every ProgressEvery enumerated pairs.
type Progress struct {
	Pairs int64  // pairs enumerated so far
	Total int64  // pairs in the whole enumeration
	Best  Result // running best, zero until Found
	Found bool
}

// Searcher holds the per-session precomputed state. It is immutable after
// NewSearcher and may run several searches, concurrently if needed.
type Searcher struct {
	lexicon   []words.Word
	targets   []words.Word
	promising []int             // lexicon positions of words with distinct letters
	masks     []words.LetterSet // letters of each promising word
	index     *elimination.Index
	freq      freq.Table // unique letter frequency over targets
	exact     *kicker.Exact
}

// NewSearcher precomputes the elimination index and kicker tables.
func NewSearcher(ctx context.Context, guesses, targets *words.Lexicon, workers int) (*Searcher, error) {
	if targets.Len() == 0 {
		return nil, elimination.ErrNoTargets
	}
	if guesses.WordLength() != targets.WordLength() {
		return nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, guesses.WordLength(), targets.WordLength())
	}

	s := &Searcher{
		lexicon: guesses.Words(),
		targets: targets.Words(),
		freq:    freq.Build(targets.Words(), true),
		exact:   kicker.NewExact(targets.Words()),
	}
	for i, w := range s.lexicon {
		if w.HasDistinctLetters() {
			s.promising = append(s.promising, i)
			s.masks = append(s.masks, w.Letters())
		}
	}

	start := time.Now()
	idx, err := elimination.Build(ctx, s.lexicon, s.targets, workers)
	if err != nil {
		return nil, fmt.Errorf("build elimination index: %w", err)
	}
	s.index = idx
	log.Info().Int("lexicon", len(s.lexicon)).Int("targets", len(s.targets)).
		Int("promising", len(s.promising)).Dur("elapsed", time.Since(start)).Msg("searcher-ready")
	return s, nil
}

// Index exposes the elimination index.
func (s *Searcher) Index() *elimination.Index { return s.index }

// Promising lists the words the search draws pairs from, in lexicon order.
func (s *Searcher) Promising() []words.Word {
	out := make([]words.Word, len(s.promising))
	for k, i := range s.promising {
		out[k] = s.lexicon[i]
	}
	return out
}

// TotalPairs is the number of unordered pairs of promising words.
func (s *Searcher) TotalPairs() int64 {
	n := int64(len(s.promising))
	return n * (n - 1) / 2
}

// candidate is a Result plus its position in the canonical enumeration
// (row i, column j over the promising words).
type candidate struct {
	Result
	i, j int
	ok   bool
}

// better reports whether a should replace b as the running best.
func better(a, b candidate) bool {
	switch {
	case !a.ok:
		return false
	case !b.ok:
		return true
	case a.Excluded != b.Excluded:
		return a.Excluded > b.Excluded
	case a.Kicker != b.Kicker:
		return a.Kicker < b.Kicker
	case a.i != b.i:
		return a.i > b.i
	default:
		return a.j > b.j
	}
}

// Search runs the pair search. It returns ErrNoPair when no pair passes the
// filters and ctx.Err() when cancelled.
func (s *Searcher) Search(ctx context.Context, p Params) (Result, error) {
	if p.MaxExcluded < 0 {
		return Result{}, fmt.Errorf("%w: max excluded %d", ErrBadParams, p.MaxExcluded)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	every := p.ProgressEvery
	if every == 0 {
		every = DefaultProgressEvery
	}

	var eval kicker.Evaluator = s.exact
	if p.NaiveKicker {
		eval = kicker.Naive{Freq: s.freq}
	}

	n := len(s.promising)
	total := s.TotalPairs()
	start := time.Now()
	log.Info().Int("promising", n).Int64("pairs", total).Int("workers", workers).
		Int("max-excluded", p.MaxExcluded).Bool("naive-kicker", p.NaiveKicker).Msg("pair-search-start")

	var (
		mu    sync.Mutex // guards best and pairs
		best  candidate
		pairs int64
	)

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan int)
	g.Go(func() error {
		defer close(rows)
		for i := 0; i < n-1; i++ {
			select {
			case rows <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local candidate
			for i := range rows {
				if err := gctx.Err(); err != nil {
					return err
				}
				local = s.searchRow(i, p.MaxExcluded, eval, local)

				mu.Lock()
				done := int64(n - 1 - i)
				pairs += done
				if better(local, best) {
					best = local
				} else {
					// carry the shared bound into later rows
					local = best
				}
				if p.Progress != nil && every > 0 && (pairs-done)/every != pairs/every {
					p.Progress(Progress{Pairs: pairs, Total: total, Best: best.Result, Found: best.ok})
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if !best.ok {
		return Result{}, ErrNoPair
	}
	log.Info().Str("best", best.Result.String()).Dur("elapsed", time.Since(start)).Msg("pair-search-done")
	return best.Result, nil
}

// searchRow folds every pair (promising[i], promising[j]), j > i, into best.
func (s *Searcher) searchRow(i, maxExcluded int, eval kicker.Evaluator, best candidate) candidate {
	first := s.promising[i]
	firstMask := s.masks[i]
	firstExcluded := s.index.Excluded(first)
	all := s.index.Targets()

	for j := i + 1; j < len(s.promising); j++ {
		if firstMask.Intersects(s.masks[j]) {
			continue
		}
		second := s.promising[j]
		excluded := s.index.UnionCount(first, second)
		if excluded == all {
			continue
		}
		if maxExcluded != 0 && excluded > maxExcluded {
			continue
		}
		if best.ok && excluded < best.Excluded {
			continue
		}
		c := candidate{
			Result: Result{
				First:    s.lexicon[first],
				Second:   s.lexicon[second],
				Excluded: excluded,
				Kicker:   eval.Score(firstExcluded, s.lexicon[second]),
			},
			i:  i,
			j:  j,
			ok: true,
		}
		if better(c, best) {
			best = c
		}
	}
	return best
}
