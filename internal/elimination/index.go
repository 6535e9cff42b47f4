// Package elimination precomputes, for every guess word, which targets it
// eliminates under the Absurdle rule: a target sharing any letter with the
// guess is no longer part of the adversary's hardest bucket.
package elimination

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var ErrNoTargets = errors.New("elimination: target lexicon is empty")

// Index maps each lexicon position to the set of target indices it
// eliminates. It is read-only once built and safe for concurrent use.
type Index struct {
	lexicon  []words.Word
	targets  int
	excluded []*bitset.BitSet
	pos      map[words.Word]int
}

// Build computes the index. Rows are split across workers goroutines
// (runtime.NumCPU() when workers <= 0).
func Build(ctx context.Context, lexicon, targets []words.Word, workers int) (*Index, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	targetMasks := make([]words.LetterSet, len(targets))
	for i, t := range targets {
		targetMasks[i] = t.Letters()
	}

	idx := &Index{
		lexicon:  lexicon,
		targets:  len(targets),
		excluded: make([]*bitset.BitSet, len(lexicon)),
		pos:      make(map[words.Word]int, len(lexicon)),
	}
	for i, w := range lexicon {
		if _, ok := idx.pos[w]; !ok {
			idx.pos[w] = i
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for t := 0; t < workers; t++ {
		t := t
		g.Go(func() error {
			for i := t; i < len(lexicon); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				idx.excluded[i] = eliminated(lexicon[i].Letters(), targetMasks)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Int("lexicon", len(lexicon)).Int("targets", len(targets)).
		Int("workers", workers).Msg("elimination-index-built")
	return idx, nil
}

// eliminated returns the targets sharing at least one letter with guess.
func eliminated(guess words.LetterSet, targetMasks []words.LetterSet) *bitset.BitSet {
	b := bitset.New(uint(len(targetMasks)))
	for i, m := range targetMasks {
		if m.Intersects(guess) {
			b.Set(uint(i))
		}
	}
	return b
}

// Targets is the size of the target lexicon the index was built for.
func (x *Index) Targets() int { return x.targets }

// Len is the number of lexicon words indexed.
func (x *Index) Len() int { return len(x.excluded) }

// Excluded returns the targets eliminated by lexicon word i.
func (x *Index) Excluded(i int) *bitset.BitSet { return x.excluded[i] }

// Lookup returns the targets eliminated by w.
func (x *Index) Lookup(w words.Word) (*bitset.BitSet, bool) {
	i, ok := x.pos[w]
	if !ok {
		return nil, false
	}
	return x.excluded[i], true
}

// Count is the number of targets lexicon word i eliminates.
func (x *Index) Count(i int) int { return int(x.excluded[i].Count()) }

// UnionCount is |Excluded(i) ∪ Excluded(j)|.
func (x *Index) UnionCount(i, j int) int {
	return int(x.excluded[i].UnionCardinality(x.excluded[j]))
}

// Entry is a lexicon word and how many targets it eliminates.
type Entry struct {
	Word     words.Word `json:"word"`
	Excluded int        `json:"excluded"`
}

// MostExcluding lists the n lexicon words eliminating the most targets,
// most first; ties keep lexicon order. n <= 0 lists every word.
func (x *Index) MostExcluding(n int) []Entry {
	out := make([]Entry, len(x.lexicon))
	for i, w := range x.lexicon {
		out[i] = Entry{Word: w, Excluded: x.Count(i)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Excluded > out[j].Excluded })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
