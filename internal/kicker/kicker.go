// Package kicker scores the adversary's best escape after a pair of guesses.
//
// The "kicker" is a letter of the second guess the adversary keeps in its
// bucket while staying clear of every other letter of that guess. A lower
// score leaves the adversary a smaller escape.
package kicker

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Evaluator scores second given the targets already eliminated by the
// first guess of the pair. Implementations are safe for concurrent use.
type Evaluator interface {
	Score(firstExcluded *bitset.BitSet, second words.Word) int
}

// New returns the naive or the exact evaluator.
func New(naive bool, targets []words.Word, table freq.Table) Evaluator {
	if naive {
		return Naive{Freq: table}
	}
	return NewExact(targets)
}

// Naive approximates the escape by the target frequency (counted once per
// word) of the most common letter in second. firstExcluded is ignored.
type Naive struct {
	Freq freq.Table
}

func (n Naive) Score(_ *bitset.BitSet, second words.Word) int {
	return n.Freq.Max(second.Letters())
}

// Exact counts the escape bucket precisely: for each kicker letter k of
// second, the targets not eliminated by the first guess that contain k and
// none of the other letters of second. The score is the largest such count.
type Exact struct {
	masks []words.LetterSet
}

// NewExact precomputes the target letter masks.
func NewExact(targets []words.Word) *Exact {
	masks := make([]words.LetterSet, len(targets))
	for i, t := range targets {
		masks[i] = t.Letters()
	}
	return &Exact{masks: masks}
}

func (e *Exact) Score(firstExcluded *bitset.BitSet, second words.Word) int {
	letters := second.Letters()
	best := 0
	for _, k := range letters.Letters() {
		kick := words.LetterBit(k)
		rest := letters &^ kick
		n := 0
		for i, m := range e.masks {
			if m&kick == 0 || m.Intersects(rest) {
				continue
			}
			if firstExcluded != nil && firstExcluded.Test(uint(i)) {
				continue
			}
			n++
		}
		best = max(best, n)
	}
	return best
}
