// Package constraint holds what is known about a hidden target word and
// filters candidate lists against it.
package constraint

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Placement is a letter at a 0-based position.
type Placement struct {
	Letter byte
	Pos    int
}

// PlacementSet is a set of placements.
type PlacementSet map[Placement]struct{}

// Has reports whether p is in the set.
func (s PlacementSet) Has(p Placement) bool {
	_, ok := s[p]
	return ok
}

// Set is the accumulated knowledge about a target.
// A zero Set matches every word.
type Set struct {
	Absent     words.LetterSet // letters not in the target
	Present    words.LetterSet // letters in the target
	Disallowed PlacementSet    // letter is in the target but not at Pos
	Known      PlacementSet    // letter is at Pos
}

// Derive turns one guess and its result into a constraint set.
// Green adds the letter to Present and Known, Yellow to Present and
// Disallowed, Black to Absent.
func Derive(guess words.Word, result []Mark, length int) (Set, error) {
	if len(guess) != length || len(result) != length {
		return Set{}, fmt.Errorf("%w: guess %q has %d letters and %d marks, want %d",
			ErrLengthMismatch, guess, len(guess), len(result), length)
	}
	var c Set
	for i, m := range result {
		letter := guess[i]
		if !words.IsLetter(letter) {
			return Set{}, fmt.Errorf("%w: %q", words.ErrBadWord, guess)
		}
		switch m {
		case Green:
			c.Present = c.Present.Add(letter)
			c.Known = addPlacement(c.Known, Placement{letter, i})
		case Yellow:
			c.Present = c.Present.Add(letter)
			c.Disallowed = addPlacement(c.Disallowed, Placement{letter, i})
		case Black:
			c.Absent = c.Absent.Add(letter)
		default:
			return Set{}, fmt.Errorf("%w: unknown mark %q at position %d", ErrBadResult, m, i)
		}
	}
	return c, nil
}

// Merge returns the field-wise union of a and b. Neither input is modified.
func Merge(a, b Set) Set {
	return Set{
		Absent:     a.Absent.Union(b.Absent),
		Present:    a.Present.Union(b.Present),
		Disallowed: unionPlacements(a.Disallowed, b.Disallowed),
		Known:      unionPlacements(a.Known, b.Known),
	}
}

// Matches reports whether w satisfies every constraint in c.
func (c Set) Matches(w words.Word) bool {
	letters := w.Letters()
	if letters.Intersects(c.Absent) || !letters.ContainsAll(c.Present) {
		return false
	}
	for p := range c.Disallowed {
		if p.Pos < len(w) && w[p.Pos] == p.Letter {
			return false
		}
	}
	for p := range c.Known {
		if p.Pos >= len(w) || w[p.Pos] != p.Letter {
			return false
		}
	}
	return true
}

// Filter keeps the words of ws that match c, in order.
func Filter(ws []words.Word, c Set) []words.Word {
	return lo.Filter(ws, func(w words.Word, _ int) bool { return c.Matches(w) })
}

// Pattern renders the known placements, e.g. "C?A??".
func (c Set) Pattern(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = '?'
	}
	for p := range c.Known {
		if p.Pos < length {
			b[p.Pos] = p.Letter
		}
	}
	return string(b)
}

func addPlacement(s PlacementSet, p Placement) PlacementSet {
	if s == nil {
		s = PlacementSet{}
	}
	s[p] = struct{}{}
	return s
}

// unionPlacements returns a fresh set, or nil when both inputs are empty so
// that merging empty sets stays equal to the zero Set.
func unionPlacements(a, b PlacementSet) PlacementSet {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(PlacementSet, len(a)+len(b))
	for p := range a {
		out[p] = struct{}{}
	}
	for p := range b {
		out[p] = struct{}{}
	}
	return out
}
