// internal/game/engine.go
//
// Session engine for interactive solving.
// Responsibilities:
//   - Start sessions over a target lexicon.
//   - Apply guess/result pairs: derive constraints, merge, filter candidates.
//   - Suggest next guesses from letter frequency over the remaining candidates.
//   - Score guesses against a known answer (two-pass algorithm) so a session
//     can be played automatically.
//
// Notes:
//   - A turn that would leave no candidates is rejected and not recorded.
//   - Once one candidate remains the session is solved and takes no more turns.
//   - randomID() is a compact hex identifier for correlating sessions.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/rank"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	ErrNoCandidates = errors.New("game: no candidate words remain")
	ErrSolved       = errors.New("game: session already solved")
	ErrTurnLimit    = errors.New("game: turn limit reached")
)

// New starts a session whose candidates are every target word.
func New(targets *words.Lexicon) (*Session, error) {
	if targets.Len() == 0 {
		return nil, ErrNoCandidates
	}
	return &Session{
		ID:         randomID(),
		Length:     targets.WordLength(),
		Candidates: append([]words.Word(nil), targets.Words()...),
		StartedAt:  time.Now().UTC(),
	}, nil
}

// State reports whether the session is still narrowing down the target.
func (s *Session) State() State {
	if len(s.Candidates) == 1 {
		return StateSolved
	}
	return StateSolving
}

// Answer returns the target once exactly one candidate remains.
func (s *Session) Answer() (words.Word, bool) {
	if len(s.Candidates) != 1 {
		return "", false
	}
	return s.Candidates[0], true
}

// Apply validates a typed guess and result string (e.g. "GYBBY") and applies them.
func (s *Session) Apply(guess, result string) (State, error) {
	w, err := words.Normalize(guess, s.Length)
	if err != nil {
		return s.State(), err
	}
	marks, err := constraint.ParseResult(result, s.Length)
	if err != nil {
		return s.State(), err
	}
	return s.ApplyMarks(w, marks)
}

// ApplyMarks merges the constraints derived from one guess and filters the
// candidates. The session is left unchanged on error.
func (s *Session) ApplyMarks(guess words.Word, marks []constraint.Mark) (State, error) {
	if s.State() == StateSolved {
		return s.State(), ErrSolved
	}
	derived, err := constraint.Derive(guess, marks, s.Length)
	if err != nil {
		return s.State(), err
	}
	merged := constraint.Merge(s.Constraints, derived)
	remaining := constraint.Filter(s.Candidates, merged)
	if len(remaining) == 0 {
		return s.State(), fmt.Errorf("%w after %s %s", ErrNoCandidates, guess, constraint.FormatResult(marks))
	}

	s.Constraints = merged
	s.Candidates = remaining
	s.Turns = append(s.Turns, Turn{Guess: guess, Result: constraint.FormatResult(marks), Remaining: len(remaining)})
	return s.State(), nil
}

// Suggest ranks guesses by the frequency of letters not yet known present or
// absent, counted over the remaining candidates, and returns the top entries.
func (s *Session) Suggest(guesses []words.Word) []rank.Scored {
	tbl := freq.Build(s.Candidates, true)
	return rank.Top(guesses, &tbl, s.Constraints.Present, s.Constraints.Absent)
}

// AutoSolve plays the session against a known answer. The final turn is the
// answer itself. It returns the number of turns played.
func (s *Session) AutoSolve(guesses []words.Word, answer words.Word, maxTurns int) (int, error) {
	for len(s.Turns) < maxTurns {
		if w, ok := s.Answer(); ok {
			if last := len(s.Turns) - 1; last < 0 || s.Turns[last].Guess != w {
				s.Turns = append(s.Turns, Turn{Guess: w, Result: strings.Repeat("G", s.Length), Remaining: 1})
			}
			return len(s.Turns), nil
		}
		guess := s.pick(guesses)
		if _, err := s.ApplyMarks(guess, Feedback(answer, guess)); err != nil {
			return len(s.Turns), err
		}
	}
	return len(s.Turns), ErrTurnLimit
}

// pick guesses a candidate once two or fewer remain, otherwise the best
// untried suggestion with distinct letters. Candidates are only guessed when
// consistent: a wrong guess with a repeated letter can mark that letter both
// absent and present, which no candidate satisfies.
func (s *Session) pick(guesses []words.Word) words.Word {
	if len(s.Candidates) <= 2 {
		for _, c := range s.Candidates {
			if s.consistent(c) {
				return c
			}
		}
	}
	tried := make(map[words.Word]bool, len(s.Turns))
	for _, t := range s.Turns {
		tried[t.Guess] = true
	}
	for _, sc := range s.Suggest(guesses) {
		if sc.Score > 0 && !tried[sc.Word] && sc.Word.HasDistinctLetters() {
			return sc.Word
		}
	}
	for _, c := range s.Candidates {
		if s.consistent(c) {
			return c
		}
	}
	return s.Candidates[0]
}

// consistent reports whether every candidate still satisfies the
// constraints derived from its own feedback to guess g.
func (s *Session) consistent(g words.Word) bool {
	for _, c := range s.Candidates {
		d, err := constraint.Derive(g, Feedback(c, g), s.Length)
		if err != nil || !constraint.Merge(s.Constraints, d).Matches(c) {
			return false
		}
	}
	return true
}

// Feedback scores guess against answer with the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Green.
//   - Count remaining (non-green) answer letters.
//
// Pass 2:
//   - For each non-green guess letter: if there is remaining count for that
//     letter, mark Yellow and decrement; otherwise mark Black.
func Feedback(answer, guess words.Word) []constraint.Mark {
	n := len(guess)
	res := make([]constraint.Mark, n)
	var counts [words.AlphabetSize]int

	// First pass: greens and counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if i < len(answer) && guess[i] == answer[i] {
			res[i] = constraint.Green
		} else if i < len(answer) && words.IsLetter(answer[i]) {
			counts[answer[i]-'A']++
		}
	}

	// Second pass: yellows and blacks for non-green tiles.
	for i := 0; i < n; i++ {
		if res[i] == constraint.Green {
			continue
		}
		c := guess[i]
		if words.IsLetter(c) && counts[c-'A'] > 0 {
			res[i] = constraint.Yellow
			counts[c-'A']--
		} else {
			res[i] = constraint.Black
		}
	}
	return res
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
