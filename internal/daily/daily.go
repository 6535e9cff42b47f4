// internal/daily/daily.go
//
// Daily puzzle.
// Responsibilities:
//   - Deterministic target selection per UTC date: HMAC(salt, YYYY-MM-DD)
//     modulo the number of targets, so every instance with the same salt and
//     lexicon agrees on the day's word.
//   - Auto-solving the day's target with a fresh session.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// MaxTurns bounds an automatic daily solve.
const MaxTurns = 10

// Puzzle is the target of one day.
type Puzzle struct {
	Date   string     `json:"date"`
	Index  int        `json:"wordIndex"`
	Answer words.Word `json:"-"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// For picks the puzzle of the day containing t.
func For(t time.Time, salt string, targets *words.Lexicon) Puzzle {
	idx := WordIndex(t, salt, targets.Len())
	p := Puzzle{Date: DateKey(t), Index: idx}
	if targets.Len() > 0 {
		p.Answer = targets.At(idx)
	}
	return p
}

// Solve plays a new session against the puzzle's answer.
func Solve(p Puzzle, lists *words.Lists) (*game.Session, error) {
	s, err := game.New(lists.Targets)
	if err != nil {
		return nil, err
	}
	if _, err := s.AutoSolve(lists.Guesses.Words(), p.Answer, MaxTurns); err != nil {
		return s, err
	}
	return s, nil
}
