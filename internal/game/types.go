// internal/game/types.go
//
// Core type definitions for a solving session.
// Defines:
//   - State: coarse progress of a session (solving/solved).
//   - Turn: one guess, its result, and how many candidates it left.
//   - Session: the constraint knowledge and candidate list for one hidden target.

package game

import (
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// State reports whether the target has been pinned down.
type State string

const (
	StateSolving State = "solving"
	StateSolved  State = "solved" // exactly one candidate remains
)

// Turn records one applied guess.
type Turn struct {
	Guess     words.Word `json:"guess"`
	Result    string     `json:"result"` // e.g. "GYBBY"
	Remaining int        `json:"remaining"`
}

// Session holds the state of one solving session.
// Constraints only grow; Candidates only shrink.
type Session struct {
	ID          string         // Unique session identifier (random hex string).
	Length      int            // Word length.
	Constraints constraint.Set // Everything learned so far.
	Candidates  []words.Word   // Targets still consistent with Constraints.
	Turns       []Turn         // Guesses applied so far.
	StartedAt   time.Time
}
