// internal/constraint/mark.go
//
// Per-letter feedback for a guess.
//   - Green:  letter is correct and in the correct position.
//   - Yellow: letter exists in the target but at a different position.
//   - Black:  letter does not exist in the target.
//
// Results are written as one character per position, e.g. "GYBBY".

package constraint

import (
	"errors"
	"fmt"
	"strings"
)

// Mark represents the evaluation result for a single letter in a guess.
type Mark string

const (
	Green  Mark = "green"
	Yellow Mark = "yellow"
	Black  Mark = "black"
)

var (
	ErrBadResult      = errors.New("constraint: malformed result")
	ErrLengthMismatch = errors.New("constraint: length mismatch")
)

// Code is the single-character form of m ('G', 'Y' or 'B').
func (m Mark) Code() byte {
	switch m {
	case Green:
		return 'G'
	case Yellow:
		return 'Y'
	case Black:
		return 'B'
	}
	return '?'
}

// ParseResult reads a result string such as "GYBBY".
// It must have exactly length characters, each one of G, Y or B (any case).
func ParseResult(s string, length int) ([]Mark, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != length {
		return nil, fmt.Errorf("%w: %q has %d marks, want %d", ErrBadResult, s, len(s), length)
	}
	out := make([]Mark, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G':
			out[i] = Green
		case 'Y':
			out[i] = Yellow
		case 'B':
			out[i] = Black
		default:
			return nil, fmt.Errorf("%w: %q at position %d, want G, Y or B", ErrBadResult, s[i], i)
		}
	}
	return out, nil
}

// FormatResult is the inverse of ParseResult.
func FormatResult(marks []Mark) string {
	b := make([]byte, len(marks))
	for i, m := range marks {
		b[i] = m.Code()
	}
	return string(b)
}
