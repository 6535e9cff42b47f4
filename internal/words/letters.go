package words

import (
	"math/bits"
	"strings"
)

// AlphabetSize is the number of letters words may be built from (A–Z).
const AlphabetSize = 26

// LetterSet is a set of letters A–Z stored as a bitmask (bit 0 = 'A').
type LetterSet uint32

// IsLetter reports whether c is an uppercase ASCII letter.
func IsLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

// LetterBit returns the singleton set {c}, or the empty set for non-letters.
func LetterBit(c byte) LetterSet {
	if !IsLetter(c) {
		return 0
	}
	return 1 << (c - 'A')
}

// LettersOf returns the set of letters in s.
func LettersOf(s string) LetterSet {
	var set LetterSet
	for i := 0; i < len(s); i++ {
		set |= LetterBit(s[i])
	}
	return set
}

func (s LetterSet) Has(c byte) bool             { return s&LetterBit(c) != 0 }
func (s LetterSet) Add(c byte) LetterSet        { return s | LetterBit(c) }
func (s LetterSet) Without(c byte) LetterSet    { return s &^ LetterBit(c) }
func (s LetterSet) Union(o LetterSet) LetterSet { return s | o }

// Intersects reports whether s and o share at least one letter.
func (s LetterSet) Intersects(o LetterSet) bool { return s&o != 0 }

// ContainsAll reports whether every letter of o is in s.
func (s LetterSet) ContainsAll(o LetterSet) bool { return s&o == o }

func (s LetterSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Letters lists the members of s in alphabetical order.
func (s LetterSet) Letters() []byte {
	out := make([]byte, 0, s.Len())
	for i := 0; i < AlphabetSize; i++ {
		if s&(1<<i) != 0 {
			out = append(out, byte('A'+i))
		}
	}
	return out
}

func (s LetterSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	b.Write(s.Letters())
	b.WriteByte('}')
	return b.String()
}
