// Package freq counts letter occurrences over word lists.
package freq

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Table maps each letter A–Z to a count. Letters never seen count 0.
type Table [words.AlphabetSize]int

// Build counts letters over ws. With unique set, a letter counts once per
// word; otherwise once per occurrence.
func Build(ws []words.Word, unique bool) Table {
	var t Table
	for _, w := range ws {
		if unique {
			for _, c := range w.Letters().Letters() {
				t[c-'A']++
			}
			continue
		}
		for i := 0; i < len(w); i++ {
			if words.IsLetter(w[i]) {
				t[w[i]-'A']++
			}
		}
	}
	return t
}

// Get returns the count for letter c.
func (t *Table) Get(c byte) int {
	if !words.IsLetter(c) {
		return 0
	}
	return t[c-'A']
}

// Max returns the largest count over the letters of s, or 0 for an empty set.
func (t *Table) Max(s words.LetterSet) int {
	best := 0
	for _, c := range s.Letters() {
		best = max(best, t[c-'A'])
	}
	return best
}
