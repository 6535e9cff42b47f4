// Package rank scores candidate guesses by how much unexplored letter
// frequency they cover.
package rank

import (
	"sort"

	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// TopN is the number of suggestions Top returns.
const TopN = 10

// Scored is a guess and its score.
type Scored struct {
	Word  words.Word `json:"word"`
	Score int        `json:"score"`
}

// Score sums the frequency of each distinct letter of w. Letters already
// known to be present or absent contribute nothing, which favours guesses
// that explore new letters.
func Score(w words.Word, t *freq.Table, present, absent words.LetterSet) int {
	fresh := w.Letters() &^ (present | absent)
	total := 0
	for _, c := range fresh.Letters() {
		total += t.Get(c)
	}
	return total
}

// Rank scores every word and sorts by score descending. Ties keep input order.
func Rank(ws []words.Word, t *freq.Table, present, absent words.LetterSet) []Scored {
	out := make([]Scored, len(ws))
	for i, w := range ws {
		out[i] = Scored{Word: w, Score: Score(w, t, present, absent)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Top returns the first TopN entries of Rank.
func Top(ws []words.Word, t *freq.Table, present, absent words.LetterSet) []Scored {
	ranked := Rank(ws, t, present, absent)
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}
