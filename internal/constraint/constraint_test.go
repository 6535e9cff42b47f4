package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func derive(t *testing.T, guess, result string) Set {
	t.Helper()
	marks, err := ParseResult(result, 5)
	require.NoError(t, err)
	c, err := Derive(words.Word(guess), marks, 5)
	require.NoError(t, err)
	return c
}

func TestParseResult(t *testing.T) {
	marks, err := ParseResult("gybBY", 5)
	require.NoError(t, err)
	assert.Equal(t, []Mark{Green, Yellow, Black, Black, Yellow}, marks)
	assert.Equal(t, "GYBBY", FormatResult(marks))

	_, err = ParseResult("GYBB", 5)
	assert.ErrorIs(t, err, ErrBadResult)

	_, err = ParseResult("GYBBX", 5)
	assert.ErrorIs(t, err, ErrBadResult)
}

func TestDerive(t *testing.T) {
	c := derive(t, "CRANE", "GYBBB")

	assert.Equal(t, words.LettersOf("CR"), c.Present)
	assert.Equal(t, words.LettersOf("ANE"), c.Absent)
	assert.Equal(t, PlacementSet{{'C', 0}: {}}, c.Known)
	assert.Equal(t, PlacementSet{{'R', 1}: {}}, c.Disallowed)
	assert.Equal(t, "C????", c.Pattern(5))
}

func TestDeriveRejectsMismatch(t *testing.T) {
	_, err := Derive("CRANE", []Mark{Green, Green}, 5)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Derive("CRAN", []Mark{Green, Green, Green, Green}, 5)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Derive("CRANE", []Mark{Green, Green, Green, Green, "purple"}, 5)
	assert.ErrorIs(t, err, ErrBadResult)
}

func TestMergeProperties(t *testing.T) {
	a := derive(t, "CRANE", "GYBBB")
	b := derive(t, "SOLID", "BBYBB")
	c := derive(t, "CLOUT", "GYBBG")

	assert.Equal(t, Merge(a, b), Merge(b, a), "commutative")
	assert.Equal(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)), "associative")
	assert.Equal(t, a, Merge(a, a), "idempotent")
	assert.Equal(t, Set{}, Merge(Set{}, Set{}))

	m := Merge(a, b)
	assert.True(t, m.Present.Has('L'))
	assert.True(t, m.Absent.Has('S'))
	assert.Len(t, m.Disallowed, 2)
	// inputs untouched
	assert.Len(t, a.Disallowed, 1)
}

func TestFilterExample(t *testing.T) {
	c := Set{
		Absent:     words.LettersOf("A"),
		Present:    words.LettersOf("E"),
		Disallowed: PlacementSet{{'E', 0}: {}},
	}
	assert.Empty(t, Filter([]words.Word{"EAGLE", "SNEAK", "ALERT"}, c))

	got := Filter([]words.Word{"EAGLE", "SNEAK", "ALERT", "THEME", "EVERY"}, c)
	assert.Equal(t, []words.Word{"THEME"}, got)
}

func TestFilterKnownPositions(t *testing.T) {
	ws := []words.Word{"CRANE", "CRATE", "TRACE", "CRONE"}
	c := derive(t, "CRANE", "GGGBG")
	assert.Equal(t, []words.Word{"CRATE"}, Filter(ws, c))
}

func TestFilterIdempotent(t *testing.T) {
	ws := []words.Word{"CRANE", "SOLID", "BUMPY", "FJORD", "EAGLE", "SNEAK", "ALERT", "CLOUD"}
	for _, c := range []Set{
		{},
		derive(t, "CRANE", "BBBBB"),
		derive(t, "CLOUD", "GYBBB"),
		Merge(derive(t, "SNEAK", "BBYBB"), derive(t, "ALERT", "BBYBB")),
	} {
		once := Filter(ws, c)
		assert.Equal(t, once, Filter(once, c))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	ws := []words.Word{"SOLID", "FJORD", "CLOUD"}
	c := Set{Present: words.LettersOf("O")}
	assert.Equal(t, ws, Filter(ws, c))
}
