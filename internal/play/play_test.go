package play

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func lists(t *testing.T, targets ...string) *words.Lists {
	t.Helper()
	ts := words.MustLexicon(5, targets...).Words()
	l, err := words.NewLists(ts, ts, 5)
	require.NoError(t, err)
	return l
}

func TestRunSolves(t *testing.T) {
	var out strings.Builder
	recorded := 0
	in := strings.NewReader("CRANE\nBBBBB\n\ncr4ne\nsolid\ngxbbb\nggggg\n")
	loop := New(lists(t, "CRANE", "SOLID", "BUMPY"), in, &out, func(_ context.Context, s *game.Session) {
		recorded++
	})

	w, err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, words.Word("SOLID"), w)
	assert.Equal(t, 2, recorded)

	text := out.String()
	assert.Contains(t, text, "3 candidates")
	assert.Contains(t, text, "candidates: SOLID BUMPY")
	assert.Contains(t, text, "error: words: invalid word")
	assert.Contains(t, text, "error: constraint: malformed result")
	assert.Contains(t, text, "The word is SOLID (2 turns)")
}

func TestRunContradiction(t *testing.T) {
	var out strings.Builder
	loop := New(lists(t, "CRANE", "CRAMP", "SOLID"), strings.NewReader("CRANE\nGGGGB\n"), &out, nil)
	_, err := loop.Run(context.Background())
	assert.ErrorIs(t, err, game.ErrNoCandidates)
	assert.Contains(t, out.String(), "No candidate word matches")
}

func TestRunInputClosed(t *testing.T) {
	var out strings.Builder
	loop := New(lists(t, "CRANE", "SOLID"), strings.NewReader("CRANE\n"), &out, nil)
	_, err := loop.Run(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out strings.Builder
	_, err := New(lists(t, "CRANE", "SOLID"), strings.NewReader(""), &out, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
