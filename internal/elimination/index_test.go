package elimination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	toyLexicon = []words.Word{"CRANE", "SOLID", "BUMPY", "FJORD"}
	toyTargets = []words.Word{"CRANE", "SOLID", "BUMPY"}
)

func TestBuildToyExample(t *testing.T) {
	idx, err := Build(context.Background(), toyLexicon, toyTargets, 2)
	require.NoError(t, err)
	require.Equal(t, 4, idx.Len())
	assert.Equal(t, 3, idx.Targets())

	crane, ok := idx.Lookup("CRANE")
	require.True(t, ok)
	assert.True(t, crane.Test(0), "CRANE eliminates itself")
	assert.False(t, crane.Test(1))
	assert.False(t, crane.Test(2))
	assert.Equal(t, 1, idx.Count(0))

	// SOLID and BUMPY eliminate only themselves; FJORD shares R with CRANE
	// and O, D with SOLID.
	assert.Equal(t, 2, idx.UnionCount(1, 2))
	assert.Equal(t, 2, idx.Count(3))
	fjord, _ := idx.Lookup("FJORD")
	assert.True(t, fjord.Test(0))
	assert.True(t, fjord.Test(1))
	assert.False(t, fjord.Test(2))

	_, ok = idx.Lookup("ZZZZZ")
	assert.False(t, ok)
}

func TestBuildMatchesBruteForce(t *testing.T) {
	lists, err := words.Load(words.Source{})
	require.NoError(t, err)
	lex := lists.Guesses.Words()[:120]
	targets := lists.Targets.Words()[:80]

	idx, err := Build(context.Background(), lex, targets, 3)
	require.NoError(t, err)

	shares := func(a, b words.Word) bool {
		for i := 0; i < len(a); i++ {
			for j := 0; j < len(b); j++ {
				if a[i] == b[j] {
					return true
				}
			}
		}
		return false
	}

	for i := 0; i < len(lex); i += 7 {
		for j := i + 1; j < len(lex); j += 11 {
			want := 0
			for _, tw := range targets {
				if shares(lex[i], tw) || shares(lex[j], tw) {
					want++
				}
			}
			assert.Equal(t, want, idx.UnionCount(i, j), "%s+%s", lex[i], lex[j])
		}
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(context.Background(), toyLexicon, nil, 1)
	assert.ErrorIs(t, err, ErrNoTargets)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, toyLexicon, toyTargets, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMostExcluding(t *testing.T) {
	idx, err := Build(context.Background(), toyLexicon, toyTargets, 0)
	require.NoError(t, err)

	top := idx.MostExcluding(2)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{Word: "FJORD", Excluded: 2}, top[0])
	assert.Equal(t, Entry{Word: "CRANE", Excluded: 1}, top[1])

	assert.Len(t, idx.MostExcluding(0), 4)
}
