package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.db")
	ctx := context.Background()
	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.sql.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	s, err := game.New(words.MustLexicon(5, "CRANE", "CRAMP", "SOLID"))
	require.NoError(t, err)
	require.NoError(t, db.SaveSession(ctx, s))

	_, err = s.Apply("CRANE", "GGGBB")
	require.NoError(t, err)
	require.NoError(t, db.SaveSession(ctx, s))

	got, err := db.Session(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 5, got.WordLength)
	assert.Equal(t, game.StateSolved, got.State)
	assert.Equal(t, words.Word("CRAMP"), got.Answer)
	assert.Equal(t, s.Turns, got.Turns)
	assert.WithinDuration(t, s.StartedAt, got.StartedAt, time.Second)

	_, err = db.Session(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDaily(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	r := DailyResult{
		Date:      "2026-10-18",
		WordIndex: 42,
		Answer:    "CRANE",
		Guesses:   []words.Word{"ROATE", "PSYCH", "CRANE"},
		Turns:     3,
	}
	ok, err := db.RecordDaily(ctx, r)
	require.NoError(t, err)
	assert.True(t, ok)

	// one result per date
	ok, err = db.RecordDaily(ctx, DailyResult{Date: r.Date, Answer: "SOLID", Turns: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := db.Daily(ctx, r.Date)
	require.NoError(t, err)
	assert.Equal(t, r.Answer, got.Answer)
	assert.Equal(t, r.Guesses, got.Guesses)
	assert.Equal(t, 42, got.WordIndex)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = db.Daily(ctx, "2000-01-01")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.RecordDaily(ctx, DailyResult{Date: "2026-10-19", Answer: "SOLID", Guesses: []words.Word{"SOLID"}, Turns: 1})
	require.NoError(t, err)
	list, err := db.DailyHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-19", list[0].Date)
}
