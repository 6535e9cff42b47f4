package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// SessionRecord is a stored session. Answer is empty until solved.
type SessionRecord struct {
	ID         string      `json:"id"`
	WordLength int         `json:"wordLength"`
	State      game.State  `json:"state"`
	Answer     words.Word  `json:"answer,omitempty"`
	StartedAt  time.Time   `json:"startedAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Turns      []game.Turn `json:"turns"`
}

// SaveSession upserts the session row and replaces its turns.
func (d *DB) SaveSession(ctx context.Context, s *game.Session) error {
	var answer sql.NullString
	if w, ok := s.Answer(); ok {
		answer = sql.NullString{String: string(w), Valid: true}
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO sessions (id, word_length, state, answer, started_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            state=excluded.state, answer=excluded.answer, updated_at=excluded.updated_at`,
		s.ID, s.Length, string(s.State()), answer, formatTime(s.StartedAt), formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE session_id=?`, s.ID); err != nil {
		return fmt.Errorf("clear turns %s: %w", s.ID, err)
	}
	for n, t := range s.Turns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO turns (session_id, n, guess, result, remaining) VALUES (?, ?, ?, ?, ?)`,
			s.ID, n, string(t.Guess), t.Result, t.Remaining,
		); err != nil {
			return fmt.Errorf("insert turn %d of %s: %w", n, s.ID, err)
		}
	}
	return tx.Commit()
}

// Session loads one stored session with its turns, or ErrNotFound.
func (d *DB) Session(ctx context.Context, id string) (*SessionRecord, error) {
	var (
		r                SessionRecord
		state            string
		answer           sql.NullString
		started, updated string
	)
	err := d.sql.QueryRowContext(ctx, `
        SELECT id, word_length, state, answer, started_at, updated_at
        FROM sessions WHERE id=?`, id,
	).Scan(&r.ID, &r.WordLength, &state, &answer, &started, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.State = game.State(state)
	r.Answer = words.Word(answer.String)
	r.StartedAt = parseTime(started)
	r.UpdatedAt = parseTime(updated)

	rows, err := d.sql.QueryContext(ctx,
		`SELECT guess, result, remaining FROM turns WHERE session_id=? ORDER BY n`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	r.Turns = []game.Turn{}
	for rows.Next() {
		var t game.Turn
		var guess string
		if err := rows.Scan(&guess, &t.Result, &t.Remaining); err != nil {
			return nil, err
		}
		t.Guess = words.Word(guess)
		r.Turns = append(r.Turns, t)
	}
	return &r, rows.Err()
}
