package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DailyResult is one auto-solved daily puzzle.
type DailyResult struct {
	Date      string       `json:"date"` // YYYY-MM-DD, UTC
	WordIndex int          `json:"wordIndex"`
	Answer    words.Word   `json:"answer"`
	Guesses   []words.Word `json:"guesses"`
	Turns     int          `json:"turns"`
	CreatedAt time.Time    `json:"createdAt"`
}

// RecordDaily stores r unless a result for r.Date already exists, in which
// case the insert is ignored. It reports whether a row was written.
func (d *DB) RecordDaily(ctx context.Context, r DailyResult) (bool, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	guesses := strings.Join(lo.Map(r.Guesses, func(w words.Word, _ int) string { return string(w) }), " ")
	res, err := d.sql.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (date, word_index, answer, guesses, turns, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.Date, r.WordIndex, string(r.Answer), guesses, r.Turns, formatTime(r.CreatedAt),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Daily returns the stored result for date, or ErrNotFound.
func (d *DB) Daily(ctx context.Context, date string) (DailyResult, error) {
	row := d.sql.QueryRowContext(ctx, `
        SELECT date, word_index, answer, guesses, turns, created_at
        FROM daily_results WHERE date=?`, date)
	r, err := scanDaily(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DailyResult{}, ErrNotFound
	}
	return r, err
}

// DailyHistory lists the most recent results, newest first.
// Default limit is 20 if not specified.
func (d *DB) DailyHistory(ctx context.Context, limit int) ([]DailyResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.QueryContext(ctx, `
        SELECT date, word_index, answer, guesses, turns, created_at
        FROM daily_results
        ORDER BY date DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DailyResult, 0, limit)
	for rows.Next() {
		r, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDaily(s scanner) (DailyResult, error) {
	var r DailyResult
	var answer, guesses, created string
	if err := s.Scan(&r.Date, &r.WordIndex, &answer, &guesses, &r.Turns, &created); err != nil {
		return DailyResult{}, err
	}
	r.Answer = words.Word(answer)
	r.Guesses = lo.Map(strings.Fields(guesses), func(s string, _ int) words.Word { return words.Word(s) })
	r.CreatedAt = parseTime(created)
	return r, nil
}
