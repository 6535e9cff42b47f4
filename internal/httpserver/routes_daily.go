// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
//   - POST /daily/solve   → auto-solve today's (or a given date's) target
//   - GET  /daily/history → recent recorded daily solves
//
// Target selection is deterministic from date + salt. A date is solved once;
// later calls return the recorded result when history is enabled.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/solve", s.handleDailySolve)
		r.Get("/history", s.handleDailyHistory)
	})
}

type dailySolveReq struct {
	Date string `json:"date"` // YYYY-MM-DD; today (UTC) when empty
}

// handleDailySolve returns the recorded result for the date, or solves the
// day's target and records it.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	var req dailySolveReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	day := time.Now().UTC()
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		day = t
	}
	p := daily.For(day, s.cfg.DailySalt, s.lists.Targets)

	if s.db != nil {
		if res, err := s.db.Daily(r.Context(), p.Date); err == nil {
			writeJSON(w, http.StatusOK, res)
			return
		} else if !errors.Is(err, history.ErrNotFound) {
			log.Warn().Err(err).Str("date", p.Date).Msg("load daily result")
		}
	}

	sess, err := daily.Solve(p, s.lists)
	if err != nil {
		log.Error().Err(err).Str("date", p.Date).Msg("daily solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}
	res := history.DailyResult{
		Date:      p.Date,
		WordIndex: p.Index,
		Answer:    p.Answer,
		Guesses:   make([]words.Word, len(sess.Turns)),
		Turns:     len(sess.Turns),
		CreatedAt: time.Now().UTC(),
	}
	for i, t := range sess.Turns {
		res.Guesses[i] = t.Guess
	}
	if s.db != nil {
		if _, err := s.db.RecordDaily(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("date", p.Date).Msg("record daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDailyHistory lists recorded daily solves, newest first.
func (s *Server) handleDailyHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	limit, err := intParam(r, "limit", 20)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return
	}
	rows, err := s.db.DailyHistory(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
