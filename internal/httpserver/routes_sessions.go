// internal/httpserver/routes_sessions.go
//
// HTTP routes for interactive solving sessions.
//   - POST /sessions               → start a session over the target lexicon
//   - GET  /sessions/{id}          → current state (falls back to history)
//   - POST /sessions/{id}/feedback → apply {guess, result} and re-rank
//
// Live sessions are held in the Store; every applied turn is also written to
// history when a database is configured.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/rank"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// maxListed caps how many candidates a view lists.
const maxListed = rank.TopN

// sessionView is the JSON shape of a live session.
type sessionView struct {
	ID          string        `json:"id"`
	State       game.State    `json:"state"`
	Remaining   int           `json:"remaining"`
	Answer      words.Word    `json:"answer,omitempty"`
	Pattern     string        `json:"pattern"`               // e.g. "CR??E"
	Candidates  []words.Word  `json:"candidates,omitempty"`  // only when few remain
	Suggestions []rank.Scored `json:"suggestions,omitempty"` // while solving
	Turns       []game.Turn   `json:"turns"`
}

func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Get("/{id}", s.handleGetSession)
		r.Post("/{id}/feedback", s.handleFeedback)
	})
}

func (s *Server) view(sess *game.Session) sessionView {
	v := sessionView{
		ID:        sess.ID,
		State:     sess.State(),
		Remaining: len(sess.Candidates),
		Pattern:   sess.Constraints.Pattern(sess.Length),
		Turns:     append([]game.Turn{}, sess.Turns...),
	}
	if w, ok := sess.Answer(); ok {
		v.Answer = w
	}
	if len(sess.Candidates) <= maxListed {
		v.Candidates = append([]words.Word(nil), sess.Candidates...)
	}
	if v.State == game.StateSolving {
		v.Suggestions = sess.Suggest(s.lists.Guesses.Words())
	}
	return v
}

// handleNewSession creates a session and returns its first suggestions.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := game.New(s.lists.Targets)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.recordSession(r.Context(), sess)
	writeJSON(w, http.StatusCreated, s.view(sess))
}

// handleGetSession returns a live session, or its stored record once the
// process no longer holds it.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var v sessionView
	err := s.store.View(r.Context(), id, func(sess *game.Session) error {
		v = s.view(sess)
		return nil
	})
	if err == nil {
		writeJSON(w, http.StatusOK, v)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.db != nil {
		rec, err := s.db.Session(r.Context(), id)
		if err == nil {
			writeJSON(w, http.StatusOK, rec)
			return
		}
		if !errors.Is(err, history.ErrNotFound) {
			log.Warn().Err(err).Str("session", id).Msg("load session history")
		}
	}
	writeError(w, http.StatusNotFound, "not_found")
}

type feedbackReq struct {
	Guess  string `json:"guess"`
	Result string `json:"result"` // e.g. "GYBBY"
}

// handleFeedback applies one guess/result pair to a live session.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		v    sessionView
		snap game.Session
	)
	err := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		if _, err := sess.Apply(req.Guess, req.Result); err != nil {
			return err
		}
		v = s.view(sess)
		snap = *sess
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, words.ErrBadWord), errors.Is(err, constraint.ErrBadResult), errors.Is(err, constraint.ErrLengthMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, game.ErrNoCandidates), errors.Is(err, game.ErrSolved):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.recordSession(r.Context(), &snap)
	writeJSON(w, http.StatusOK, v)
}

// recordSession writes sess to history (best effort).
func (s *Server) recordSession(ctx context.Context, sess *game.Session) {
	if s.db == nil {
		return
	}
	if err := s.db.SaveSession(ctx, sess); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("record session")
	}
}
