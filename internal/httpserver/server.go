// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/lexicon/stats".
//   - Solving sessions: POST /sessions, GET /sessions/{id},
//     POST /sessions/{id}/feedback.
//   - Absurdle: GET /absurdle/excluders, POST /absurdle/search (requires auth).
//   - Daily puzzle endpoints, mounted under /daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - History writes are best effort: failures are logged, never returned.
//   - The pair search runs under its own timeout and one at a time.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/absurdle"
	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// requestTimeout bounds every handler except the pair search.
const requestTimeout = 10 * time.Second

// Server bundles router, session store, word lists and history DB.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	lists    *words.Lists
	store    store.Store
	db       *history.DB // nil disables history
	signer   *auth.Signer
	searchMu sync.Mutex // guards searcher
	searcher *absurdle.Searcher
	busy     chan struct{} // one pair search at a time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, lists *words.Lists, st store.Store, db *history.DB) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		lists:  lists,
		store:  st,
		db:     db,
		signer: auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL()),
		busy:   make(chan struct{}, 1),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)           // add X-Request-ID
	s.r.Use(chimw.RealIP)              // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)           // recover from panics
	s.r.Use(jsonContentType)           // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin)) // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/lexicon/stats","POST /sessions","/absurdle/*","/daily/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/lexicon/stats", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.lists.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "wordLength": s.lists.Targets.WordLength()})
		})

		s.mountSessions(r)
		r.Get("/absurdle/excluders", s.handleExcluders)
		s.mountDaily(r)
	})

	// Pair search: gated and bounded by its own timeout.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.SearchTimeout))
		r.Use(s.signer.Require)
		r.Post("/absurdle/search", s.handleSearch)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ ABSURDLE -----------------------------------

// getSearcher builds the searcher on first use and keeps it.
func (s *Server) getSearcher(ctx context.Context) (*absurdle.Searcher, error) {
	s.searchMu.Lock()
	defer s.searchMu.Unlock()
	if s.searcher != nil {
		return s.searcher, nil
	}
	sr, err := absurdle.NewSearcher(ctx, s.lists.Guesses, s.lists.Targets, s.cfg.SearchWorkers)
	if err != nil {
		return nil, err
	}
	s.searcher = sr
	return sr, nil
}

// handleExcluders lists the guesses eliminating the most targets.
func (s *Server) handleExcluders(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 10)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return
	}
	sr, err := s.getSearcher(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("build searcher")
		writeError(w, http.StatusInternalServerError, "searcher_failed")
		return
	}
	writeJSON(w, http.StatusOK, sr.Index().MostExcluding(limit))
}

type searchReq struct {
	MaxExcluded *int  `json:"maxExcluded"`
	NaiveKicker *bool `json:"naiveKicker"`
}

// handleSearch runs the pair search with the request's overrides of the
// configured defaults.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	p := absurdle.Params{
		MaxExcluded:   s.cfg.SearchMaxExcluded,
		NaiveKicker:   s.cfg.SearchNaiveKicker,
		Workers:       s.cfg.SearchWorkers,
		ProgressEvery: s.cfg.SearchProgressEvery,
		Progress: func(pr absurdle.Progress) {
			log.Debug().Int64("pairs", pr.Pairs).Int64("total", pr.Total).Msg("pair-search-progress")
		},
	}
	if req.MaxExcluded != nil {
		p.MaxExcluded = *req.MaxExcluded
	}
	if req.NaiveKicker != nil {
		p.NaiveKicker = *req.NaiveKicker
	}

	select {
	case s.busy <- struct{}{}:
		defer func() { <-s.busy }()
	default:
		writeError(w, http.StatusTooManyRequests, "search_in_progress")
		return
	}

	sr, err := s.getSearcher(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("build searcher")
		writeError(w, http.StatusInternalServerError, "searcher_failed")
		return
	}
	sub, _ := auth.Subject(r.Context())
	res, err := sr.Search(r.Context(), p)
	switch {
	case errors.Is(err, absurdle.ErrBadParams):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, absurdle.ErrNoPair):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search_timeout")
	case err != nil:
		log.Error().Err(err).Str("subject", sub).Msg("pair search")
		writeError(w, http.StatusInternalServerError, "search_failed")
	default:
		log.Info().Str("subject", sub).Str("best", res.String()).Msg("pair-search-served")
		writeJSON(w, http.StatusOK, res)
	}
}

// ------------------------------- helpers -----------------------------------

// intParam reads an integer query parameter, def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
