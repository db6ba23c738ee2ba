// internal/httpserver/server.go
//
// HTTP server wiring for the fan module host.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/leaderboard".
//   - Module endpoints (optional auth): create, inspect, submit symbols,
//     play text commands, read the fan target.
//   - Auth + stats endpoints (require auth): /auth/*, /stats/me.
//   - Debug endpoints outside production: live solution, table counts.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Module state lives in the in-memory store; the history DB only
//     receives outcomes (run started, strike, solve).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/notthefan/internal/config"
	"github.com/robalobadob/notthefan/internal/game"
	"github.com/robalobadob/notthefan/internal/history"
	"github.com/robalobadob/notthefan/internal/morse"
	"github.com/robalobadob/notthefan/internal/store"
	"github.com/robalobadob/notthefan/internal/words"
)

// Server bundles router, live module store, word table and history.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	gameCfg game.Config
	table   *words.Table
	store   store.Store
	hist    *history.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, tbl *words.Table, st store.Store, hist *history.Store) (*Server, error) {
	gc, err := cfg.Game()
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, gameCfg: gc, table: tbl, store: st, hist: hist}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"notthefan","endpoints":["/health","POST /modules","POST /modules/{id}/symbol","POST /modules/{id}/command","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// Modules: optional auth, guests can play
	s.mountModules(s.r.With(s.withOptionalAuth()))

	// Auth + stats (require auth)
	s.mountAuthRoutes()

	if !cfg.Production() {
		s.mountDebug()
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	return s, nil
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

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------- leaderboard ----------------------------------

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.hist.Leaderboard(r.Context(), history.ClampLimit(limit))
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"top": rows})
}

// ------------------------------- debug -------------------------------------

func (s *Server) mountDebug() {
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		rows, entries := s.table.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"rows": rows, "entries": entries})
	})
	s.r.Get("/debug/modules/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		sol, expected := m.Reveal()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"solution": sol.Words(),
			"expected": morse.Format(expected),
		})
	})
}
