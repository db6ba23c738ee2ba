// internal/httpserver/routes_modules.go
//
// HTTP routes for playing a module.
// Exposes, under /modules:
//   - POST /modules                → create a module (new solution, fan at baseline)
//   - GET  /modules/{id}           → state snapshot
//   - POST /modules/{id}/symbol    → submit one symbol ("." or "-")
//   - POST /modules/{id}/command   → play a text command ("input .-..")
//   - GET  /modules/{id}/actuator  → latest fan target, optionally one spin step
//   - DELETE /modules/{id}         → drop a module from memory (owner only when owned)
//
// Strikes and solves are forwarded to the history DB through runHost.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/notthefan/internal/game"
	"github.com/robalobadob/notthefan/internal/history"
	"github.com/robalobadob/notthefan/internal/morse"
)

// runHost relays module signals to the history store.
type runHost struct {
	id      string
	hist    *history.Store
	started time.Time
}

func (h *runHost) HandleStrike() {
	if err := h.hist.RecordStrike(context.Background(), h.id); err != nil {
		log.Warn().Err(err).Str("module", h.id).Msg("record strike")
	}
}

func (h *runHost) HandlePass() {
	now := time.Now()
	err := h.hist.RecordSolve(context.Background(), h.id, now, now.Sub(h.started))
	if err != nil && !errors.Is(err, history.ErrNotFound) {
		log.Warn().Err(err).Str("module", h.id).Msg("record solve")
	}
}

// mountModules registers all /modules routes.
func (s *Server) mountModules(r chi.Router) {
	r.Route("/modules", func(r chi.Router) {
		r.Post("/", s.handleNewModule)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleModuleState)
			r.Delete("/", s.handleDeleteModule)
			r.Post("/symbol", s.handleSymbol)
			r.Post("/command", s.handleCommand)
			r.Get("/actuator", s.handleActuator)
		})
	})
}

// newModuleRes is returned by POST /modules.
type newModuleRes struct {
	ModuleID string `json:"moduleId"`
	Display  string `json:"display"`
	Stages   int    `json:"stages"`
	Help     string `json:"help"`
}

// handleNewModule creates a module and records its run row.
func (s *Server) handleNewModule(w http.ResponseWriter, r *http.Request) {
	owner := ""
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		owner = me.ID
	}

	hostFor := func(id string) game.Host {
		return &runHost{id: id, hist: s.hist, started: time.Now()}
	}
	m, err := game.NewModule(s.table, s.gameCfg, owner, hostFor, game.WithLogger(log.With().Str("component", "module").Logger()))
	if err != nil {
		log.Error().Err(err).Msg("new module")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}

	if err := s.hist.StartRun(r.Context(), history.Run{
		ID: m.ID, UserID: owner, Stages: s.gameCfg.Stages, StartedAt: m.CreatedAt,
	}); err != nil {
		log.Warn().Err(err).Str("module", m.ID).Msg("insert run row")
	}
	if err := s.store.Save(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("save module")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	st := m.State()
	log.Info().Str("module", m.ID).Str("owner", owner).Msg("module created")
	_ = json.NewEncoder(w).Encode(newModuleRes{ModuleID: m.ID, Display: st.Display, Stages: st.Stages, Help: game.HelpMessage})
}

// loadModule resolves {id}, writing a 404 when it is unknown.
func (s *Server) loadModule(w http.ResponseWriter, r *http.Request) (*game.Module, bool) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return m, true
}

func (s *Server) handleModuleState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadModule(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(m.State())
}

// handleDeleteModule drops a module. Owned modules may only be deleted
// by their owner; guest modules by anyone holding the id.
func (s *Server) handleDeleteModule(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadModule(w, r)
	if !ok {
		return
	}
	if m.Owner != "" {
		me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
		if me == nil || me.ID != m.Owner {
			http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
			return
		}
	}
	_ = s.store.Delete(r.Context(), m.ID)
	w.WriteHeader(http.StatusNoContent)
}

// symbolReq/Res payloads for POST /modules/{id}/symbol.
type symbolReq struct {
	Symbol string `json:"symbol"` // "." (short) or "-" (long)
}
type symbolRes struct {
	Result game.Result `json:"result"`
	State  game.State  `json:"state"`
}

func (s *Server) handleSymbol(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadModule(w, r)
	if !ok {
		return
	}
	var req symbolReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	seq, err := morse.ParseSymbols(strings.TrimSpace(req.Symbol))
	if err != nil || len(seq) != 1 {
		http.Error(w, `{"error":"invalid_symbol"}`, http.StatusBadRequest)
		return
	}
	res, st := m.Submit(seq[0])
	_ = json.NewEncoder(w).Encode(symbolRes{Result: res, State: st})
}

// commandReq/Res payloads for POST /modules/{id}/command.
type commandReq struct {
	Command string `json:"command"`
}
type commandRes struct {
	Results []game.Result `json:"results"`
	Struck  bool          `json:"struck"`
	State   game.State    `json:"state"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadModule(w, r)
	if !ok {
		return
	}
	var req commandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	results, st, err := m.Command(req.Command)
	if err != nil {
		http.Error(w, `{"error":"invalid_command","help":"`+game.HelpMessage+`"}`, http.StatusBadRequest)
		return
	}
	struck := len(results) > 0 && results[len(results)-1] == game.Strike
	_ = json.NewEncoder(w).Encode(commandRes{Results: results, Struck: struck, State: st})
}

// actuatorRes is returned by GET /modules/{id}/actuator.
type actuatorRes struct {
	Target      game.ActuatorTarget `json:"target"`
	TargetSpeed float64             `json:"targetSpeed"`
	Speed       *float64            `json:"speed,omitempty"` // present when speed and dt were given
}

// handleActuator reads the latest fan target. With ?speed=&dt= it also
// integrates one step so thin clients need not reimplement Step.
func (s *Server) handleActuator(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadModule(w, r)
	if !ok {
		return
	}
	t := m.Actuator()
	res := actuatorRes{Target: t, TargetSpeed: t.TargetSpeed()}

	q := r.URL.Query()
	if q.Has("speed") || q.Has("dt") {
		speed, err1 := strconv.ParseFloat(q.Get("speed"), 64)
		dt, err2 := strconv.ParseFloat(q.Get("dt"), 64)
		if err1 != nil || err2 != nil {
			http.Error(w, `{"error":"invalid_step"}`, http.StatusBadRequest)
			return
		}
		next := game.Step(speed, t, dt)
		res.Speed = &next
	}
	_ = json.NewEncoder(w).Encode(res)
}
