// Package api serves toy-shop games over HTTP. The API is the host
// shell: it collects player input, clamps it to the core's documented
// preconditions, invokes the game engine, and renders JSON back.
// GET endpoints are read-only; the ledger report requires a bearer token.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/toyshop/internal/entropy"
	"github.com/talgya/toyshop/internal/game"
	"github.com/talgya/toyshop/internal/persistence"
)

// Server serves the game over HTTP.
type Server struct {
	Addr        string
	DB          *persistence.DB    // round ledger; nil disables recording
	Rand        entropy.Source
	Defaults    game.Configuration
	AdminKey    string             // bearer token for the ledger report; empty disables it
	CORSOrigins []string

	games   *registry
	started time.Time
}

// Handler builds the route table. Split out from Start so tests can drive
// the server through httptest.
func (s *Server) Handler() http.Handler {
	if s.games == nil {
		s.games = newRegistry()
	}
	if s.Rand == nil {
		s.Rand = entropy.Default()
	}
	s.started = time.Now()

	// New games are cheap but not free; keep one IP from hoarding sessions.
	createLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/scenarios", s.handleScenarios)
	mux.HandleFunc("/api/v1/games", RateLimitMiddleware(createLimiter, s.handleGames))
	mux.HandleFunc("/api/v1/games/", s.handleGameRoutes)
	mux.HandleFunc("/api/v1/ledger/", s.adminOnly(s.handleLedger))

	return s.corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	handler := s.Handler()
	slog.Info("HTTP API starting", "addr", s.Addr, "ledger", s.DB != nil, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for configured frontend origins.
// Localhost dev servers are always allowed.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range s.CORSOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnly guards a handler behind the bearer admin key.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// gameView is the JSON shape of a running game.
type gameView struct {
	ID             string        `json:"id"`
	Phase          string        `json:"phase"`
	Round          int           `json:"round"`
	Rounds         int           `json:"rounds"`
	Cash           float64       `json:"cash"`
	Inventory      int           `json:"inventory"`
	ProductionCost int           `json:"production_cost"`
	MaxProduce     int           `json:"max_produce"`
	MinPrice       float64       `json:"min_price"`
	Scenario       game.Scenario `json:"scenario"`
	AverageCost    float64       `json:"average_inventory_cost"`
	History        []game.Record `json:"history"`
	Totals         game.Totals   `json:"totals"`
}

func viewOf(id string, sess *game.Session) gameView {
	st := sess.State()
	return gameView{
		ID:             id,
		Phase:          st.Phase.String(),
		Round:          st.Round,
		Rounds:         st.Config.Rounds,
		Cash:           st.Cash,
		Inventory:      st.Inventory,
		ProductionCost: st.ProductionCost,
		MaxProduce:     sess.MaxProduce(),
		MinPrice:       st.Config.MinPrice,
		Scenario:       st.Scenario,
		AverageCost:    sess.AverageCost(),
		History:        st.History,
		Totals:         sess.Totals(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload := map[string]any{
		"games_active":   s.games.count(),
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	}
	if s.DB != nil {
		rounds, games, err := s.DB.Counts()
		if err != nil {
			slog.Error("ledger counts failed", "error", err)
		} else {
			payload["rounds_recorded"] = rounds
			payload["games_recorded"] = games
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": game.Catalog})
}

// handleGames starts a new game. The request body is a partial
// configuration merged over the server defaults; an empty body plays the
// default game.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.Defaults
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid configuration body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := game.Start(cfg, s.Rand)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id := s.games.add(sess)
	slog.Info("game started", "game", id, "rounds", cfg.Rounds, "starting_cash", cfg.StartingCash)
	writeJSON(w, http.StatusCreated, viewOf(id, sess))
}

// handleGameRoutes dispatches /api/v1/games/{id}[/rounds|/estimate|/summary].
func (s *Server) handleGameRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/games/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		s.handleGameState(w, id)
	case sub == "" && r.Method == http.MethodDelete:
		s.handleGameReset(w, id)
	case sub == "rounds" && r.Method == http.MethodPost:
		s.handleRound(w, r, id)
	case sub == "estimate" && r.Method == http.MethodGet:
		s.handleEstimate(w, r, id)
	case sub == "summary" && r.Method == http.MethodGet:
		s.handleSummary(w, id)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) handleGameState(w http.ResponseWriter, id string) {
	var view gameView
	if !s.games.with(id, func(sess *game.Session) { view = viewOf(id, sess) }) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGameReset(w http.ResponseWriter, id string) {
	if !s.games.remove(id) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	slog.Info("game abandoned", "game", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleRound plays one day. Inputs are clamped to the core's
// preconditions here, on the host side: quantity to [0, max affordable],
// price up to the configured minimum.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		ProduceQty int     `json:"produce_qty"`
		Price      float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid round body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var (
		rec         game.Record
		view        gameView
		finished    bool
		alreadyOver bool
		cfg         game.Configuration
		sum         game.Summary
	)
	ok := s.games.with(id, func(sess *game.Session) {
		if sess.Finished() {
			alreadyOver = true
			return
		}
		qty := req.ProduceQty
		if qty < 0 {
			qty = 0
		}
		if limit := sess.MaxProduce(); qty > limit {
			qty = limit
		}
		price := req.Price
		st := sess.State()
		if price < st.Config.MinPrice {
			price = st.Config.MinPrice
		}

		rec = sess.ResolveRound(qty, price)
		finished = sess.Finished()
		view = viewOf(id, sess)
		if finished {
			cfg = st.Config
			sum = sess.Summary()
		}
	})
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if alreadyOver {
		http.Error(w, "game is finished", http.StatusConflict)
		return
	}

	if s.DB != nil {
		if err := s.DB.AppendRound(id, rec); err != nil {
			slog.Error("ledger append failed", "game", id, "round", rec.Round, "error", err)
		}
		if finished {
			if err := s.DB.FinishGame(id, cfg, sum); err != nil {
				slog.Error("ledger finish failed", "game", id, "error", err)
			}
		}
	}

	slog.Info("round resolved",
		"game", id,
		"round", rec.Round,
		"produced", rec.Produced,
		"sold", rec.Sales,
		"profit", rec.RoundProfit,
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"record":      rec,
		"day_summary": daySummary(rec),
		"finished":    finished,
		"game":        view,
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request, id string) {
	raw := r.URL.Query().Get("price")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "price query parameter required", http.StatusBadRequest)
		return
	}

	var payload map[string]any
	ok := s.games.with(id, func(sess *game.Session) {
		st := sess.State()
		if price < st.Config.MinPrice {
			price = st.Config.MinPrice
		}
		payload = map[string]any{
			"price":                  price,
			"expected_demand":        sess.EstimateDemand(price),
			"average_inventory_cost": sess.AverageCost(),
			"scenario":               st.Scenario,
			"max_produce":            sess.MaxProduce(),
		}
	})
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleSummary(w http.ResponseWriter, id string) {
	var (
		sum      game.Summary
		finished bool
	)
	ok := s.games.with(id, func(sess *game.Session) {
		finished = sess.Finished()
		if finished {
			sum = sess.Summary()
		}
	})
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if !finished {
		http.Error(w, "game still in progress", http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": sum,
		"display": map[string]string{
			"starting_cash":       money(sum.StartingCash),
			"final_cash":          money(sum.FinalCash),
			"cash_profit":         money(sum.CashProfit),
			"inventory_value":     money(sum.InventoryValue),
			"inventory_cost":      money(sum.InventoryCost),
			"total_value_created": money(sum.TotalValueCreated),
		},
	})
}

// handleLedger reports the recorded rounds for one game. Admin only.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "ledger disabled", http.StatusNotFound)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/ledger/")
	if id == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}
	recs, err := s.DB.GameRounds(id)
	if err != nil {
		slog.Error("ledger read failed", "game", id, "error", err)
		http.Error(w, "ledger read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": id, "rounds": recs})
}

// daySummary renders the one-line settlement text shown after each day.
func daySummary(rec game.Record) string {
	return fmt.Sprintf("Day %d (%s): produced %d toys for %s, sold %d of %d demanded at %s each, profit %s, cash %s, %d toys carried over",
		rec.Round, rec.Scenario,
		rec.Produced, money(rec.Spent),
		rec.Sales, rec.Demand, money(rec.Price),
		money(rec.RoundProfit), money(rec.CashAfter),
		rec.InventoryAfter,
	)
}

// money formats a dollar amount for display, e.g. "$1,234".
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.CommafWithDigits(-v, 0)
	}
	return "$" + humanize.CommafWithDigits(v, 0)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}
