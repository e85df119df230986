// Package api serves read-only world snapshots to renderers over HTTP
// and a websocket stream, and accepts player commands on POST endpoints.
// The API owns no simulation state: GETs copy snapshots, POSTs go
// through the command handlers.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aquila/marenostrum/internal/chronicle"
	"github.com/aquila/marenostrum/internal/engine"
	"github.com/aquila/marenostrum/internal/world"
)

// Server serves the world state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Eng      *engine.Engine
	Log      *chronicle.DB // may be nil: falls back to the in-memory ring
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	Hub *Hub
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	if s.Hub == nil {
		s.Hub = NewHub()
	}

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/world", s.handleWorld)
	mux.HandleFunc("/api/v1/nodes", s.handleNodes)
	mux.HandleFunc("/api/v1/units", s.handleUnits)
	mux.HandleFunc("/api/v1/chronicle", s.handleChronicle)

	// Websocket snapshot stream for renderers.
	mux.HandleFunc("/api/v1/stream", s.Hub.handleStream)

	// Command endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/command", s.adminOnly(s.handleCommand))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" || r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	writeJSON(w, map[string]any{
		"day":       snap.Day,
		"winter":    snap.Winter,
		"game_over": snap.GameOver,
		"winner":    snap.Winner,
		"gold":      snap.Gold,
		"speed":     s.Eng.Speed,
	})
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot())
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot().Nodes)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot().Units)
}

func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if s.Log != nil {
		entries, err := s.Log.Recent(limit)
		if err == nil {
			writeJSON(w, entries)
			return
		}
		slog.Warn("chronicle read failed", "error", err)
	}
	writeJSON(w, s.Sim.RecentEvents(limit))
}

// command is the POST body for player intents.
type command struct {
	Action  string  `json:"action"` // recruit, fortify, move, rally, halt, select
	Faction string  `json:"faction"`
	Node    string  `json:"node"`   // acting/selected node
	Target  string  `json:"target"` // destination node where applicable
	Kind    string  `json:"kind"`   // unit kind for recruit
	Speed   float64 `json:"speed"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var c command
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	f, ok := world.ParseFaction(c.Faction)
	if !ok || f == world.FactionNeutral {
		http.Error(w, "unknown faction", http.StatusBadRequest)
		return
	}

	accepted := false
	switch c.Action {
	case "recruit":
		kind, ok := world.ParseUnitKind(c.Kind)
		if !ok {
			http.Error(w, "unknown unit kind", http.StatusBadRequest)
			return
		}
		accepted = s.Sim.Recruit(c.Node, kind, f)
	case "fortify":
		accepted = s.Sim.Fortify(c.Node, f)
	case "move":
		accepted = s.Sim.Move(c.Node, c.Target, f)
	case "rally":
		accepted = s.Sim.Rally(c.Target, f) > 0
	case "halt":
		accepted = s.Sim.Halt(c.Target, f) > 0
	case "select":
		accepted = s.Sim.Select(c.Node)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	// A rejected command is a normal outcome, not an HTTP error.
	writeJSON(w, map[string]bool{"accepted": accepted})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.Eng.SetSpeed(body.Speed)
	writeJSON(w, map[string]float64{"speed": s.Eng.Speed})
}
