// Package engine provides the tick-based simulation core: the world
// update loop, command handlers, combat resolution, and the opponent
// policy.
package engine

import (
	"log/slog"
	"sync"

	"github.com/aquila/marenostrum/internal/chronicle"
	"github.com/aquila/marenostrum/internal/entropy"
	"github.com/aquila/marenostrum/internal/narrative"
	"github.com/aquila/marenostrum/internal/world"
)

// maxRecentEvents bounds the in-memory event ring. The chronicle DB
// keeps the full history.
const maxRecentEvents = 1000

// Event is a notable occurrence in the world.
type Event struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"` // "season", "battle", "conquest", "economy", "recruit", "movement", "gameover"
}

// Simulation owns the complete world state. All mutation — ticks and
// commands alike — happens under one lock, so no command ever reads a
// world a tick is still mutating.
type Simulation struct {
	mu sync.Mutex

	World  *world.World
	events []Event

	rng      *entropy.Source
	reporter *narrative.Reporter
	log      *chronicle.DB // may be nil: chronicle kept in memory only

	aiFactions []world.Faction
}

// NewSimulation wires a world to its collaborators. reporter must be
// non-nil (use a reporter over a nil client to disable prose); log may
// be nil.
func NewSimulation(w *world.World, rng *entropy.Source, reporter *narrative.Reporter, log *chronicle.DB) *Simulation {
	return &Simulation{
		World:    w,
		rng:      rng,
		reporter: reporter,
		log:      log,
	}
}

// SetOpponents selects which factions the opponent policy controls.
// Both belligerents makes the simulation a spectator match.
func (s *Simulation) SetOpponents(factions ...world.Faction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiFactions = factions
}

// emit appends an event for the current day.
func (s *Simulation) emit(category, description string) {
	s.emitAt(s.World.Day, category, description)
}

// emitAt appends an event in order of production, mirrors it to the
// chronicle DB, and trims the in-memory ring.
func (s *Simulation) emitAt(day int, category, description string) {
	s.events = append(s.events, Event{Day: day, Category: category, Description: description})
	if len(s.events) > maxRecentEvents {
		s.events = s.events[len(s.events)-maxRecentEvents:]
	}
	if s.log != nil {
		if err := s.log.Append(day, category, description); err != nil {
			slog.Warn("chronicle append failed", "error", err)
		}
	}
}

// RecentEvents returns a copy of the last n in-memory events.
func (s *Simulation) RecentEvents(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, n)
	copy(out, s.events[len(s.events)-n:])
	return out
}

// Select moves the UI cursor. Unknown nodes are ignored.
func (s *Simulation) Select(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.World.Nodes[nodeID] == nil {
		return false
	}
	s.World.Selected = nodeID
	return true
}

// Snapshot is a read-only copy of world state for renderers.
type Snapshot struct {
	Day      int            `json:"day"`
	Winter   bool           `json:"winter"`
	GameOver bool           `json:"game_over"`
	Winner   string         `json:"winner,omitempty"`
	Selected string         `json:"selected,omitempty"`
	Gold     map[string]int `json:"gold"`
	Nodes    []world.Node   `json:"nodes"`
	Units    []world.Unit   `json:"units"`
}

// Snapshot copies the current committed state under the lock. The copy
// shares nothing mutable with the live world.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.World
	snap := Snapshot{
		Day:      w.Day,
		Winter:   w.Winter,
		GameOver: w.GameOver,
		Selected: w.Selected,
		Gold:     make(map[string]int, len(w.Gold)),
		Nodes:    make([]world.Node, 0, len(w.Nodes)),
		Units:    make([]world.Unit, 0, len(w.Units)),
	}
	if w.GameOver {
		snap.Winner = w.Winner.String()
	}
	for f, g := range w.Gold {
		snap.Gold[f.String()] = g
	}
	for _, id := range w.NodeIDs() {
		n := *w.Nodes[id]
		n.Adjacent = append([]string(nil), n.Adjacent...)
		snap.Nodes = append(snap.Nodes, n)
	}
	for _, u := range w.Units {
		cu := *u
		cu.Path = append([]string(nil), cu.Path...)
		snap.Units = append(snap.Units, cu)
	}
	return snap
}
