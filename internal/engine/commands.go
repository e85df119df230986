package engine

import (
	"fmt"
	"log/slog"

	"github.com/aquila/marenostrum/internal/world"
)

// Command handlers. Each validates against the committed state under
// the simulation lock and applies atomically: either every check passes
// and every mutation happens, or nothing changes. A rejected command is
// a normal outcome, never an error. All commands are rejected once the
// game is over.

// Recruit musters a new unit in training at the node. Succeeds iff the
// treasury covers the gold cost and the node's local manpower covers the
// manpower cost. Fleets may only be laid down at ports; land units
// require a city or port. Land kinds are normalized to the faction's
// flavor.
func (s *Simulation) Recruit(nodeID string, kind world.UnitKind, f world.Faction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recruitLocked(nodeID, kind, f)
}

func (s *Simulation) recruitLocked(nodeID string, kind world.UnitKind, f world.Faction) bool {
	w := s.World
	if w.GameOver || f == world.FactionNeutral {
		return false
	}
	n := w.Nodes[nodeID]
	if n == nil {
		return false
	}
	if kind == world.UnitFleet {
		if n.Kind != world.NodePort {
			return false
		}
	} else {
		kind = world.LandKindFor(f)
		if n.Kind != world.NodeCity && n.Kind != world.NodePort {
			return false
		}
	}

	gold, manpower := UnitCosts(kind)
	if w.Gold[f] < gold || n.Manpower < manpower {
		slog.Debug("recruit rejected", "node", nodeID, "faction", f.String(), "kind", kind.String())
		return false
	}

	w.Gold[f] -= gold
	n.Manpower -= manpower
	u := world.NewUnit(f, kind, nodeID, MaxStrength)
	w.Units = append(w.Units, u)
	s.emit("recruit", fmt.Sprintf("%s musters a %s at %s", f, kind, n.Name))
	return true
}

// Fortify raises the node's fortification by one level. Succeeds iff the
// treasury covers the fixed cost and the level is below the cap.
func (s *Simulation) Fortify(nodeID string, f world.Faction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.World
	if w.GameOver || f == world.FactionNeutral {
		return false
	}
	n := w.Nodes[nodeID]
	if n == nil || n.Fortification >= MaxFortification {
		return false
	}
	if !w.Spend(f, FortifyCost) {
		slog.Debug("fortify rejected", "node", nodeID, "faction", f.String())
		return false
	}
	n.Fortification++
	s.emit("economy", fmt.Sprintf("%s strengthens the walls of %s (level %d)", f, n.Name, n.Fortification))
	return true
}

// Move gathers every idle unit of the faction at fromID and routes the
// whole stack along one shortest path to targetID. A no-op when no
// units are idle there or no route exists.
func (s *Simulation) Move(fromID, targetID string, f world.Faction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.World
	if w.GameOver {
		return false
	}
	var gathered []*world.Unit
	for _, u := range w.Units {
		if u.Faction == f && u.Location == fromID && u.Idle() {
			gathered = append(gathered, u)
		}
	}
	if len(gathered) == 0 {
		slog.Debug("move rejected: no idle units", "from", fromID, "faction", f.String())
		return false
	}

	path, ok := world.FindPath(w, fromID, targetID, f)
	if !ok || len(path) == 0 {
		slog.Debug("move rejected: no route", "from", fromID, "to", targetID, "faction", f.String())
		return false
	}

	for _, u := range gathered {
		s.startPath(u, path)
	}
	s.emit("movement", fmt.Sprintf("%s marches %d unit(s) from %s toward %s",
		f, len(gathered), w.Nodes[fromID].Name, w.Nodes[targetID].Name))
	return true
}

// Rally routes every idle, non-fleet unit of the faction toward the
// target. Units standing on a front line — any neighbor owned by the
// enemy — hold their ground, as do units with no route.
func (s *Simulation) Rally(targetID string, f world.Faction) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.World
	if w.GameOver || w.Nodes[targetID] == nil {
		return 0
	}
	moved := 0
	for _, u := range w.Units {
		if u.Faction != f || !u.Idle() || u.IsFleet() || u.Location == targetID {
			continue
		}
		if s.onFrontLine(u.Location, f) {
			continue
		}
		path, ok := world.FindPath(w, u.Location, targetID, f)
		if !ok || len(path) == 0 {
			continue
		}
		s.startPath(u, path)
		moved++
	}
	if moved > 0 {
		s.emit("movement", fmt.Sprintf("%s rallies %d unit(s) toward %s", f, moved, w.Nodes[targetID].Name))
	}
	return moved
}

// Halt cancels movement for every unit of the faction routed through or
// into the target node. Units become idle at their current location.
func (s *Simulation) Halt(targetID string, f world.Faction) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.World.GameOver {
		return 0
	}
	halted := 0
	for _, u := range s.World.Units {
		if u.Faction != f || !u.Moving() {
			continue
		}
		if u.Dest != targetID && !pathContains(u.Path, targetID) {
			continue
		}
		u.Halt()
		halted++
	}
	if halted > 0 {
		s.emit("movement", fmt.Sprintf("%s halts %d unit(s) bound for %s",
			f, halted, s.World.Nodes[targetID].Name))
	}
	return halted
}

// startPath assigns a computed path: first hop becomes the immediate
// destination, the rest is queued.
func (s *Simulation) startPath(u *world.Unit, path []string) {
	u.Dest = path[0]
	if len(path) > 1 {
		u.Path = append([]string(nil), path[1:]...)
	} else {
		u.Path = nil
	}
	u.Progress = 0
}

// onFrontLine reports whether any neighbor of the node is enemy-held.
func (s *Simulation) onFrontLine(nodeID string, f world.Faction) bool {
	enemy := f.Enemy()
	for _, adj := range s.World.Nodes[nodeID].Adjacent {
		if s.World.Nodes[adj].Owner == enemy {
			return true
		}
	}
	return false
}

func pathContains(path []string, nodeID string) bool {
	for _, p := range path {
		if p == nodeID {
			return true
		}
	}
	return false
}
