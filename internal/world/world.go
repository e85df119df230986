package world

import (
	"fmt"

	"github.com/google/uuid"
)

// World is the complete mutable game state: the node graph, the unit
// roster, faction treasuries, and the calendar. One World is built at
// startup and owned exclusively by the tick engine thereafter.
type World struct {
	Nodes map[string]*Node `json:"nodes"`
	Units []*Unit          `json:"units"`

	Gold map[Faction]int `json:"gold"`

	Day    int  `json:"day"` // monotonic, never resets
	Winter bool `json:"winter"`

	// Selected is the UI cursor node, read by recruit/rally/halt handlers.
	Selected string `json:"selected,omitempty"`

	GameOver bool    `json:"game_over"`
	Winner   Faction `json:"winner"`

	Capitals map[Faction]string `json:"capitals"`

	// order fixes iteration over Nodes. Map iteration is randomized in Go;
	// every simulation pass walks this slice instead so a fixed seed yields
	// a fixed run.
	order []string
}

// NewWorld creates an empty world. Nodes are added via AddNode.
func NewWorld() *World {
	return &World{
		Nodes: make(map[string]*Node),
		Gold: map[Faction]int{
			FactionRome:     0,
			FactionCarthage: 0,
		},
		Capitals: make(map[Faction]string),
	}
}

// AddNode registers a node. Insertion order becomes the canonical
// iteration order.
func (w *World) AddNode(n *Node) {
	w.Nodes[n.ID] = n
	w.order = append(w.order, n.ID)
}

// NodeIDs returns all node IDs in canonical order. Callers must not
// mutate the returned slice.
func (w *World) NodeIDs() []string { return w.order }

// Node returns the node with the given ID, or nil.
func (w *World) Node(id string) *Node { return w.Nodes[id] }

// UnitByID returns the unit with the given ID, or nil.
func (w *World) UnitByID(id uuid.UUID) *Unit {
	for _, u := range w.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitsAt returns all units currently located at the given node.
func (w *World) UnitsAt(nodeID string) []*Unit {
	var out []*Unit
	for _, u := range w.Units {
		if u.Location == nodeID {
			out = append(out, u)
		}
	}
	return out
}

// EnemyAt returns the first enemy unit of f located at the node, or nil.
func (w *World) EnemyAt(nodeID string, f Faction) *Unit {
	for _, u := range w.Units {
		if u.Location == nodeID && u.Faction != f && u.Faction != FactionNeutral {
			return u
		}
	}
	return nil
}

// FleetAt reports whether the faction has a fleet physically present at
// the node. Units in transit count at their current location.
func (w *World) FleetAt(nodeID string, f Faction) bool {
	for _, u := range w.Units {
		if u.Location == nodeID && u.Faction == f && u.IsFleet() {
			return true
		}
	}
	return false
}

// SeaZonesOwned counts sea nodes held by the faction as trade routes.
func (w *World) SeaZonesOwned(f Faction) int {
	count := 0
	for _, id := range w.order {
		n := w.Nodes[id]
		if n.IsSea() && n.Owner == f {
			count++
		}
	}
	return count
}

// AnnualIncome sums yearly income over all nodes the faction owns.
func (w *World) AnnualIncome(f Faction) int {
	total := 0
	for _, id := range w.order {
		n := w.Nodes[id]
		if n.Owner == f {
			total += n.Income
		}
	}
	return total
}

// Spend deducts gold from a faction treasury. Returns false, changing
// nothing, if the treasury cannot cover the amount. Gold never goes
// negative.
func (w *World) Spend(f Faction, amount int) bool {
	if w.Gold[f] < amount {
		return false
	}
	w.Gold[f] -= amount
	return true
}

// RemoveUnit deletes the unit from the roster.
func (w *World) RemoveUnit(id uuid.UUID) {
	for i, u := range w.Units {
		if u.ID == id {
			w.Units = append(w.Units[:i], w.Units[i+1:]...)
			return
		}
	}
}

// Validate checks structural invariants of the loaded map: symmetric
// adjacency, known edge endpoints, and inert sea-zone economies.
func (w *World) Validate() error {
	for _, id := range w.order {
		n := w.Nodes[id]
		for _, adj := range n.Adjacent {
			other := w.Nodes[adj]
			if other == nil {
				return fmt.Errorf("node %s: adjacency to unknown node %s", id, adj)
			}
			back := false
			for _, rev := range other.Adjacent {
				if rev == id {
					back = true
					break
				}
			}
			if !back {
				return fmt.Errorf("asymmetric edge %s -> %s", id, adj)
			}
		}
		if n.IsSea() && (n.Income != 0 || n.ManpowerGrowth != 0 || n.MaxManpower != 0) {
			return fmt.Errorf("sea node %s carries a land economy", id)
		}
	}
	for f, cap := range w.Capitals {
		if w.Nodes[cap] == nil {
			return fmt.Errorf("capital of %s points to unknown node %s", f, cap)
		}
	}
	return nil
}
