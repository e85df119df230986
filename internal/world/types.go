// Package world holds the map graph, the unit roster, and the World
// aggregate the simulation mutates in place.
package world

import "fmt"

// Faction identifies a belligerent, or nobody.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionRome
	FactionCarthage
)

// Belligerents returns the two playable factions in stable order.
func Belligerents() []Faction {
	return []Faction{FactionRome, FactionCarthage}
}

// Enemy returns the opposing belligerent, or Neutral for Neutral.
func (f Faction) Enemy() Faction {
	switch f {
	case FactionRome:
		return FactionCarthage
	case FactionCarthage:
		return FactionRome
	default:
		return FactionNeutral
	}
}

func (f Faction) String() string {
	switch f {
	case FactionRome:
		return "Rome"
	case FactionCarthage:
		return "Carthage"
	default:
		return "Neutral"
	}
}

// ParseFaction maps a lowercase faction name to a Faction.
func ParseFaction(s string) (Faction, bool) {
	switch s {
	case "rome":
		return FactionRome, true
	case "carthage":
		return FactionCarthage, true
	case "neutral":
		return FactionNeutral, true
	}
	return FactionNeutral, false
}

// NodeKind classifies a map location.
type NodeKind uint8

const (
	NodeCity NodeKind = iota // Inland settlement, land units only
	NodePort                 // Coastal settlement, may recruit fleets
	NodeSea                  // Sea zone, fleets only; no economy of its own
)

func (k NodeKind) String() string {
	switch k {
	case NodeCity:
		return "city"
	case NodePort:
		return "port"
	default:
		return "sea"
	}
}

// Node is a single location on the map graph. Nodes are created once at
// world initialization and mutated in place for the game's lifetime.
type Node struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind NodeKind `json:"kind"`

	// Layout position, opaque to the simulation; passed through for renderers.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Owner Faction `json:"owner"`

	Income         int `json:"income"`          // gold per year, granted on the autumn day
	ManpowerGrowth int `json:"manpower_growth"` // recruits per day
	Manpower       int `json:"manpower"`
	MaxManpower    int `json:"max_manpower"`
	Fortification  int `json:"fortification"` // 0..MaxFortification

	// Adjacent node IDs. Undirected: every edge appears in both endpoints'
	// lists. Slice order is the BFS visitation order, fixed by the dataset.
	Adjacent []string `json:"adjacent"`
}

// IsSea reports whether the node is a sea zone.
func (n *Node) IsSea() bool { return n.Kind == NodeSea }

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s, %s)", n.Name, n.Kind, n.Owner)
}
