package world

import "github.com/google/uuid"

// UnitKind classifies a military unit. Legion and Levy are faction flavor
// labels over identical stats; Fleet is the shared naval kind.
type UnitKind uint8

const (
	UnitLegion UnitKind = iota // Roman land unit
	UnitLevy                   // Carthaginian land unit
	UnitFleet
)

func (k UnitKind) String() string {
	switch k {
	case UnitLegion:
		return "legion"
	case UnitLevy:
		return "levy"
	default:
		return "fleet"
	}
}

// ParseUnitKind maps a lowercase kind name to a UnitKind.
func ParseUnitKind(s string) (UnitKind, bool) {
	switch s {
	case "legion":
		return UnitLegion, true
	case "levy":
		return UnitLevy, true
	case "fleet":
		return UnitFleet, true
	}
	return UnitLegion, false
}

// LandKindFor returns the land unit kind a faction fields.
func LandKindFor(f Faction) UnitKind {
	if f == FactionCarthage {
		return UnitLevy
	}
	return UnitLegion
}

// Unit is a single army or fleet. Created by recruitment, destroyed the
// instant it loses combat.
type Unit struct {
	ID      uuid.UUID `json:"id"`
	Faction Faction   `json:"faction"`
	Kind    UnitKind  `json:"kind"`

	Strength    float64 `json:"strength"` // 0..MaxStrength, floored after a won battle
	MaxStrength float64 `json:"max_strength"`

	Location string   `json:"location"`
	Dest     string   `json:"dest,omitempty"` // immediate next hop, "" when idle
	Path     []string `json:"path,omitempty"` // queued hops beyond Dest
	Origin   string   `json:"origin"`         // recruitment node, winter retreat target

	Progress float64 `json:"progress"` // movement progress 0..100, resets each hop

	Training         bool    `json:"training"`
	TrainingProgress float64 `json:"training_progress"`
}

// NewUnit creates a unit in training at its origin node.
func NewUnit(f Faction, kind UnitKind, nodeID string, maxStrength float64) *Unit {
	return &Unit{
		ID:          uuid.New(),
		Faction:     f,
		Kind:        kind,
		Strength:    maxStrength,
		MaxStrength: maxStrength,
		Location:    nodeID,
		Origin:      nodeID,
		Training:    true,
	}
}

// IsFleet reports whether the unit is naval.
func (u *Unit) IsFleet() bool { return u.Kind == UnitFleet }

// Moving reports whether the unit has a hop in progress.
func (u *Unit) Moving() bool { return u.Dest != "" }

// Idle reports whether the unit can accept orders: trained and not moving.
func (u *Unit) Idle() bool { return !u.Training && u.Dest == "" }

// Halt cancels any movement in place. The unit stays at its current node.
func (u *Unit) Halt() {
	u.Dest = ""
	u.Path = nil
	u.Progress = 0
}
