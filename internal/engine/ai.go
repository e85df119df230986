package engine

import (
	"github.com/google/uuid"

	"github.com/aquila/marenostrum/internal/entropy"
	"github.com/aquila/marenostrum/internal/world"
)

// The opponent policy is a stateless function of the current world and
// the faction it controls. It produces intents; the tick engine applies
// them through the same validation path as player commands, so an
// intent the treasury can no longer cover is simply rejected.

// RecruitIntent asks for a new unit at an owned node.
type RecruitIntent struct {
	NodeID  string
	Kind    world.UnitKind
	Faction world.Faction
}

// MoveIntent asks for a single-hop move of an existing idle unit.
type MoveIntent struct {
	UnitID uuid.UUID
	To     string
}

// Intents is one invocation's worth of opponent decisions.
type Intents struct {
	Recruits []RecruitIntent
	Moves    []MoveIntent
}

// PlanIntents runs the policy for one faction. Nothing is planned in
// winter. Recruitment only ever considers nodes the faction already
// owns, so the acting faction is implied by ownership.
func PlanIntents(w *world.World, f world.Faction, rng *entropy.Source) Intents {
	var out Intents
	if w.Winter {
		return out
	}

	if w.Gold[f] > LandUnitGoldCost {
		if intent, ok := planRecruit(w, f, rng); ok {
			out.Recruits = append(out.Recruits, intent)
		}
	}

	for _, u := range w.Units {
		if u.Faction != f || !u.Idle() {
			continue
		}
		target := pickMoveTarget(w, u, rng)
		if target == "" {
			continue
		}
		// Friction: sometimes hold even with a target in hand.
		if rng.Chance(MoveFrictionChance) {
			continue
		}
		out.Moves = append(out.Moves, MoveIntent{UnitID: u.ID, To: target})
	}
	return out
}

// planRecruit picks the first owned settlement with spare manpower and
// fewer than two units present. Ports sometimes lay down a fleet
// instead of a land unit; pure sea zones never recruit.
func planRecruit(w *world.World, f world.Faction, rng *entropy.Source) (RecruitIntent, bool) {
	for _, id := range w.NodeIDs() {
		n := w.Nodes[id]
		if n.Owner != f || n.IsSea() {
			continue
		}
		if n.Manpower < LandUnitManpowerCost {
			continue
		}
		if len(w.UnitsAt(id)) >= 2 {
			continue
		}
		kind := world.LandKindFor(f)
		if n.Kind == world.NodePort && rng.Chance(FleetRecruitChance) {
			kind = world.UnitFleet
		}
		return RecruitIntent{NodeID: id, Kind: kind, Faction: f}, true
	}
	return RecruitIntent{}, false
}

// pickMoveTarget filters the unit's neighbors by the traversal rules,
// then prefers enemy-held ground, then neutral, then a uniformly random
// legal neighbor. Returns "" when nowhere is legal.
func pickMoveTarget(w *world.World, u *world.Unit, rng *entropy.Source) string {
	cur := w.Nodes[u.Location]
	enemy := u.Faction.Enemy()

	var legal, hostile, neutral []string
	for _, adj := range cur.Adjacent {
		n := w.Nodes[adj]
		if !u.IsFleet() && !world.CanTraverse(w, cur, n, u.Faction) {
			continue
		}
		legal = append(legal, adj)
		switch n.Owner {
		case enemy:
			hostile = append(hostile, adj)
		case world.FactionNeutral:
			neutral = append(neutral, adj)
		}
	}

	switch {
	case len(hostile) > 0:
		return hostile[0]
	case len(neutral) > 0:
		return neutral[0]
	case len(legal) > 0:
		return legal[rng.Intn(len(legal))]
	}
	return ""
}
