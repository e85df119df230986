package engine

import (
	"github.com/aquila/marenostrum/internal/entropy"
	"github.com/aquila/marenostrum/internal/world"
)

// CombatModifier computes a unit's effective strength multiplier at a
// node. Fleets fighting in a sea zone multiply by the naval modifier; a
// unit whose faction owns the node adds the fortification bonus per
// level on top. A fleet defending an owned sea zone therefore gets
// 1.5 + 0.5*level, not a cross-multiply.
func CombatModifier(u *world.Unit, n *world.Node) float64 {
	m := 1.0
	if u.IsFleet() && n.IsSea() {
		m = NavalModifier
	}
	if n.Owner == u.Faction {
		m += FortificationBonus * float64(n.Fortification)
	}
	return m
}

// ResolveCombat resolves one pairwise battle between two co-located
// opposing units. Each side draws uniformly in [0, strength*modifier);
// the higher roll wins. An exact tie goes to the first unit — a
// documented, reproducible tie-break, not randomness. The winner takes
// attrition scaled down by its modifier, floored at the minimum
// strength; the loser is eliminated by the caller regardless of its
// remaining strength.
func ResolveCombat(rng *entropy.Source, first, second *world.Unit, n *world.Node) (winner, loser *world.Unit) {
	mFirst := CombatModifier(first, n)
	mSecond := CombatModifier(second, n)

	rollFirst := rng.Float64() * first.Strength * mFirst
	rollSecond := rng.Float64() * second.Strength * mSecond

	winner, loser = first, second
	winnerMod := mFirst
	if rollSecond > rollFirst {
		winner, loser = second, first
		winnerMod = mSecond
	}

	winner.Strength -= WinnerAttrition / winnerMod
	if winner.Strength < MinStrength {
		winner.Strength = MinStrength
	}
	return winner, loser
}
