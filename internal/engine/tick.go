package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/aquila/marenostrum/internal/narrative"
	"github.com/aquila/marenostrum/internal/world"
)

// Step advances the world by one day. The whole transition runs under
// the simulation lock: no intermediate state is observable. After the
// game is over only completed narrative results are merged; the world
// itself stays frozen.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drainNarrative()

	if s.World.GameOver {
		return
	}

	s.advanceCalendar()
	s.regenManpower()
	s.accrueTradeIncome()
	s.accrueAnnualIncome()
	s.advanceUnits()
	dead := s.resolveArrivals()
	s.purgeUnits(dead)
	s.runOpponents()
}

// drainNarrative merges completed prose requests into the chronicle.
// Results carry the day they describe so they splice in sensibly even
// though the log has advanced.
func (s *Simulation) drainNarrative() {
	for {
		select {
		case res := <-s.reporter.Results():
			s.emitAt(res.Day, res.Category, res.Text)
		default:
			return
		}
	}
}

// advanceCalendar increments the day and detects season edges. The
// winter-to-summer edge also fires the yearly chronicle request.
func (s *Simulation) advanceCalendar() {
	w := s.World
	w.Day++
	winter := IsWinterDay(w.Day)
	if winter != w.Winter {
		if winter {
			s.emit("season", "Winter closes the passes and the sea lanes; the armies go into quarters")
		} else {
			s.emit("season", "The snows melt and the campaigning season opens")
			s.reporter.RequestYearlyState(w.Day, s.warSummary())
		}
		slog.Info("season change", "day", w.Day, "winter", winter)
	}
	w.Winter = winter
}

// warSummary builds the one-line state of the war fed to the yearly
// chronicle request.
func (s *Simulation) warSummary() string {
	w := s.World
	out := ""
	for _, f := range world.Belligerents() {
		nodes, units := 0, 0
		for _, id := range w.NodeIDs() {
			if w.Nodes[id].Owner == f {
				nodes++
			}
		}
		for _, u := range w.Units {
			if u.Faction == f {
				units++
			}
		}
		if out != "" {
			out += "; "
		}
		out += fmt.Sprintf("%s holds %d territories with %d units and %s gold",
			f, nodes, units, humanize.Comma(int64(w.Gold[f])))
	}
	return out
}

// regenManpower grows local manpower on every owned settlement, capped
// at the node maximum.
func (s *Simulation) regenManpower() {
	for _, id := range s.World.NodeIDs() {
		n := s.World.Nodes[id]
		if n.Owner == world.FactionNeutral || n.ManpowerGrowth == 0 {
			continue
		}
		n.Manpower += n.ManpowerGrowth
		if n.Manpower > n.MaxManpower {
			n.Manpower = n.MaxManpower
		}
	}
}

// accrueTradeIncome pays each faction for the sea lanes it controls.
func (s *Simulation) accrueTradeIncome() {
	for _, f := range world.Belligerents() {
		zones := s.World.SeaZonesOwned(f)
		if zones > 0 {
			s.World.Gold[f] += zones * TradeGoldPerSeaZone
		}
	}
}

// accrueAnnualIncome lands the yearly revenues on the autumn day.
func (s *Simulation) accrueAnnualIncome() {
	if s.World.Day%DaysPerYear != AutumnIncomeDay {
		return
	}
	for _, f := range world.Belligerents() {
		income := s.World.AnnualIncome(f)
		s.World.Gold[f] += income
		s.emit("economy", fmt.Sprintf("The autumn revenues bring %s gold to %s",
			humanize.Comma(int64(income)), f))
	}
}

// advanceUnits runs the per-unit daily state machine: training first,
// then forced winter retreat, then movement. The branches are exclusive
// per day, so a unit ordered into winter retreat starts marching the
// following tick.
func (s *Simulation) advanceUnits() {
	w := s.World
	for _, u := range w.Units {
		switch {
		case u.Training:
			u.TrainingProgress += TrainingRate
			if u.TrainingProgress >= 100 {
				u.TrainingProgress = 100
				u.Training = false
				s.emit("recruit", fmt.Sprintf("A %s %s completes training at %s",
					u.Faction, u.Kind, w.Nodes[u.Location].Name))
			}

		case w.Winter && !u.Moving() && !u.IsFleet() && u.Location != u.Origin:
			// Forced retreat to winter quarters, one direct hop only. A
			// unit whose origin is not a direct neighbor stays put.
			if isAdjacent(w, u.Location, u.Origin) {
				u.Dest = u.Origin
				u.Path = nil
				u.Progress = 0
				s.emit("movement", fmt.Sprintf("A %s %s retreats toward winter quarters at %s",
					u.Faction, u.Kind, w.Nodes[u.Origin].Name))
			}

		case u.Moving():
			u.Progress += MovementRate
			if u.Progress >= 100 {
				u.Location = u.Dest
				u.Progress = 0
				if len(u.Path) > 0 {
					u.Dest = u.Path[0]
					u.Path = u.Path[1:]
				} else {
					u.Dest = ""
				}
			}
		}
	}
}

func isAdjacent(w *world.World, a, b string) bool {
	for _, adj := range w.Nodes[a].Adjacent {
		if adj == b {
			return true
		}
	}
	return false
}

// resolveArrivals handles combat and conquest for every unit that is
// settled at a node after the movement step. Each unit fights at most
// one pairwise battle per tick, against the first living enemy found at
// its node. Returns the set of units destroyed this tick.
func (s *Simulation) resolveArrivals() map[uuid.UUID]bool {
	w := s.World
	dead := make(map[uuid.UUID]bool)

	for _, u := range w.Units {
		if u.Training || u.Moving() || dead[u.ID] {
			continue
		}

		if enemy := s.firstLivingEnemy(u, dead); enemy != nil {
			s.fight(u, enemy, dead)
			continue
		}

		n := w.Nodes[u.Location]
		if n.Owner == u.Faction {
			continue
		}
		// Conquest needs a domain match: land units take land, fleets
		// take sea zones.
		if u.IsFleet() != n.IsSea() {
			continue
		}
		n.Owner = u.Faction
		n.Fortification = 0
		s.emit("conquest", fmt.Sprintf("%s seizes %s", u.Faction, n.Name))
		slog.Info("conquest", "node", n.ID, "by", u.Faction.String())
		s.checkCapitalFallen(n, u.Faction)
	}
	return dead
}

func (s *Simulation) firstLivingEnemy(u *world.Unit, dead map[uuid.UUID]bool) *world.Unit {
	for _, other := range s.World.Units {
		if dead[other.ID] || other.ID == u.ID {
			continue
		}
		if other.Location == u.Location && other.Faction != u.Faction {
			return other
		}
	}
	return nil
}

// fight resolves one battle, chronicles the deterministic fallback line
// immediately, and requests prose out of band.
func (s *Simulation) fight(attacker, defender *world.Unit, dead map[uuid.UUID]bool) {
	n := s.World.Nodes[attacker.Location]
	winner, loser := ResolveCombat(s.rng, attacker, defender, n)
	dead[loser.ID] = true

	s.emit("battle", narrative.BattleFallback(n.Name, winner.Faction.String(), loser.Faction.String()))
	slog.Info("battle",
		"location", n.ID,
		"winner", winner.Faction.String(),
		"loser", loser.Faction.String(),
		"winner_strength", fmt.Sprintf("%.0f", winner.Strength),
	)
	s.reporter.RequestBattle(s.World.Day, n.Name, winner.Faction.String(), loser.Faction.String())
}

// checkCapitalFallen sets the terminal state when a capital changes
// hands. The winner is recorded once and never overwritten.
func (s *Simulation) checkCapitalFallen(n *world.Node, conqueror world.Faction) {
	if s.World.GameOver {
		return
	}
	for _, f := range world.Belligerents() {
		if s.World.Capitals[f] == n.ID && f != conqueror {
			s.World.GameOver = true
			s.World.Winner = conqueror
			s.emit("gameover", fmt.Sprintf("%s has fallen. %s rules the Mare Nostrum", n.Name, conqueror))
			slog.Info("game over", "capital", n.ID, "winner", conqueror.String())
		}
	}
}

// purgeUnits removes every unit destroyed this tick.
func (s *Simulation) purgeUnits(dead map[uuid.UUID]bool) {
	if len(dead) == 0 {
		return
	}
	kept := s.World.Units[:0]
	for _, u := range s.World.Units {
		if !dead[u.ID] {
			kept = append(kept, u)
		}
	}
	s.World.Units = kept
}

// runOpponents runs the opponent policy on its fixed cadence and applies
// the resulting intents through the same validation as player commands.
func (s *Simulation) runOpponents() {
	w := s.World
	if w.GameOver || w.Day%OpponentCadenceDays != 0 {
		return
	}
	for _, f := range s.aiFactions {
		intents := PlanIntents(w, f, s.rng)
		for _, r := range intents.Recruits {
			s.recruitLocked(r.NodeID, r.Kind, r.Faction)
		}
		for _, m := range intents.Moves {
			u := w.UnitByID(m.UnitID)
			if u == nil || !u.Idle() {
				continue
			}
			u.Dest = m.To
			u.Path = nil
			u.Progress = 0
		}
	}
}
