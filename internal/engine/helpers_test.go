package engine

import (
	"testing"

	"github.com/aquila/marenostrum/internal/entropy"
	"github.com/aquila/marenostrum/internal/narrative"
	"github.com/aquila/marenostrum/internal/world"
)

// testSim builds a compact theater for engine tests:
//
//	ager -- capua -- roma -- ostia -- tyrrhenum(sea) -- carthago
//
// Roma and Carthago are the capitals. No starting units; tests place
// their own.
func testSim(t *testing.T, seed int64) (*Simulation, *world.World) {
	t.Helper()
	w := world.NewWorld()

	add := func(id string, kind world.NodeKind, owner world.Faction, income, growth, manpower, maxManpower int) {
		w.AddNode(&world.Node{
			ID: id, Name: id, Kind: kind, Owner: owner,
			Income: income, ManpowerGrowth: growth,
			Manpower: manpower, MaxManpower: maxManpower,
		})
	}
	add("roma", world.NodeCity, world.FactionRome, 100, 5, 100, 200)
	add("capua", world.NodeCity, world.FactionRome, 80, 4, 100, 150)
	add("ostia", world.NodePort, world.FactionRome, 120, 3, 100, 150)
	add("tyrrhenum", world.NodeSea, world.FactionNeutral, 0, 0, 0, 0)
	add("carthago", world.NodePort, world.FactionCarthage, 100, 5, 100, 200)
	add("ager", world.NodeCity, world.FactionNeutral, 50, 2, 50, 100)

	edges := [][2]string{
		{"ager", "capua"},
		{"capua", "roma"},
		{"roma", "ostia"},
		{"ostia", "tyrrhenum"},
		{"tyrrhenum", "carthago"},
	}
	for _, e := range edges {
		w.Nodes[e[0]].Adjacent = append(w.Nodes[e[0]].Adjacent, e[1])
		w.Nodes[e[1]].Adjacent = append(w.Nodes[e[1]].Adjacent, e[0])
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("test world invalid: %v", err)
	}

	w.Capitals[world.FactionRome] = "roma"
	w.Capitals[world.FactionCarthage] = "carthago"
	w.Gold[world.FactionRome] = 1000
	w.Gold[world.FactionCarthage] = 1000
	w.Day = 100 // high summer
	w.Winter = IsWinterDay(w.Day)

	s := NewSimulation(w, entropy.NewSource(seed), narrative.NewReporter(nil), nil)
	return s, w
}

// placeUnit drops a fully trained unit at a node.
func placeUnit(w *world.World, f world.Faction, kind world.UnitKind, nodeID string) *world.Unit {
	u := world.NewUnit(f, kind, nodeID, MaxStrength)
	u.Training = false
	u.TrainingProgress = 100
	w.Units = append(w.Units, u)
	return u
}
