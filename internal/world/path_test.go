package world

import (
	"testing"
)

// testWorld builds a small graph for traversal tests:
//
//	gate -- west -- strait(sea) -- east
//	          |                      |
//	        inland ---------------- far
func testWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld()
	add := func(id string, kind NodeKind, owner Faction) {
		w.AddNode(&Node{ID: id, Name: id, Kind: kind, Owner: owner})
	}
	add("gate", NodeCity, FactionRome)
	add("west", NodePort, FactionRome)
	add("strait", NodeSea, FactionNeutral)
	add("east", NodePort, FactionCarthage)
	add("inland", NodeCity, FactionNeutral)
	add("far", NodeCity, FactionCarthage)

	edges := [][2]string{
		{"gate", "west"},
		{"west", "strait"},
		{"strait", "east"},
		{"west", "inland"},
		{"inland", "far"},
		{"east", "far"},
	}
	for _, e := range edges {
		w.Nodes[e[0]].Adjacent = append(w.Nodes[e[0]].Adjacent, e[1])
		w.Nodes[e[1]].Adjacent = append(w.Nodes[e[1]].Adjacent, e[0])
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("test world invalid: %v", err)
	}
	return w
}

func TestFindPath_StartEqualsEnd(t *testing.T) {
	w := testWorld(t)
	path, ok := FindPath(w, "west", "west", FactionRome)
	if !ok {
		t.Fatal("start == end should succeed")
	}
	if len(path) != 0 {
		t.Errorf("expected empty path, got %v", path)
	}
}

func TestFindPath_DirectEdge(t *testing.T) {
	w := testWorld(t)
	path, ok := FindPath(w, "gate", "west", FactionRome)
	if !ok {
		t.Fatal("expected path along direct edge")
	}
	if len(path) != 1 || path[0] != "west" {
		t.Errorf("expected [west], got %v", path)
	}
}

func TestFindPath_BoardingRequiresFleet(t *testing.T) {
	w := testWorld(t)

	// No Roman fleet in the strait: west -> east must route overland.
	path, ok := FindPath(w, "west", "east", FactionRome)
	if !ok {
		t.Fatal("expected overland route")
	}
	want := []string{"inland", "far", "east"}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, path)
		}
	}

	// With a fleet on station the sea crossing is shorter.
	w.Units = append(w.Units, &Unit{Faction: FactionRome, Kind: UnitFleet, Location: "strait"})
	path, ok = FindPath(w, "west", "east", FactionRome)
	if !ok {
		t.Fatal("expected sea route with fleet present")
	}
	if len(path) != 2 || path[0] != "strait" || path[1] != "east" {
		t.Errorf("expected [strait east], got %v", path)
	}
}

func TestFindPath_EnemyFleetDoesNotHelp(t *testing.T) {
	w := testWorld(t)
	w.Units = append(w.Units, &Unit{Faction: FactionCarthage, Kind: UnitFleet, Location: "strait"})

	path, ok := FindPath(w, "west", "east", FactionRome)
	if !ok {
		t.Fatal("expected overland route")
	}
	if len(path) != 3 {
		t.Errorf("enemy fleet must not open the strait; got %v", path)
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	w := testWorld(t)
	// Cut the overland route; without a fleet the strait stays closed.
	w.Nodes["inland"].Adjacent = []string{"west"}
	w.Nodes["far"].Adjacent = []string{"east"}
	w.Nodes["west"].Adjacent = []string{"gate", "strait", "inland"}

	if _, ok := FindPath(w, "gate", "east", FactionRome); ok {
		t.Error("expected unreachable result")
	}
}

func TestFindPath_UnknownNode(t *testing.T) {
	w := testWorld(t)
	if _, ok := FindPath(w, "gate", "atlantis", FactionRome); ok {
		t.Error("unknown destination should be unreachable")
	}
}

func TestFindPath_SeaToLandAlwaysOpen(t *testing.T) {
	w := testWorld(t)
	// A fleet already at sea disembarks freely: strait -> east needs no
	// boarding check.
	path, ok := FindPath(w, "strait", "east", FactionRome)
	if !ok || len(path) != 1 || path[0] != "east" {
		t.Errorf("expected [east], got %v (ok=%v)", path, ok)
	}
}
