package world

import "testing"

func TestBuildWorld_Valid(t *testing.T) {
	w, err := BuildWorld()
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}
	if len(w.Nodes) != len(nodeSpecs) {
		t.Errorf("expected %d nodes, got %d", len(nodeSpecs), len(w.Nodes))
	}
	if len(w.NodeIDs()) != len(w.Nodes) {
		t.Error("canonical order must cover every node")
	}
}

func TestBuildWorld_CapitalsOwned(t *testing.T) {
	w, err := BuildWorld()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range Belligerents() {
		cap := w.Nodes[w.Capitals[f]]
		if cap == nil {
			t.Fatalf("%s has no capital node", f)
		}
		if cap.Owner != f {
			t.Errorf("%s capital %s owned by %s", f, cap.ID, cap.Owner)
		}
	}
}

func TestBuildWorld_SeaNodesInert(t *testing.T) {
	w, err := BuildWorld()
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range w.NodeIDs() {
		n := w.Nodes[id]
		if !n.IsSea() {
			continue
		}
		if n.Income != 0 || n.ManpowerGrowth != 0 || n.MaxManpower != 0 {
			t.Errorf("sea node %s has a land economy", id)
		}
	}
}

func TestBuildWorld_GarrisonsTrained(t *testing.T) {
	w, err := BuildWorld()
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Units) != len(garrisonSpecs) {
		t.Fatalf("expected %d garrison units, got %d", len(garrisonSpecs), len(w.Units))
	}
	for _, u := range w.Units {
		if u.Training {
			t.Errorf("garrison unit at %s should start trained", u.Location)
		}
		if !u.Idle() {
			t.Errorf("garrison unit at %s should start idle", u.Location)
		}
	}
}

func TestValidate_AsymmetricEdge(t *testing.T) {
	w := NewWorld()
	w.AddNode(&Node{ID: "a", Kind: NodeCity, Adjacent: []string{"b"}})
	w.AddNode(&Node{ID: "b", Kind: NodeCity})
	if err := w.Validate(); err == nil {
		t.Error("expected asymmetric edge to fail validation")
	}
}

func TestSpend_RejectsOverdraft(t *testing.T) {
	w := NewWorld()
	w.Gold[FactionRome] = 50
	if w.Spend(FactionRome, 80) {
		t.Error("overdraft should be rejected")
	}
	if w.Gold[FactionRome] != 50 {
		t.Errorf("rejected spend must not change gold, got %d", w.Gold[FactionRome])
	}
	if !w.Spend(FactionRome, 50) {
		t.Error("exact spend should succeed")
	}
	if w.Gold[FactionRome] != 0 {
		t.Errorf("expected empty treasury, got %d", w.Gold[FactionRome])
	}
}
