package engine

import (
	"testing"

	"github.com/aquila/marenostrum/internal/world"
)

func TestIsWinterDay_EffectiveCalendar(t *testing.T) {
	cases := []struct {
		day  int
		want bool
	}{
		{329, false},
		{330, true}, // window opens
		{364, true},
		{365, true}, // wraps: day-of-year 0
		{365 + 54, true},
		{365 + 55, false}, // window closes
		{100, false},
		{0, true},
		{54, true},
		{55, false},
	}
	for _, tc := range cases {
		if got := IsWinterDay(tc.day); got != tc.want {
			t.Errorf("IsWinterDay(%d) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestStep_ManpowerStaysBounded(t *testing.T) {
	s, w := testSim(t, 1)
	for i := 0; i < 400; i++ {
		s.Step()
	}
	for _, id := range w.NodeIDs() {
		n := w.Nodes[id]
		if n.Manpower < 0 || n.Manpower > n.MaxManpower {
			t.Errorf("node %s manpower %d outside [0, %d]", id, n.Manpower, n.MaxManpower)
		}
	}
}

func TestStep_GoldNeverNegative(t *testing.T) {
	s, w := testSim(t, 1)
	w.Gold[world.FactionRome] = 90

	// Burn the treasury down with a mix of accepted and rejected spends.
	s.Fortify("roma", world.FactionRome) // rejected: costs 100
	s.Recruit("roma", world.UnitLegion, world.FactionRome)
	s.Recruit("roma", world.UnitLegion, world.FactionRome) // rejected: 10 left
	for i := 0; i < 50; i++ {
		s.Step()
	}
	for f, g := range w.Gold {
		if g < 0 {
			t.Errorf("%s treasury went negative: %d", f, g)
		}
	}
}

func TestStep_TrainingTakesTwentyDays(t *testing.T) {
	s, w := testSim(t, 1)
	if !s.Recruit("roma", world.UnitLegion, world.FactionRome) {
		t.Fatal("recruit failed")
	}
	u := w.Units[0]

	for i := 0; i < 19; i++ {
		s.Step()
	}
	if !u.Training {
		t.Fatal("unit should still be in training on day 19")
	}
	s.Step()
	if u.Training {
		t.Error("unit should finish training on day 20")
	}
	if !u.Idle() {
		t.Error("trained unit should be idle and order-eligible")
	}
}

func TestStep_MovementArrivesAndContinues(t *testing.T) {
	s, w := testSim(t, 1)
	u := placeUnit(w, world.FactionRome, world.UnitLegion, "roma")
	if !s.Move("roma", "ager", world.FactionRome) {
		t.Fatal("move failed")
	}

	// 4 days per hop at 25/day.
	for i := 0; i < 4; i++ {
		s.Step()
	}
	if u.Location != "capua" {
		t.Fatalf("after 4 days expected capua, got %s", u.Location)
	}
	if u.Dest != "ager" {
		t.Errorf("queued hop should continue, dest %q", u.Dest)
	}
	for i := 0; i < 4; i++ {
		s.Step()
	}
	if u.Location != "ager" || u.Moving() {
		t.Errorf("expected idle at ager, got %s moving=%v", u.Location, u.Moving())
	}
}

func TestStep_ConquestDomainRules(t *testing.T) {
	s, w := testSim(t, 1)
	legion := placeUnit(w, world.FactionRome, world.UnitLegion, "tyrrhenum")
	fleet := placeUnit(w, world.FactionRome, world.UnitFleet, "ager")

	s.Step()

	if w.Nodes["tyrrhenum"].Owner != world.FactionNeutral {
		t.Error("a land unit must not capture a sea zone")
	}
	if w.Nodes["ager"].Owner != world.FactionNeutral {
		t.Error("a fleet must not capture a land node")
	}
	// Swap domains and both captures go through.
	legion.Location = "ager"
	fleet.Location = "tyrrhenum"
	s.Step()
	if w.Nodes["ager"].Owner != world.FactionRome {
		t.Error("land unit should capture the neutral city")
	}
	if w.Nodes["tyrrhenum"].Owner != world.FactionRome {
		t.Error("fleet should capture the neutral sea zone")
	}
}

func TestStep_ConquestResetsFortification(t *testing.T) {
	s, w := testSim(t, 1)
	w.Nodes["ager"].Fortification = 2
	placeUnit(w, world.FactionRome, world.UnitLegion, "ager")

	s.Step()
	if w.Nodes["ager"].Fortification != 0 {
		t.Errorf("conquest must reset fortification, got %d", w.Nodes["ager"].Fortification)
	}
}

func TestStep_CapitalCaptureEndsGame(t *testing.T) {
	s, w := testSim(t, 1)
	placeUnit(w, world.FactionCarthage, world.UnitLevy, "roma")

	s.Step()
	if !w.GameOver {
		t.Fatal("capturing the Roman capital must end the game")
	}
	if w.Winner != world.FactionCarthage {
		t.Errorf("winner %s, want Carthage", w.Winner)
	}

	day := w.Day
	goldBefore := w.Gold[world.FactionRome]
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if w.Winner != world.FactionCarthage {
		t.Error("further ticks must not change the winner")
	}
	if w.Day != day || w.Gold[world.FactionRome] != goldBefore {
		t.Error("the world must stay frozen after game over")
	}
}

func TestStep_CommandsRejectedAfterGameOver(t *testing.T) {
	s, w := testSim(t, 1)
	placeUnit(w, world.FactionCarthage, world.UnitLevy, "roma")
	s.Step()
	if !w.GameOver {
		t.Fatal("expected game over")
	}
	if s.Recruit("carthago", world.UnitLevy, world.FactionCarthage) {
		t.Error("recruit after game over must be rejected")
	}
	if s.Fortify("carthago", world.FactionCarthage) {
		t.Error("fortify after game over must be rejected")
	}
}

func TestStep_WinterRetreat(t *testing.T) {
	s, w := testSim(t, 1)
	w.Day = 334 // next tick is day 335, deep in the winter window
	w.Winter = IsWinterDay(w.Day)

	legion := placeUnit(w, world.FactionRome, world.UnitLegion, "capua")
	legion.Origin = "roma" // direct neighbor of capua
	stranded := placeUnit(w, world.FactionRome, world.UnitLegion, "ager")
	stranded.Origin = "roma" // not adjacent to ager
	fleet := placeUnit(w, world.FactionRome, world.UnitFleet, "tyrrhenum")
	fleet.Origin = "ostia"

	s.Step()

	if legion.Dest != "roma" {
		t.Errorf("winter must force a retreat hop toward origin, dest %q", legion.Dest)
	}
	if stranded.Moving() {
		t.Error("unit without its origin adjacent stays put")
	}
	if fleet.Moving() {
		t.Error("fleets are exempt from winter retreat")
	}
}

func TestStep_AnnualIncomeOnAutumnDay(t *testing.T) {
	s, w := testSim(t, 1)
	w.Day = AutumnIncomeDay - 1
	w.Winter = IsWinterDay(w.Day)
	goldBefore := w.Gold[world.FactionRome]

	s.Step()

	// Rome owns roma(100) + capua(80) + ostia(120).
	want := goldBefore + 300
	if w.Gold[world.FactionRome] != want {
		t.Errorf("gold %d, want %d", w.Gold[world.FactionRome], want)
	}
}

func TestStep_TradeIncomePerSeaZone(t *testing.T) {
	s, w := testSim(t, 1)
	w.Nodes["tyrrhenum"].Owner = world.FactionCarthage
	goldBefore := w.Gold[world.FactionCarthage]

	s.Step()

	if got := w.Gold[world.FactionCarthage]; got != goldBefore+TradeGoldPerSeaZone {
		t.Errorf("gold %d, want %d", got, goldBefore+TradeGoldPerSeaZone)
	}
}

func TestStep_CombatRemovesLoser(t *testing.T) {
	s, w := testSim(t, 1)
	placeUnit(w, world.FactionRome, world.UnitLegion, "ager")
	placeUnit(w, world.FactionCarthage, world.UnitLevy, "ager")

	s.Step()

	if len(w.Units) != 1 {
		t.Fatalf("expected exactly one survivor, got %d", len(w.Units))
	}
	survivor := w.Units[0]
	if survivor.Strength < MinStrength {
		t.Errorf("survivor strength %v below floor", survivor.Strength)
	}
}
