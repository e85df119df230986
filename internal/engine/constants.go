package engine

import "github.com/aquila/marenostrum/internal/world"

// Calendar.
const (
	DaysPerYear = 365

	// Winter runs from day-of-year 330 for 90 days, wrapping the year
	// boundary: days 330..364 and 0..54 are winter.
	WinterStartDay = 330
	WinterDuration = 90

	// AutumnIncomeDay is the day-of-year on which annual revenues land.
	AutumnIncomeDay = 244
)

// Costs and caps.
const (
	LandUnitGoldCost     = 80
	LandUnitManpowerCost = 50
	FleetGoldCost        = 120
	FleetManpowerCost    = 30

	FortifyCost      = 100
	MaxFortification = 3

	TradeGoldPerSeaZone = 2
)

// Unit pacing and combat tuning.
const (
	MaxStrength     = 100.0
	MinStrength     = 10.0 // floor after a won battle; losers are destroyed
	WinnerAttrition = 20.0 // divided by the winner's modifier

	TrainingRate = 5.0  // per day; 20 days from muster to field
	MovementRate = 25.0 // per day; 4 days per hop

	NavalModifier      = 1.5 // fleets fighting in a sea zone
	FortificationBonus = 0.5 // per level, additive, owner-defended nodes
)

// Opponent policy tuning.
const (
	OpponentCadenceDays = 20
	FleetRecruitChance  = 0.3
	MoveFrictionChance  = 0.4
)

// IsWinterDay reports whether a day counter falls in the winter window.
func IsWinterDay(day int) bool {
	doy := day % DaysPerYear
	return doy >= WinterStartDay || doy < WinterStartDay+WinterDuration-DaysPerYear
}

// UnitCosts returns the gold and manpower price of a unit kind.
func UnitCosts(kind world.UnitKind) (gold, manpower int) {
	if kind == world.UnitFleet {
		return FleetGoldCost, FleetManpowerCost
	}
	return LandUnitGoldCost, LandUnitManpowerCost
}
