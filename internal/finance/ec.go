package finance

import "solar-proposal/internal/model"

// Daily surplus thresholds (kWh/day) for the fleet recommendation.
const (
	ecTwoUnitThreshold   = 800
	ecThreeUnitThreshold = 1200
)

// ECAdvice is an advisory fleet recommendation; it never blocks a simulation.
type ECAdvice struct {
	DailySurplus     float64 `json:"daily_surplus"`
	RecommendedFleet int     `json:"recommended_fleet"`
	FleetSize        int     `json:"fleet_size"`
	FleetDailyKWh    float64 `json:"fleet_daily_kwh"`
	OverProvisioned  bool    `json:"over_provisioned"`
	UnderProvisioned bool    `json:"under_provisioned"`
	UtilizationPct   float64 `json:"utilization_pct"`
}

// RecommendECFleet sizes an EC fleet for rawSurplus annual kWh and checks fleetSize against it.
// The recommendation is capped at model.MaxECFleetSize regardless of surplus.
func RecommendECFleet(rawSurplus float64, fleetSize int) ECAdvice {
	fleetSize = model.ClampFleet(fleetSize)
	daily := max(0, rawSurplus) / DaysPerYear

	rec := 1
	switch {
	case daily > ecThreeUnitThreshold:
		rec = model.MaxECFleetSize
	case daily >= ecTwoUnitThreshold:
		rec = 2
	}

	capacity := float64(fleetSize) * ECUnitDailyKWh
	adv := ECAdvice{
		DailySurplus:     daily,
		RecommendedFleet: rec,
		FleetSize:        fleetSize,
		FleetDailyKWh:    capacity,
		OverProvisioned:  fleetSize > 0 && capacity > 2*daily,
		UnderProvisioned: daily > capacity,
	}
	if capacity > 0 {
		adv.UtilizationPct = min(daily, capacity) / capacity * 100
	}
	return adv
}
