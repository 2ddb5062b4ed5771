package finance

import "solar-proposal/internal/model"

// CostInput drives the annual operating cost.
type CostInput struct {
	GrossRevenue    float64
	MaintenanceRate float64 // percent of gross revenue
	ECFleetSize     int
	UseEC           bool
	BusinessModel   model.BusinessModel
	// LaborCost is the flat annual EC operating labor, not scaled per unit.
	LaborCost float64
}

// Cost is the annual operating cost and the profit left after it.
type Cost struct {
	MaintenanceCost    float64 `json:"maintenance_cost"`
	LaborCost          float64 `json:"labor_cost"`
	TotalCost          float64 `json:"total_cost"`
	NetOperatingProfit float64 `json:"net_operating_profit"`
}

// ECLaborCost returns the labor charge that applies for the given EC settings.
func ECLaborCost(fleetSize int, useEC bool, bm model.BusinessModel, flat float64) float64 {
	if fleetSize > 0 && useEC && !bm.IsGridOnly() {
		return flat
	}
	return 0
}

// ComputeCost returns maintenance plus EC labor, and net operating profit.
func ComputeCost(in CostInput) Cost {
	labor := ECLaborCost(model.ClampFleet(in.ECFleetSize), in.UseEC, in.BusinessModel, in.LaborCost)
	maint := in.GrossRevenue * in.MaintenanceRate / 100
	total := maint + labor
	return Cost{
		MaintenanceCost:    maint,
		LaborCost:          labor,
		TotalCost:          total,
		NetOperatingProfit: in.GrossRevenue - total,
	}
}
