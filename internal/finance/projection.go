package finance

import "math"

// Projection is the multi-year profit summary.
type Projection struct {
	FirstYearProfit float64 `json:"first_year_profit"`
	TotalProfit20   float64 `json:"total_profit_20"`
	DegradationRate float64 `json:"degradation_rate"`
}

// ProjectionYear is one row of the yearly schedule.
type ProjectionYear struct {
	Year             int     `json:"year"`
	GenerationFactor float64 `json:"generation_factor"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// retention returns the year-over-year output ratio for a degradation percentage.
func retention(degradationPct float64) float64 {
	d := min(100, max(0, degradationPct))
	return 1 - d/100
}

// Project20Years sums first-year profit over ProjectionYears with output decaying
// geometrically by degradationPct per year.
func Project20Years(firstYearProfit, degradationPct float64) Projection {
	return Projection{
		FirstYearProfit: firstYearProfit,
		TotalProfit20:   GeometricTotal(firstYearProfit, degradationPct, ProjectionYears),
		DegradationRate: degradationPct,
	}
}

// GeometricTotal is first × (1 − Rⁿ)/(1 − R) with R = 1 − degradationPct/100,
// reducing to first × n when there is no degradation.
func GeometricTotal(first, degradationPct float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	r := retention(degradationPct)
	if r == 1 {
		return first * float64(n)
	}
	return first * (1 - math.Pow(r, float64(n))) / (1 - r)
}

// ProjectYears builds the explicit year-by-year schedule. Revenue and cost both
// scale with the generation factor, so profit in year n is profit₁ × R^(n−1) and the
// final cumulative profit matches GeometricTotal.
func ProjectYears(firstYearRevenue, firstYearCost, degradationPct float64, years int) []ProjectionYear {
	if years <= 0 {
		return nil
	}
	r := retention(degradationPct)
	rows := make([]ProjectionYear, 0, years)
	factor := 1.0
	cum := 0.0
	for y := 1; y <= years; y++ {
		rev := firstYearRevenue * factor
		cost := firstYearCost * factor
		profit := rev - cost
		cum += profit
		rows = append(rows, ProjectionYear{
			Year:             y,
			GenerationFactor: factor,
			Revenue:          rev,
			Cost:             cost,
			Profit:           profit,
			CumulativeProfit: cum,
		})
		factor *= r
	}
	return rows
}
