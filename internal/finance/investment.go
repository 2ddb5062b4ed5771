package finance

import "solar-proposal/internal/model"

// ProjectionYears is the horizon of every multi-year figure.
const ProjectionYears = 20

// capacityBillingUnitKW is the capacity covered by one solar unit price.
const capacityBillingUnitKW = 100

// InvestmentInput sizes the capital outlay.
type InvestmentInput struct {
	CapacityKW    float64
	ModuleTier    model.ModuleTier
	ECFleetSize   int
	UseEC         bool
	BusinessModel model.BusinessModel
	// AnnualOperatingCost feeds the 20-year total cost of ownership.
	AnnualOperatingCost float64
	Pricing             model.PricingConfig
}

// Investment is the initial capital and 20-year cost of ownership.
type Investment struct {
	SolarUnitPrice float64 `json:"solar_unit_price"`
	SolarCost      float64 `json:"solar_cost"`
	ECCost         float64 `json:"ec_cost"`
	TractorCost    float64 `json:"tractor_cost"`
	PlatformCost   float64 `json:"platform_cost"`
	TotalInitial   float64 `json:"total_initial"`
	// AnnualizedInitial is TotalInitial spread over the horizon (shown for KEPCO).
	AnnualizedInitial float64 `json:"annualized_initial"`
	TotalOver20Years  float64 `json:"total_over_20_years"`
}

// ComputeInvestment prices the installation. EC, tractor and platform costs only
// apply when EC is in use on a non-KEPCO model with at least one unit; tractor and
// platform are flat one-time costs regardless of fleet size.
func ComputeInvestment(in InvestmentInput) Investment {
	p := in.Pricing
	fleet := model.ClampFleet(in.ECFleetSize)
	bm := in.BusinessModel.Normalize()

	out := Investment{SolarUnitPrice: p.SolarUnitPrice(in.ModuleTier)}
	out.SolarCost = max(0, in.CapacityKW) / capacityBillingUnitKW * out.SolarUnitPrice
	if in.UseEC && !bm.IsGridOnly() && fleet > 0 {
		out.ECCost = float64(fleet) * p.ECUnitPrice
		out.TractorCost = p.TractorPrice
		out.PlatformCost = p.PlatformPrice
	}
	out.TotalInitial = out.SolarCost + out.ECCost + out.TractorCost + out.PlatformCost
	out.AnnualizedInitial = out.TotalInitial / ProjectionYears

	// KEPCO proposals present the initial cost amortised per year, so the
	// 20-year figure is rebuilt from the annual view.
	if bm.IsGridOnly() {
		out.TotalOver20Years = (out.AnnualizedInitial + in.AnnualOperatingCost) * ProjectionYears
	} else {
		out.TotalOver20Years = out.TotalInitial + in.AnnualOperatingCost*ProjectionYears
	}
	return out
}
