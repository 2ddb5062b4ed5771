package energy

import (
	"math"

	"solar-proposal/internal/model"
)

// CapacityAdvice is the installable capacity for a site.
type CapacityAdvice struct {
	SiteAreaM2  float64 `json:"site_area_m2"`
	CapacityKW  float64 `json:"capacity_kw"`
	ModuleCount int     `json:"module_count"`
	// AnnualGenerationKWh uses the configured irradiance over a 365-day year.
	AnnualGenerationKWh float64 `json:"annual_generation_kwh"`
}

// RecommendCapacity sizes an array for siteAreaM2. Capacity is rounded down to
// whole modules so the advice never promises more than the roof holds.
func RecommendCapacity(siteAreaM2 float64, pricing model.PricingConfig) CapacityAdvice {
	out := CapacityAdvice{SiteAreaM2: siteAreaM2}
	if siteAreaM2 <= 0 || pricing.AreaPerKW <= 0 || pricing.ModuleWattage <= 0 {
		return out
	}
	rawKW := siteAreaM2 / pricing.AreaPerKW
	modules := int(math.Floor(rawKW * 1000 / pricing.ModuleWattage))
	out.ModuleCount = modules
	out.CapacityKW = float64(modules) * pricing.ModuleWattage / 1000
	out.AnnualGenerationKWh = out.CapacityKW * pricing.Irradiance * 365
	return out
}

// ModuleCount returns how many modules make up capacityKW, rounded up.
func ModuleCount(capacityKW float64, pricing model.PricingConfig) int {
	if capacityKW <= 0 || pricing.ModuleWattage <= 0 {
		return 0
	}
	return int(math.Ceil(capacityKW * 1000 / pricing.ModuleWattage))
}
