// Package finance holds the revenue, cost, investment, projection and
// financing calculations. Every function is pure; callers own their inputs.
package finance

import "solar-proposal/internal/model"

// ECUnitDailyKWh is what one EC unit can carry per day: a 100 kW-equivalent
// unit cycled four times.
const ECUnitDailyKWh = 100 * 4

// DaysPerYear is the horizon used for EC capacity and daily surplus.
const DaysPerYear = 365

// RevenueInput carries annual volumes plus the business settings that split them.
type RevenueInput struct {
	AnnualGeneration      float64
	AnnualSelfConsumption float64
	BusinessModel         model.BusinessModel
	ContractClass         model.ContractClass
	UseEC                 bool
	ECFleetSize           int
	// RECAveragePrice replaces pricing.ECPriceCurrent for RE100 when > 0.
	RECAveragePrice        float64
	RationalizationSavings float64
	Pricing                model.PricingConfig
}

// Revenue partitions generation into self-consumption, EC-sold and grid-sold volumes.
type Revenue struct {
	VolumeSelf     float64 `json:"volume_self"`
	VolumeEC       float64 `json:"volume_ec"`
	VolumeSurplus  float64 `json:"volume_surplus"`
	RawSurplus     float64 `json:"raw_surplus"`
	ECCapacity     float64 `json:"ec_capacity"`
	ECSellPrice    float64 `json:"ec_sell_price"`
	RevenueSaving  float64 `json:"revenue_saving"`
	RevenueEC      float64 `json:"revenue_ec"`
	RevenueSurplus float64 `json:"revenue_surplus"`
	// RationalizationSavings is the share actually credited to gross revenue.
	RationalizationSavings float64 `json:"rationalization_savings"`
	GrossRevenue           float64 `json:"gross_revenue"`
}

// ECAnnualCapacity is the kWh a fleet can move in a year.
func ECAnnualCapacity(fleetSize int) float64 {
	return float64(model.ClampFleet(fleetSize)) * ECUnitDailyKWh * DaysPerYear
}

// ComputeRevenue splits annual generation and prices each volume.
func ComputeRevenue(in RevenueInput) Revenue {
	p := in.Pricing
	gen := max(0, in.AnnualGeneration)
	bm := in.BusinessModel.Normalize()

	if bm == model.ModelKEPCO {
		r := Revenue{
			VolumeSurplus:  gen,
			RawSurplus:     gen,
			RevenueSurplus: gen * p.GridPrice,
		}
		r.GrossRevenue = r.RevenueSurplus
		return r
	}

	self := max(0, in.AnnualSelfConsumption)
	r := Revenue{
		VolumeSelf: min(gen, self),
		RawSurplus: max(0, gen-self),
		ECCapacity: ECAnnualCapacity(in.ECFleetSize),
	}
	if in.UseEC {
		r.VolumeEC = min(r.RawSurplus, r.ECCapacity)
	}
	r.VolumeSurplus = r.RawSurplus - r.VolumeEC
	r.ECSellPrice = ECSellPrice(bm, in.RECAveragePrice, p)

	r.RevenueSaving = r.VolumeSelf * p.SavingsPrice
	r.RevenueEC = r.VolumeEC * r.ECSellPrice
	r.RevenueSurplus = r.VolumeSurplus * p.GridPrice
	if in.ContractClass.IsHigh() {
		r.RationalizationSavings = in.RationalizationSavings
	}
	r.GrossRevenue = r.RevenueSaving + r.RevenueEC + r.RevenueSurplus + r.RationalizationSavings
	return r
}

// ECSellPrice is the KRW/kWh paid for EC-delivered energy under bm.
func ECSellPrice(bm model.BusinessModel, recAveragePrice float64, p model.PricingConfig) float64 {
	switch bm.Normalize() {
	case model.ModelKEPCO:
		return 0
	case model.ModelREC5:
		return p.ECPriceFuture
	default:
		if recAveragePrice > 0 {
			return recAveragePrice
		}
		return p.ECPriceCurrent
	}
}
