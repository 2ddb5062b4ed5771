package model

import (
	"errors"
	"fmt"
	"math"
)

// PricingConfig is the process-wide price snapshot every calculation reads.
// Units:
// - Solar*Price: KRW per 100 kW of installed capacity
// - ECUnitPrice, TractorPrice, PlatformPrice: KRW one-time
// - *Price per kWh: KRW/kWh
// - RPSRate, FactoringRate: percent per year
// - RentalPricePerKW: KRW per kW per year
// - Irradiance: kWh generated per kW per day
// - ModuleWattage: W per module
// - ECLaborCost: KRW per year, flat
// - BaseRate: demand charge in KRW per kW per month
// - AreaPerKW: m² of site area needed per kW
type PricingConfig struct {
	SolarPricePremium  float64 `json:"solar_price_premium" yaml:"solar_price_premium"`
	SolarPriceStandard float64 `json:"solar_price_standard" yaml:"solar_price_standard"`
	SolarPriceEconomy  float64 `json:"solar_price_economy" yaml:"solar_price_economy"`
	ECUnitPrice        float64 `json:"ec_unit_price" yaml:"ec_unit_price"`
	TractorPrice       float64 `json:"tractor_price" yaml:"tractor_price"`
	PlatformPrice      float64 `json:"platform_price" yaml:"platform_price"`

	GridPrice      float64 `json:"grid_price" yaml:"grid_price"`
	SavingsPrice   float64 `json:"savings_price" yaml:"savings_price"`
	ECPriceCurrent float64 `json:"ec_price_current" yaml:"ec_price_current"`
	ECPriceFuture  float64 `json:"ec_price_future" yaml:"ec_price_future"`

	RPSRate       float64 `json:"rps_rate" yaml:"rps_rate"`
	FactoringRate float64 `json:"factoring_rate" yaml:"factoring_rate"`

	RentalPricePerKW         float64 `json:"rental_price_per_kw" yaml:"rental_price_per_kw"`
	SubscriptionSelfPrice    float64 `json:"subscription_self_price" yaml:"subscription_self_price"`
	SubscriptionSurplusPrice float64 `json:"subscription_surplus_price" yaml:"subscription_surplus_price"`

	Irradiance    float64 `json:"irradiance" yaml:"irradiance"`
	ModuleWattage float64 `json:"module_wattage" yaml:"module_wattage"`
	ECLaborCost   float64 `json:"ec_labor_cost" yaml:"ec_labor_cost"`
	BaseRate      float64 `json:"base_rate" yaml:"base_rate"`
	AreaPerKW     float64 `json:"area_per_kw" yaml:"area_per_kw"`
}

// DefaultPricing returns the stock price sheet.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		SolarPricePremium:  130_000_000,
		SolarPriceStandard: 110_000_000,
		SolarPriceEconomy:  95_000_000,
		ECUnitPrice:        250_000_000,
		TractorPrice:       60_000_000,
		PlatformPrice:      30_000_000,

		GridPrice:      192.79,
		SavingsPrice:   136.47,
		ECPriceCurrent: 220,
		ECPriceFuture:  250,

		RPSRate:       1.75,
		FactoringRate: 5.5,

		RentalPricePerKW:         150_000,
		SubscriptionSelfPrice:    110,
		SubscriptionSurplusPrice: 100,

		Irradiance:    3.64,
		ModuleWattage: 640,
		ECLaborCost:   40_000_000,
		BaseRate:      8_320,
		AreaPerKW:     4.6,
	}
}

// SolarUnitPrice returns the per-100kW price for tier, falling back to the standard tier.
func (p PricingConfig) SolarUnitPrice(tier ModuleTier) float64 {
	switch tier.Normalize() {
	case TierPremium:
		return p.SolarPricePremium
	case TierEconomy:
		return p.SolarPriceEconomy
	default:
		return p.SolarPriceStandard
	}
}

// Validate rejects negative prices and rates.
func (p PricingConfig) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"solar_price_premium", p.SolarPricePremium},
		{"solar_price_standard", p.SolarPriceStandard},
		{"solar_price_economy", p.SolarPriceEconomy},
		{"ec_unit_price", p.ECUnitPrice},
		{"tractor_price", p.TractorPrice},
		{"platform_price", p.PlatformPrice},
		{"grid_price", p.GridPrice},
		{"savings_price", p.SavingsPrice},
		{"ec_price_current", p.ECPriceCurrent},
		{"ec_price_future", p.ECPriceFuture},
		{"rps_rate", p.RPSRate},
		{"factoring_rate", p.FactoringRate},
		{"rental_price_per_kw", p.RentalPricePerKW},
		{"subscription_self_price", p.SubscriptionSelfPrice},
		{"subscription_surplus_price", p.SubscriptionSurplusPrice},
		{"irradiance", p.Irradiance},
		{"module_wattage", p.ModuleWattage},
		{"ec_labor_cost", p.ECLaborCost},
		{"base_rate", p.BaseRate},
		{"area_per_kw", p.AreaPerKW},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be finite (got %v)", f.name, f.v)
		}
		if f.v < 0 {
			return fmt.Errorf("%s must be >= 0 (got %v)", f.name, f.v)
		}
	}
	if p.Irradiance == 0 {
		return errors.New("irradiance must be > 0")
	}
	return nil
}
