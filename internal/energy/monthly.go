// Package energy turns monthly utility records into solar generation, savings
// and post-installation bill figures.
package energy

import (
	"time"

	"solar-proposal/internal/model"
)

// ReferenceYear is the non-leap year used for days-in-month when a record carries no year.
const ReferenceYear = 2023

// MonthMetrics is the per-month breakdown.
type MonthMetrics struct {
	Month           int     `json:"month"`
	Days            int     `json:"days"`
	UsageKWh        float64 `json:"usage_kwh"`
	SelfConsumption float64 `json:"self_consumption"`
	SolarGeneration float64 `json:"solar_generation"`
	SurplusPower    float64 `json:"surplus_power"`
	MaxLoadSavings  float64 `json:"max_load_savings"`
	BaseBillSavings float64 `json:"base_bill_savings"`
	TotalSavings    float64 `json:"total_savings"`
	TotalBill       float64 `json:"total_bill"`
	BaseBill        float64 `json:"base_bill"`
	AfterBill       float64 `json:"after_bill"`
	SurplusRevenue  float64 `json:"surplus_revenue"`
}

// Totals sums every per-month field.
type Totals struct {
	UsageKWh        float64 `json:"usage_kwh"`
	SelfConsumption float64 `json:"self_consumption"`
	SolarGeneration float64 `json:"solar_generation"`
	SurplusPower    float64 `json:"surplus_power"`
	MaxLoadSavings  float64 `json:"max_load_savings"`
	BaseBillSavings float64 `json:"base_bill_savings"`
	TotalSavings    float64 `json:"total_savings"`
	TotalBill       float64 `json:"total_bill"`
	BaseBill        float64 `json:"base_bill"`
	AfterBill       float64 `json:"after_bill"`
	SurplusRevenue  float64 `json:"surplus_revenue"`
}

// MonthlyMetrics is the result of ComputeMonthly.
// SavingRate, CustomSavingRate and MaxLoadRatio are percentages;
// DynamicPeakRatio is a fraction in [0,1] for typical inputs.
type MonthlyMetrics struct {
	PerMonth         []MonthMetrics `json:"per_month"`
	Totals           Totals         `json:"totals"`
	SavingRate       float64        `json:"saving_rate"`
	CustomSavingRate float64        `json:"custom_saving_rate"`
	MaxLoadRatio     float64        `json:"max_load_ratio"`
	TotalBenefit     float64        `json:"total_benefit"`
	DynamicPeakRatio float64        `json:"dynamic_peak_ratio"`
}

// ComputeMonthly derives per-month and annual energy figures.
//
// baseRate is the demand charge per kW used when a month has a measured peak.
// unitPriceSavings is the KRW/kWh value of self-consumed solar; pass 0 to use pricing.SavingsPrice.
// records is read only.
func ComputeMonthly(records []model.MonthlyRecord, capacityKW, baseRate, unitPriceSavings float64, pricing model.PricingConfig) MonthlyMetrics {
	if unitPriceSavings <= 0 {
		unitPriceSavings = pricing.SavingsPrice
	}

	// The unmeasured-peak fallback uses one ratio for the whole year.
	var annualUsage, annualSelf float64
	for _, r := range records {
		annualUsage += r.UsageKWh
		annualSelf += r.SelfConsumption
	}
	dynamicPeakRatio := safeDiv(annualSelf, annualUsage)

	out := MonthlyMetrics{
		PerMonth:         make([]MonthMetrics, 0, len(records)),
		DynamicPeakRatio: dynamicPeakRatio,
	}

	for _, r := range records {
		days := DaysInMonth(r.Year, r.Month)
		gen := r.SolarGeneration
		if gen <= 0 {
			gen = capacityKW * pricing.Irradiance * float64(days)
		}

		surplus := max(0, gen-r.SelfConsumption)
		maxLoadSavings := min(gen, r.SelfConsumption) * unitPriceSavings

		var baseBillSavings float64
		if r.PeakKW > 0 {
			baseBillSavings = max(0, r.BaseBill-baseRate*r.PeakKW)
		} else {
			baseBillSavings = r.BaseBill * dynamicPeakRatio
		}

		totalSavings := maxLoadSavings + baseBillSavings
		m := MonthMetrics{
			Month:           r.Month,
			Days:            days,
			UsageKWh:        r.UsageKWh,
			SelfConsumption: r.SelfConsumption,
			SolarGeneration: gen,
			SurplusPower:    surplus,
			MaxLoadSavings:  maxLoadSavings,
			BaseBillSavings: baseBillSavings,
			TotalSavings:    totalSavings,
			TotalBill:       r.TotalBill,
			BaseBill:        r.BaseBill,
			AfterBill:       max(0, r.TotalBill-totalSavings),
			SurplusRevenue:  surplus * pricing.GridPrice,
		}
		out.PerMonth = append(out.PerMonth, m)
		out.Totals.add(m)
	}

	t := out.Totals
	out.SavingRate = safeDiv(t.TotalSavings, t.TotalBill) * 100
	out.TotalBenefit = t.TotalSavings + t.SurplusRevenue
	out.CustomSavingRate = safeDiv(out.TotalBenefit, t.TotalBill) * 100
	out.MaxLoadRatio = safeDiv(t.SelfConsumption, t.UsageKWh) * 100
	return out
}

func (t *Totals) add(m MonthMetrics) {
	t.UsageKWh += m.UsageKWh
	t.SelfConsumption += m.SelfConsumption
	t.SolarGeneration += m.SolarGeneration
	t.SurplusPower += m.SurplusPower
	t.MaxLoadSavings += m.MaxLoadSavings
	t.BaseBillSavings += m.BaseBillSavings
	t.TotalSavings += m.TotalSavings
	t.TotalBill += m.TotalBill
	t.BaseBill += m.BaseBill
	t.AfterBill += m.AfterBill
	t.SurplusRevenue += m.SurplusRevenue
}

// DaysInMonth returns the number of days in month of year.
// year <= 0 selects ReferenceYear; an out-of-range month yields 0.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if year <= 0 {
		year = ReferenceYear
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
