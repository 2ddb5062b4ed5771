package energy

import (
	"math"
	"testing"

	"solar-proposal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatYear is the 500 kW factory: 50,000 kWh/month, 30,000 kWh self-consumed, no measured peak.
func flatYear() []model.MonthlyRecord {
	records := make([]model.MonthlyRecord, model.MonthsPerYear)
	for i := range records {
		records[i] = model.MonthlyRecord{
			Month:           i + 1,
			UsageKWh:        50_000,
			SelfConsumption: 30_000,
			TotalBill:       8_000_000,
			BaseBill:        1_000_000,
		}
	}
	return records
}

func TestComputeMonthlyFlatFactory(t *testing.T) {
	p := model.DefaultPricing()
	m := ComputeMonthly(flatYear(), 500, p.BaseRate, 0, p)

	require.Len(t, m.PerMonth, 12)
	assert.InDelta(t, 664_300, m.Totals.SolarGeneration, 1e-6)
	assert.InDelta(t, 500*3.64*31, m.PerMonth[0].SolarGeneration, 1e-9)
	assert.InDelta(t, 500*3.64*28, m.PerMonth[1].SolarGeneration, 1e-9)

	assert.InDelta(t, 0.6, m.DynamicPeakRatio, 1e-12)
	// No peak recorded: base bill savings use the annual self-consumption ratio.
	assert.InDelta(t, 600_000, m.PerMonth[0].BaseBillSavings, 1e-6)
	assert.InDelta(t, 30_000*p.SavingsPrice, m.PerMonth[0].MaxLoadSavings, 1e-6)
	assert.InDelta(t, 60, m.MaxLoadRatio, 1e-9)
	assert.InDelta(t, m.Totals.TotalSavings+m.Totals.SurplusRevenue, m.TotalBenefit, 1e-6)
	assert.InDelta(t, m.Totals.TotalSavings/m.Totals.TotalBill*100, m.SavingRate, 1e-9)
}

func TestComputeMonthlyMeasuredPeak(t *testing.T) {
	p := model.DefaultPricing()
	records := flatYear()
	records[0].PeakKW = 100
	records[1].PeakKW = 1000 // demand charge above the base bill

	m := ComputeMonthly(records, 500, p.BaseRate, 0, p)
	assert.InDelta(t, 1_000_000-p.BaseRate*100, m.PerMonth[0].BaseBillSavings, 1e-6)
	assert.Equal(t, 0.0, m.PerMonth[1].BaseBillSavings)
}

func TestComputeMonthlyGenerationOverride(t *testing.T) {
	p := model.DefaultPricing()
	records := flatYear()
	records[5].SolarGeneration = 12_345
	m := ComputeMonthly(records, 500, p.BaseRate, 0, p)
	assert.Equal(t, 12_345.0, m.PerMonth[5].SolarGeneration)
	assert.Equal(t, 0.0, m.PerMonth[5].SurplusPower)
	assert.InDelta(t, 12_345*p.SavingsPrice, m.PerMonth[5].MaxLoadSavings, 1e-6)
}

func TestComputeMonthlyAfterBillNeverNegative(t *testing.T) {
	p := model.DefaultPricing()
	records := flatYear()
	records[0].TotalBill = 10
	m := ComputeMonthly(records, 500, p.BaseRate, 0, p)
	assert.Equal(t, 0.0, m.PerMonth[0].AfterBill)
}

func TestComputeMonthlyExplicitSavingsPrice(t *testing.T) {
	p := model.DefaultPricing()
	m := ComputeMonthly(flatYear(), 500, p.BaseRate, 100, p)
	assert.InDelta(t, 30_000*100, m.PerMonth[0].MaxLoadSavings, 1e-6)
}

func TestComputeMonthlyZeroDivision(t *testing.T) {
	p := model.DefaultPricing()
	m := ComputeMonthly(model.EmptyYear(), 0, p.BaseRate, 0, p)

	for _, v := range []float64{m.SavingRate, m.CustomSavingRate, m.MaxLoadRatio, m.DynamicPeakRatio, m.TotalBenefit} {
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
}

func TestComputeMonthlyDoesNotMutateInput(t *testing.T) {
	p := model.DefaultPricing()
	records := flatYear()
	before := append([]model.MonthlyRecord(nil), records...)
	_ = ComputeMonthly(records, 500, p.BaseRate, 0, p)
	assert.Equal(t, before, records)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(0, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 31, DaysInMonth(0, 12))
	assert.Equal(t, 30, DaysInMonth(2023, 4))
	assert.Equal(t, 0, DaysInMonth(0, 13))

	total := 0
	for m := 1; m <= 12; m++ {
		total += DaysInMonth(0, m)
	}
	assert.Equal(t, 365, total)
}
