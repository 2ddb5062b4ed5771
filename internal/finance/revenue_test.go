package finance

import (
	"testing"

	"solar-proposal/internal/model"

	"github.com/stretchr/testify/assert"
)

const flatFactoryGeneration = 500 * 3.64 * 365 // 664,300 kWh

func flatFactoryRevenue(bm model.BusinessModel) RevenueInput {
	return RevenueInput{
		AnnualGeneration:      flatFactoryGeneration,
		AnnualSelfConsumption: 360_000,
		BusinessModel:         bm,
		Pricing:               model.DefaultPricing(),
	}
}

func TestComputeRevenueRE100WithoutEC(t *testing.T) {
	r := ComputeRevenue(flatFactoryRevenue(model.ModelRE100))

	assert.InDelta(t, 360_000, r.VolumeSelf, 1e-9)
	assert.InDelta(t, 304_300, r.RawSurplus, 1e-6)
	assert.InDelta(t, 304_300, r.VolumeSurplus, 1e-6)
	assert.Equal(t, 0.0, r.VolumeEC)
	assert.InDelta(t, 49_129_200, r.RevenueSaving, 1e-3)
	assert.InDelta(t, 58_665_997, r.RevenueSurplus, 1e-3)
	assert.InDelta(t, 107_795_197, r.GrossRevenue, 1)
}

func TestComputeRevenueKEPCOExclusivity(t *testing.T) {
	in := flatFactoryRevenue(model.ModelKEPCO)
	in.UseEC = true
	in.ECFleetSize = 2
	in.ContractClass = model.ContractHigh
	in.RationalizationSavings = 5_000_000

	r := ComputeRevenue(in)
	assert.Equal(t, 0.0, r.VolumeSelf)
	assert.Equal(t, 0.0, r.VolumeEC)
	assert.InDelta(t, flatFactoryGeneration, r.VolumeSurplus, 1e-9)
	assert.Equal(t, 0.0, r.RationalizationSavings)
	assert.InDelta(t, 664_300*192.79, r.GrossRevenue, 1e-3)
	assert.InDelta(t, 128_070_397, r.GrossRevenue, 1)
}

func TestComputeRevenueConservation(t *testing.T) {
	for _, bm := range []model.BusinessModel{model.ModelRE100, model.ModelREC5} {
		for _, useEC := range []bool{false, true} {
			for fleet := 0; fleet <= 3; fleet++ {
				in := flatFactoryRevenue(bm)
				in.UseEC = useEC
				in.ECFleetSize = fleet
				r := ComputeRevenue(in)
				assert.InDelta(t, flatFactoryGeneration, r.VolumeSelf+r.VolumeEC+r.VolumeSurplus, 1e-6,
					"bm=%s useEC=%v fleet=%d", bm, useEC, fleet)
			}
		}
	}
}

func TestComputeRevenueECCappedByFleet(t *testing.T) {
	in := flatFactoryRevenue(model.ModelRE100)
	in.UseEC = true
	in.ECFleetSize = 1

	r := ComputeRevenue(in)
	assert.InDelta(t, 146_000, r.ECCapacity, 1e-9)
	assert.InDelta(t, 146_000, r.VolumeEC, 1e-9)
	assert.InDelta(t, 304_300-146_000, r.VolumeSurplus, 1e-6)
	assert.InDelta(t, 146_000*220, r.RevenueEC, 1e-6)
}

func TestComputeRevenueECPriceByModel(t *testing.T) {
	p := model.DefaultPricing()
	assert.Equal(t, p.ECPriceCurrent, ECSellPrice(model.ModelRE100, 0, p))
	assert.Equal(t, 240.0, ECSellPrice(model.ModelRE100, 240, p))
	assert.Equal(t, p.ECPriceFuture, ECSellPrice(model.ModelREC5, 240, p))
	assert.Equal(t, 0.0, ECSellPrice(model.ModelKEPCO, 240, p))
	assert.Equal(t, p.ECPriceCurrent, ECSellPrice("bogus", 0, p))
}

func TestComputeRevenueRationalizationOnlyForHighContract(t *testing.T) {
	in := flatFactoryRevenue(model.ModelRE100)
	in.RationalizationSavings = 1_000_000

	standard := ComputeRevenue(in)
	assert.Equal(t, 0.0, standard.RationalizationSavings)

	in.ContractClass = model.ContractHigh
	high := ComputeRevenue(in)
	assert.Equal(t, 1_000_000.0, high.RationalizationSavings)
	assert.InDelta(t, standard.GrossRevenue+1_000_000, high.GrossRevenue, 1e-6)
}

func TestComputeRevenueUnknownModelFallsBackToRE100(t *testing.T) {
	a := ComputeRevenue(flatFactoryRevenue("bogus"))
	b := ComputeRevenue(flatFactoryRevenue(model.ModelRE100))
	assert.Equal(t, b, a)
}

func TestComputeRevenueZeroGeneration(t *testing.T) {
	r := ComputeRevenue(RevenueInput{Pricing: model.DefaultPricing()})
	assert.Equal(t, Revenue{ECSellPrice: 220}, r)
}
