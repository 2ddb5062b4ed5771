package finance

import (
	"testing"

	"solar-proposal/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeInvestmentSolarOnly(t *testing.T) {
	inv := ComputeInvestment(InvestmentInput{
		CapacityKW:          500,
		ModuleTier:          model.TierStandard,
		BusinessModel:       model.ModelRE100,
		AnnualOperatingCost: 5_000_000,
		Pricing:             model.DefaultPricing(),
	})
	assert.InDelta(t, 550_000_000, inv.SolarCost, 1e-6)
	assert.Equal(t, 0.0, inv.ECCost)
	assert.Equal(t, 0.0, inv.TractorCost)
	assert.InDelta(t, 550_000_000, inv.TotalInitial, 1e-6)
	assert.InDelta(t, 550_000_000+5_000_000*20, inv.TotalOver20Years, 1e-6)
}

func TestComputeInvestmentWithEC(t *testing.T) {
	p := model.DefaultPricing()
	inv := ComputeInvestment(InvestmentInput{
		CapacityKW:    1000,
		ModuleTier:    model.TierPremium,
		ECFleetSize:   2,
		UseEC:         true,
		BusinessModel: model.ModelREC5,
		Pricing:       p,
	})
	assert.InDelta(t, 10*p.SolarPricePremium, inv.SolarCost, 1e-6)
	assert.InDelta(t, 2*p.ECUnitPrice, inv.ECCost, 1e-6)
	assert.Equal(t, p.TractorPrice, inv.TractorCost, "tractor is flat regardless of fleet size")
	assert.Equal(t, p.PlatformPrice, inv.PlatformCost)
	assert.InDelta(t, inv.SolarCost+inv.ECCost+inv.TractorCost+inv.PlatformCost, inv.TotalInitial, 1e-6)
}

func TestComputeInvestmentKEPCOIgnoresEC(t *testing.T) {
	p := model.DefaultPricing()
	in := InvestmentInput{
		CapacityKW:          500,
		ModuleTier:          model.TierEconomy,
		ECFleetSize:         3,
		UseEC:               true,
		BusinessModel:       model.ModelKEPCO,
		AnnualOperatingCost: 6_400_000,
		Pricing:             p,
	}
	inv := ComputeInvestment(in)
	assert.Equal(t, 0.0, inv.ECCost)
	assert.InDelta(t, 5*p.SolarPriceEconomy, inv.TotalInitial, 1e-6)
	assert.InDelta(t, inv.TotalInitial/20, inv.AnnualizedInitial, 1e-9)
	assert.InDelta(t, (inv.TotalInitial/20+6_400_000)*20, inv.TotalOver20Years, 1e-6)

	// The annualized KEPCO form equals the direct form.
	in.BusinessModel = model.ModelRE100
	in.UseEC = false
	direct := ComputeInvestment(in)
	assert.InDelta(t, direct.TotalOver20Years, inv.TotalOver20Years, 1e-3)
}

func TestComputeInvestmentUnknownTierUsesStandard(t *testing.T) {
	p := model.DefaultPricing()
	inv := ComputeInvestment(InvestmentInput{CapacityKW: 100, ModuleTier: "gold", Pricing: p})
	assert.Equal(t, p.SolarPriceStandard, inv.SolarUnitPrice)
}
