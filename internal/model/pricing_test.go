package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPricingIsValid(t *testing.T) {
	p := DefaultPricing()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 192.79, p.GridPrice)
	assert.Equal(t, 136.47, p.SavingsPrice)
	assert.Equal(t, 3.64, p.Irradiance)
}

func TestPricingValidate(t *testing.T) {
	p := DefaultPricing()
	p.GridPrice = -1
	err := p.Validate()
	assert.ErrorContains(t, err, "grid_price")

	p = DefaultPricing()
	p.Irradiance = 0
	assert.ErrorContains(t, p.Validate(), "irradiance")
}

func TestPricingValidateRejectsNonFinite(t *testing.T) {
	p := DefaultPricing()
	p.GridPrice = math.NaN()
	assert.ErrorContains(t, p.Validate(), "grid_price must be finite")

	p = DefaultPricing()
	p.Irradiance = math.Inf(1)
	assert.ErrorContains(t, p.Validate(), "irradiance must be finite")

	p = DefaultPricing()
	p.BaseRate = math.Inf(-1)
	assert.ErrorContains(t, p.Validate(), "base_rate must be finite")
}

func TestSolarUnitPrice(t *testing.T) {
	p := DefaultPricing()
	assert.Equal(t, p.SolarPricePremium, p.SolarUnitPrice(TierPremium))
	assert.Equal(t, p.SolarPriceEconomy, p.SolarUnitPrice(TierEconomy))
	assert.Equal(t, p.SolarPriceStandard, p.SolarUnitPrice("gold"))
}
