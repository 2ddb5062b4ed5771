package simulation

import (
	"fmt"

	"solar-proposal/internal/energy"
	"solar-proposal/internal/finance"
	"solar-proposal/internal/model"
)

// Input is everything one proposal run depends on. The engine only reads it.
type Input struct {
	Records         []model.MonthlyRecord       `json:"records" yaml:"records"`
	Settings        model.Settings              `json:"settings" yaml:"settings"`
	Rationalization model.RationalizationInputs `json:"rationalization" yaml:"rationalization"`
	Pricing         model.PricingConfig         `json:"pricing" yaml:"pricing"`
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the full proposal pipeline:
// monthly metrics → revenue → cost → investment → 20-year projection → financing.
// It holds no state between calls and is safe for concurrent use.
func (e *Engine) Run(in Input) (*Result, error) {
	if err := in.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("pricing invalid: %w", err)
	}
	p := in.Pricing
	s := in.Settings.Normalize()
	records := model.NormalizeRecords(in.Records)

	monthly := energy.ComputeMonthly(records, s.CapacityKW, p.BaseRate, p.SavingsPrice, p)
	annualGen := monthly.Totals.SolarGeneration
	annualSelf := monthly.Totals.SelfConsumption

	ration := finance.RationalizationSavings(in.Rationalization)
	rev := finance.ComputeRevenue(finance.RevenueInput{
		AnnualGeneration:       annualGen,
		AnnualSelfConsumption:  annualSelf,
		BusinessModel:          s.BusinessModel,
		ContractClass:          s.ContractClass,
		UseEC:                  s.UseEC,
		ECFleetSize:            s.ECFleetSize,
		RECAveragePrice:        s.RECAveragePrice,
		RationalizationSavings: ration.Total,
		Pricing:                p,
	})

	cost := finance.ComputeCost(finance.CostInput{
		GrossRevenue:    rev.GrossRevenue,
		MaintenanceRate: s.MaintenanceRate,
		ECFleetSize:     s.ECFleetSize,
		UseEC:           s.UseEC,
		BusinessModel:   s.BusinessModel,
		LaborCost:       p.ECLaborCost,
	})

	inv := finance.ComputeInvestment(finance.InvestmentInput{
		CapacityKW:          s.CapacityKW,
		ModuleTier:          s.ModuleTier,
		ECFleetSize:         s.ECFleetSize,
		UseEC:               s.UseEC,
		BusinessModel:       s.BusinessModel,
		AnnualOperatingCost: cost.TotalCost,
		Pricing:             p,
	})

	proj := finance.Project20Years(cost.NetOperatingProfit, s.DegradationRate)
	schedule := finance.ProjectYears(rev.GrossRevenue, cost.TotalCost, s.DegradationRate, finance.ProjectionYears)

	fin := finance.CompareFinancingModels(finance.FinancingInput{
		TotalInvestment:       inv.TotalInitial,
		SelfFunded20yProfit:   proj.TotalProfit20,
		AnnualOperatingProfit: cost.NetOperatingProfit,
		CapacityKW:            s.CapacityKW,
		AnnualGeneration:      annualGen,
		SelfVolume:            min(annualGen, annualSelf),
		SurplusVolume:         max(0, annualGen-annualSelf),
		Pricing:               p,
	})

	res := &Result{
		Settings: s,

		AnnualUsage:           monthly.Totals.UsageKWh,
		AnnualGeneration:      annualGen,
		AnnualSelfConsumption: annualSelf,
		ModuleCount:           energy.ModuleCount(s.CapacityKW, p),
		SavingRate:            monthly.SavingRate,
		CustomSavingRate:      monthly.CustomSavingRate,
		MaxLoadRatio:          monthly.MaxLoadRatio,
		DynamicPeakRatio:      monthly.DynamicPeakRatio,
		TotalBenefit:          monthly.TotalBenefit,

		VolumeSelf:             rev.VolumeSelf,
		VolumeEC:               rev.VolumeEC,
		VolumeSurplus:          rev.VolumeSurplus,
		RawSurplus:             rev.RawSurplus,
		ECCapacity:             rev.ECCapacity,
		ECSellPrice:            rev.ECSellPrice,
		RevenueSaving:          rev.RevenueSaving,
		RevenueEC:              rev.RevenueEC,
		RevenueSurplus:         rev.RevenueSurplus,
		RationalizationSavings: rev.RationalizationSavings,
		GrossRevenue:           rev.GrossRevenue,

		MaintenanceRate:    s.MaintenanceRate,
		MaintenanceCost:    cost.MaintenanceCost,
		LaborCost:          cost.LaborCost,
		TotalCost:          cost.TotalCost,
		NetOperatingProfit: cost.NetOperatingProfit,

		SolarCost:         inv.SolarCost,
		ECCost:            inv.ECCost,
		TractorCost:       inv.TractorCost,
		PlatformCost:      inv.PlatformCost,
		TotalInitial:      inv.TotalInitial,
		AnnualizedInitial: inv.AnnualizedInitial,
		TotalOver20Years:  inv.TotalOver20Years,

		FirstYearProfit: proj.FirstYearProfit,
		TotalProfit20:   proj.TotalProfit20,

		Profit20Self:         fin.SelfFunded.Net20yProfit,
		Profit20RPS:          fin.RPS.Net20yProfit,
		Profit20Factoring:    fin.Factoring.Net20yProfit,
		Profit20Rental:       fin.Rental.Net20yProfit,
		Profit20Subscription: fin.Subscription.Net20yProfit,
		ROISelf:              fin.SelfFunded.ROIYears,
		ROIRPS:               fin.RPS.ROIYears,
		ROIFactoring:         fin.Factoring.ROIYears,
		ROIRental:            fin.Rental.ROIYears,
		ROISubscription:      fin.Subscription.ROIYears,

		Monthly:         monthly,
		Rationalization: ration,
		ECAdvice:        finance.RecommendECFleet(rev.RawSurplus, s.ECFleetSize),
		Financing:       fin,
		Schedule:        schedule,
	}

	if s.SiteAreaM2 > 0 {
		adv := energy.RecommendCapacity(s.SiteAreaM2, p)
		res.CapacityAdvice = &adv
	}
	if s.CostCeiling > 0 {
		cal := finance.CalibrateMaintenanceRate(finance.CalibrationInput{
			GrossRevenue: rev.GrossRevenue,
			LaborCost:    cost.LaborCost,
			CurrentRate:  s.MaintenanceRate,
			CostCeiling:  s.CostCeiling,
			AutoMode:     s.AutoMaintenance,
		})
		res.Calibration = &cal
	}
	return res, nil
}
