package simulation

import (
	"solar-proposal/internal/energy"
	"solar-proposal/internal/finance"
	"solar-proposal/internal/model"
)

// Result is the flat proposal output. It is rebuilt on every Run and holds
// no references into the Input.
type Result struct {
	// Settings after enum fallbacks and clamping.
	Settings model.Settings `json:"settings"`

	AnnualUsage           float64 `json:"annual_usage"`
	AnnualGeneration      float64 `json:"annual_generation"`
	AnnualSelfConsumption float64 `json:"annual_self_consumption"`
	ModuleCount           int     `json:"module_count"`
	SavingRate            float64 `json:"saving_rate"`
	CustomSavingRate      float64 `json:"custom_saving_rate"`
	MaxLoadRatio          float64 `json:"max_load_ratio"`
	DynamicPeakRatio      float64 `json:"dynamic_peak_ratio"`
	TotalBenefit          float64 `json:"total_benefit"`

	VolumeSelf             float64 `json:"volume_self"`
	VolumeEC               float64 `json:"volume_ec"`
	VolumeSurplus          float64 `json:"volume_surplus"`
	RawSurplus             float64 `json:"raw_surplus"`
	ECCapacity             float64 `json:"ec_capacity"`
	ECSellPrice            float64 `json:"ec_sell_price"`
	RevenueSaving          float64 `json:"revenue_saving"`
	RevenueEC              float64 `json:"revenue_ec"`
	RevenueSurplus         float64 `json:"revenue_surplus"`
	RationalizationSavings float64 `json:"rationalization_savings"`
	GrossRevenue           float64 `json:"gross_revenue"`

	MaintenanceRate    float64 `json:"maintenance_rate"`
	MaintenanceCost    float64 `json:"maintenance_cost"`
	LaborCost          float64 `json:"labor_cost"`
	TotalCost          float64 `json:"total_cost"`
	NetOperatingProfit float64 `json:"net_operating_profit"`

	SolarCost         float64 `json:"solar_cost"`
	ECCost            float64 `json:"ec_cost"`
	TractorCost       float64 `json:"tractor_cost"`
	PlatformCost      float64 `json:"platform_cost"`
	TotalInitial      float64 `json:"total_initial"`
	AnnualizedInitial float64 `json:"annualized_initial"`
	TotalOver20Years  float64 `json:"total_over_20_years"`

	FirstYearProfit float64 `json:"first_year_profit"`
	TotalProfit20   float64 `json:"total_profit_20"`

	Profit20Self         float64       `json:"profit_20_self"`
	Profit20RPS          float64       `json:"profit_20_rps"`
	Profit20Factoring    float64       `json:"profit_20_factoring"`
	Profit20Rental       float64       `json:"profit_20_rental"`
	Profit20Subscription float64       `json:"profit_20_subscription"`
	ROISelf              finance.Years `json:"roi_self"`
	ROIRPS               finance.Years `json:"roi_rps"`
	ROIFactoring         finance.Years `json:"roi_factoring"`
	ROIRental            finance.Years `json:"roi_rental"`
	ROISubscription      finance.Years `json:"roi_subscription"`

	Monthly         energy.MonthlyMetrics            `json:"monthly"`
	Rationalization finance.RationalizationBreakdown `json:"rationalization"`
	ECAdvice        finance.ECAdvice                 `json:"ec_advice"`
	Financing       finance.Financing                `json:"financing"`
	Schedule        []finance.ProjectionYear         `json:"schedule,omitempty"`
	CapacityAdvice  *energy.CapacityAdvice           `json:"capacity_advice,omitempty"`
	Calibration     *finance.Calibration             `json:"calibration,omitempty"`
}

// Summary is the headline subset shown when comparing variations.
type Summary struct {
	BusinessModel        model.BusinessModel `json:"business_model"`
	AnnualGeneration     float64             `json:"annual_generation"`
	GrossRevenue         float64             `json:"gross_revenue"`
	TotalCost            float64             `json:"total_cost"`
	NetOperatingProfit   float64             `json:"net_operating_profit"`
	TotalInitial         float64             `json:"total_initial"`
	TotalProfit20        float64             `json:"total_profit_20"`
	Profit20RPS          float64             `json:"profit_20_rps"`
	Profit20Factoring    float64             `json:"profit_20_factoring"`
	Profit20Rental       float64             `json:"profit_20_rental"`
	Profit20Subscription float64             `json:"profit_20_subscription"`
	ROISelf              finance.Years       `json:"roi_self"`
}

func (r *Result) Summary() Summary {
	return Summary{
		BusinessModel:        r.Settings.BusinessModel,
		AnnualGeneration:     r.AnnualGeneration,
		GrossRevenue:         r.GrossRevenue,
		TotalCost:            r.TotalCost,
		NetOperatingProfit:   r.NetOperatingProfit,
		TotalInitial:         r.TotalInitial,
		TotalProfit20:        r.TotalProfit20,
		Profit20RPS:          r.Profit20RPS,
		Profit20Factoring:    r.Profit20Factoring,
		Profit20Rental:       r.Profit20Rental,
		Profit20Subscription: r.Profit20Subscription,
		ROISelf:              r.ROISelf,
	}
}
