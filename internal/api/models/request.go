package models

import (
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"
)

// SimulateRequest represents the request body for running a proposal simulation.
// Settings omitted from the body keep model.DefaultSettings.
type SimulateRequest struct {
	Records         []model.MonthlyRecord       `json:"records"`
	Settings        model.Settings              `json:"settings"`
	Rationalization model.RationalizationInputs `json:"rationalization"`
	// PricingPreset selects a preset file instead of the active pricing.
	PricingPreset string `json:"pricing_preset,omitempty"`
	// PricingOverrides are merged over the selected pricing (non-zero fields only).
	PricingOverrides model.PricingConfig `json:"pricing_overrides,omitempty"`
	Options          SimulateOptions     `json:"options,omitempty"`
}

// SimulateOptions contains optional output switches
type SimulateOptions struct {
	IncludeSchedule bool `json:"include_schedule,omitempty"` // default: false
	IncludeDebt     bool `json:"include_debt,omitempty"`     // per-year debt service of the loan models
	// ApplyCalibration reruns at the calibrated maintenance rate when the
	// calibration changed it without needing confirmation.
	ApplyCalibration bool `json:"apply_calibration,omitempty"`
}

// NewSimulateRequest returns a request pre-filled with defaults, ready for binding.
func NewSimulateRequest() SimulateRequest {
	return SimulateRequest{Settings: model.DefaultSettings()}
}

// CompareRequest represents a request to compare variations of one proposal
type CompareRequest struct {
	Base       SimulateRequest `json:"base"`
	Variations []Variation     `json:"variations" binding:"required,min=1"`
}

// Variation overrides selected settings of the base request. Nil fields keep the base value.
type Variation struct {
	Name            string   `json:"name" binding:"required"`
	BusinessModel   string   `json:"business_model,omitempty"`
	ModuleTier      string   `json:"module_tier,omitempty"`
	CapacityKW      *float64 `json:"capacity_kw,omitempty"`
	UseEC           *bool    `json:"use_ec,omitempty"`
	ECFleetSize     *int     `json:"ec_fleet_size,omitempty"`
	MaintenanceRate *float64 `json:"maintenance_rate,omitempty"`
	DegradationRate *float64 `json:"degradation_rate,omitempty"`
}

// Apply returns base with the variation's overrides.
func (v Variation) Apply(base model.Settings) model.Settings {
	out := base
	if v.BusinessModel != "" {
		out.BusinessModel = model.BusinessModel(v.BusinessModel)
	}
	if v.ModuleTier != "" {
		out.ModuleTier = model.ModuleTier(v.ModuleTier)
	}
	if v.CapacityKW != nil {
		out.CapacityKW = *v.CapacityKW
	}
	if v.UseEC != nil {
		out.UseEC = *v.UseEC
	}
	if v.ECFleetSize != nil {
		out.ECFleetSize = *v.ECFleetSize
	}
	if v.MaintenanceRate != nil {
		out.MaintenanceRate = *v.MaintenanceRate
	}
	if v.DegradationRate != nil {
		out.DegradationRate = *v.DegradationRate
	}
	return out
}

// CalibrateRequest drives one step of the maintenance-rate calibration.
type CalibrateRequest struct {
	GrossRevenue   float64 `json:"gross_revenue"`
	LaborCost      float64 `json:"labor_cost"`
	CurrentRate    float64 `json:"current_rate"`
	CostCeiling    float64 `json:"cost_ceiling" binding:"gt=0"`
	AutoMode       bool    `json:"auto_mode"`
	ModelChanged   bool    `json:"model_changed"`
	SuppressAlerts bool    `json:"suppress_alerts"`
}

// ECAdviceRequest asks for an EC fleet size given the annual surplus.
type ECAdviceRequest struct {
	RawSurplusKWh float64 `json:"raw_surplus_kwh" binding:"gte=0"`
	FleetSize     int     `json:"fleet_size" binding:"gte=0"`
}

// CapacityRequest represents the query of GET /capacity
type CapacityRequest struct {
	SiteAreaM2 float64 `form:"site_area_m2" binding:"required,gt=0"`
}

// PricingUpdateRequest replaces the active pricing. With Preset set, the preset is
// loaded first; Pricing fields are merged over it (or over the current pricing).
type PricingUpdateRequest struct {
	Preset  string              `json:"preset,omitempty"`
	Pricing model.PricingConfig `json:"pricing"`
}

// ProjectRequest creates or replaces a saved project.
type ProjectRequest struct {
	Name       string           `json:"name" binding:"required"`
	ClientName string           `json:"client_name,omitempty"`
	Input      simulation.Input `json:"input"`
}

// NewProjectRequest returns a request pre-filled with default settings and pricing.
func NewProjectRequest() ProjectRequest {
	return ProjectRequest{Input: simulation.Input{
		Settings: model.DefaultSettings(),
		Pricing:  model.DefaultPricing(),
	}}
}
