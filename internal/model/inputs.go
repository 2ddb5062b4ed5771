package model

// MaxECFleetSize is the business cap on EC units per site.
const MaxECFleetSize = 3

// Settings are the scalar knobs of one proposal.
type Settings struct {
	CapacityKW    float64       `json:"capacity_kw" yaml:"capacity_kw"`
	SiteAreaM2    float64       `json:"site_area_m2,omitempty" yaml:"site_area_m2,omitempty"`
	ModuleTier    ModuleTier    `json:"module_tier" yaml:"module_tier"`
	BusinessModel BusinessModel `json:"business_model" yaml:"business_model"`
	ContractClass ContractClass `json:"contract_class,omitempty" yaml:"contract_class,omitempty"`

	UseEC       bool `json:"use_ec" yaml:"use_ec"`
	ECFleetSize int  `json:"ec_fleet_size" yaml:"ec_fleet_size"`

	// MaintenanceRate and DegradationRate are percentages.
	MaintenanceRate float64 `json:"maintenance_rate" yaml:"maintenance_rate"`
	DegradationRate float64 `json:"degradation_rate" yaml:"degradation_rate"`

	// RECAveragePrice overrides the current-REC EC sale price when > 0.
	RECAveragePrice float64 `json:"rec_average_price,omitempty" yaml:"rec_average_price,omitempty"`

	// CostCeiling is the annual operating cost cap used by maintenance calibration.
	// Calibration is skipped when it is 0.
	CostCeiling     float64 `json:"cost_ceiling,omitempty" yaml:"cost_ceiling,omitempty"`
	AutoMaintenance bool    `json:"auto_maintenance" yaml:"auto_maintenance"`
}

// DefaultSettings mirrors a fresh proposal form.
func DefaultSettings() Settings {
	return Settings{
		CapacityKW:      100,
		ModuleTier:      DefaultModuleTier,
		BusinessModel:   DefaultBusinessModel,
		ContractClass:   ContractStandard,
		MaintenanceRate: 5,
		DegradationRate: 0.5,
		AutoMaintenance: true,
	}
}

// Normalize resolves enum fallbacks and clamps numeric settings into range.
func (s Settings) Normalize() Settings {
	s.ModuleTier = s.ModuleTier.Normalize()
	s.BusinessModel = s.BusinessModel.Normalize()
	if !s.ContractClass.IsHigh() {
		s.ContractClass = ContractStandard
	} else {
		s.ContractClass = ContractHigh
	}
	s.CapacityKW = nonNeg(s.CapacityKW)
	s.SiteAreaM2 = nonNeg(s.SiteAreaM2)
	s.MaintenanceRate = nonNeg(s.MaintenanceRate)
	s.DegradationRate = nonNeg(s.DegradationRate)
	if s.DegradationRate > 100 {
		s.DegradationRate = 100
	}
	s.RECAveragePrice = nonNeg(s.RECAveragePrice)
	s.CostCeiling = nonNeg(s.CostCeiling)
	s.ECFleetSize = ClampFleet(s.ECFleetSize)
	return s
}

// ECActive reports whether EC costs and volumes apply.
func (s Settings) ECActive() bool {
	return s.UseEC && s.ECFleetSize > 0 && !s.BusinessModel.IsGridOnly()
}

// ClampFleet limits an EC fleet size to [0, MaxECFleetSize].
func ClampFleet(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxECFleetSize {
		return MaxECFleetSize
	}
	return n
}

// TariffRow compares one demand-charge tier under the high and low contract.
// Manual, when set, replaces the derived saving (honoured for the base tier only).
type TariffRow struct {
	High   float64  `json:"high" yaml:"high"`
	Low    float64  `json:"low" yaml:"low"`
	Usage  float64  `json:"usage" yaml:"usage"`
	Manual *float64 `json:"manual,omitempty" yaml:"manual,omitempty"`
}

// RationalizationInputs holds the four billing-tier comparison rows.
type RationalizationInputs struct {
	Base  TariffRow `json:"base" yaml:"base"`
	Light TariffRow `json:"light" yaml:"light"`
	Mid   TariffRow `json:"mid" yaml:"mid"`
	Max   TariffRow `json:"max" yaml:"max"`
}
