package model

import "strings"

// BusinessModel selects how annual generation is monetised.
// Keep these values stable; they are stored with saved projects.
type BusinessModel string

const (
	// ModelKEPCO sells all generation to the grid.
	ModelKEPCO BusinessModel = "KEPCO"
	// ModelRE100 self-consumes and sells surplus through EC units at current REC pricing.
	ModelRE100 BusinessModel = "RE100"
	// ModelREC5 is RE100 with projected future REC pricing.
	ModelREC5 BusinessModel = "REC5"
)

// DefaultBusinessModel is used whenever an unknown model is supplied.
const DefaultBusinessModel = ModelRE100

// ParseBusinessModel maps a case-insensitive name onto a known model.
// ok is false when the name is unknown, in which case DefaultBusinessModel is returned.
func ParseBusinessModel(s string) (BusinessModel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ModelKEPCO):
		return ModelKEPCO, true
	case string(ModelRE100):
		return ModelRE100, true
	case string(ModelREC5):
		return ModelREC5, true
	default:
		return DefaultBusinessModel, false
	}
}

// Normalize returns m when it is a known model and DefaultBusinessModel otherwise.
func (m BusinessModel) Normalize() BusinessModel {
	out, _ := ParseBusinessModel(string(m))
	return out
}

// IsGridOnly reports whether self-consumption and EC accounting are disabled.
func (m BusinessModel) IsGridOnly() bool {
	return m.Normalize() == ModelKEPCO
}

// ModuleTier is the solar module quality class, which drives the capital price.
type ModuleTier string

const (
	// TierPremium is the high-efficiency module line.
	TierPremium ModuleTier = "premium"
	// TierStandard is the default module line.
	TierStandard ModuleTier = "standard"
	// TierEconomy is the lowest-cost module line.
	TierEconomy ModuleTier = "economy"
)

// DefaultModuleTier is used whenever an unknown tier is supplied.
const DefaultModuleTier = TierStandard

// ParseModuleTier matches s case-insensitively. Unknown values map to
// DefaultModuleTier with ok=false.
func ParseModuleTier(s string) (ModuleTier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TierPremium):
		return TierPremium, true
	case string(TierStandard):
		return TierStandard, true
	case string(TierEconomy):
		return TierEconomy, true
	default:
		return DefaultModuleTier, false
	}
}

// Normalize returns t, or DefaultModuleTier when t is not a known tier.
func (t ModuleTier) Normalize() ModuleTier {
	out, _ := ParseModuleTier(string(t))
	return out
}

// ContractClass is the site's billing contract class.
// Rationalization savings only exist for the higher-tier class.
type ContractClass string

const (
	// ContractStandard is the ordinary contract class.
	ContractStandard ContractClass = "standard"
	// ContractHigh is the higher-tier class eligible for rationalization.
	ContractHigh ContractClass = "high"
)

// IsHigh reports whether c is ContractHigh, ignoring case and surrounding space.
func (c ContractClass) IsHigh() bool {
	return strings.EqualFold(strings.TrimSpace(string(c)), string(ContractHigh))
}
