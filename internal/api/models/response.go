package models

import (
	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"
	"solar-proposal/internal/store"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	Status        string `json:"status"`
	PricingSource string `json:"pricing_source"`
	// CalibrationApplied is set when result figures use the calibrated maintenance rate.
	CalibrationApplied bool               `json:"calibration_applied"`
	Result             *simulation.Result `json:"result"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string             `json:"name"`
	Summary simulation.Summary `json:"summary"`
}

// PricingResponse is the active pricing and where it came from.
type PricingResponse struct {
	Source  string              `json:"source"`
	Pricing model.PricingConfig `json:"pricing"`
}

type PresetListResponse struct {
	Presets []config.PresetInfo `json:"presets"`
}

type ProjectListResponse struct {
	Projects []store.Project `json:"projects"`
}

// ProjectSimulateResponse is a saved project together with its fresh result.
type ProjectSimulateResponse struct {
	Project store.Project      `json:"project"`
	Result  *simulation.Result `json:"result"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidPricing = "INVALID_PRICING"
	CodeNotFound       = "NOT_FOUND"
	CodeStoreError     = "STORE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
)

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// BusinessModelInfo describes one business model for clients.
type BusinessModelInfo struct {
	Name        model.BusinessModel `json:"name"`
	Description string              `json:"description"`
	GridOnly    bool                `json:"grid_only,omitempty"`
	Default     bool                `json:"default,omitempty"`
}

// ModuleTierInfo describes one module tier.
type ModuleTierInfo struct {
	Name        model.ModuleTier `json:"name"`
	Description string           `json:"description"`
	Default     bool             `json:"default,omitempty"`
}
