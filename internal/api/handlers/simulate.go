package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SimulationHandler handles simulation requests
type SimulationHandler struct {
	engine     *simulation.Engine
	pricing    *config.PricingHolder
	presetsDir string
	cache      *simulation.ResultCache
	logger     *zap.Logger
}

// NewSimulationHandler builds the handler; cache may be nil.
func NewSimulationHandler(engine *simulation.Engine, pricing *config.PricingHolder, presetsDir string, cache *simulation.ResultCache, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine:     engine,
		pricing:    pricing,
		presetsDir: presetsDir,
		cache:      cache,
		logger:     logger,
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	req := models.NewSimulateRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}

	result, source, applied, ok := h.run(c, req)
	if !ok {
		return
	}
	if !req.Options.IncludeSchedule {
		result.Schedule = nil
	}
	if !req.Options.IncludeDebt {
		stripDebtSchedules(result)
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		Status:             "ok",
		PricingSource:      source,
		CalibrationApplied: applied,
		Result:             result,
	})
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	req := models.CompareRequest{Base: models.NewSimulateRequest()}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}

	// Resolve pricing once for all variations.
	pricing, _, err := h.resolvePricing(req.Base)
	if err != nil {
		h.respondPricingError(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, v := range req.Variations {
		result, err := h.cache.Run(h.engine, simulation.Input{
			Records:         req.Base.Records,
			Settings:        v.Apply(req.Base.Settings),
			Rationalization: req.Base.Rationalization,
			Pricing:         pricing,
		})
		if err != nil {
			respondError(c, http.StatusBadRequest, models.CodeInvalidPricing,
				fmt.Sprintf("variation %q: %v", v.Name, err))
			return
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:    v.Name,
			Summary: result.Summary(),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// ProjectionCSV handles POST /api/v1/simulate/projection.csv
func (h *SimulationHandler) ProjectionCSV(c *gin.Context) {
	req := models.NewSimulateRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}
	result, _, _, ok := h.run(c, req)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="projection.csv"`)
	c.Status(http.StatusOK)
	if err := simulation.EncodeScheduleCSV(c.Writer, result.Schedule); err != nil {
		h.logger.Error("writing projection csv", zap.Error(err))
	}
}

// run resolves pricing and executes the engine, writing the error response itself on failure.
// With Options.ApplyCalibration the input is rerun once at the calibrated rate.
func (h *SimulationHandler) run(c *gin.Context, req models.SimulateRequest) (result *simulation.Result, source string, applied, ok bool) {
	pricing, source, err := h.resolvePricing(req)
	if err != nil {
		h.respondPricingError(c, err)
		return nil, "", false, false
	}
	in := simulation.Input{
		Records:         req.Records,
		Settings:        req.Settings,
		Rationalization: req.Rationalization,
		Pricing:         pricing,
	}
	result, err = h.cache.Run(h.engine, in)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
		return nil, "", false, false
	}
	if cal := result.Calibration; req.Options.ApplyCalibration && cal != nil && cal.Changed && !cal.NeedsConfirmation {
		in.Settings.MaintenanceRate = cal.Rate
		if result, err = h.cache.Run(h.engine, in); err != nil {
			respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
			return nil, "", false, false
		}
		applied = true
	}
	return result, source, applied, true
}

// resolvePricing picks the preset or the active pricing and merges the request overrides.
func (h *SimulationHandler) resolvePricing(req models.SimulateRequest) (model.PricingConfig, string, error) {
	base, source := h.pricing.Get()
	if req.PricingPreset != "" {
		f, err := config.FindPreset(h.presetsDir, req.PricingPreset)
		if err != nil {
			return model.PricingConfig{}, "", err
		}
		base, source = f.Pricing, "preset:"+req.PricingPreset
	}
	merged := config.MergePricing(base, req.PricingOverrides)
	if merged != base {
		source += "+overrides"
	}
	if err := merged.Validate(); err != nil {
		return model.PricingConfig{}, "", err
	}
	return merged, source, nil
}

func (h *SimulationHandler) respondPricingError(c *gin.Context, err error) {
	if errors.Is(err, os.ErrNotExist) {
		respondError(c, http.StatusNotFound, models.CodeNotFound, err.Error())
		return
	}
	respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
}

func stripDebtSchedules(r *simulation.Result) {
	r.Financing.SelfFunded.Schedule = nil
	r.Financing.RPS.Schedule = nil
	r.Financing.Factoring.Schedule = nil
	r.Financing.Rental.Schedule = nil
	r.Financing.Subscription.Schedule = nil
}
