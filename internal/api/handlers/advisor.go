package handlers

import (
	"net/http"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/config"
	"solar-proposal/internal/energy"
	"solar-proposal/internal/finance"

	"github.com/gin-gonic/gin"
)

// AdvisorHandler serves the stand-alone calculators.
type AdvisorHandler struct {
	pricing *config.PricingHolder
}

func NewAdvisorHandler(pricing *config.PricingHolder) *AdvisorHandler {
	return &AdvisorHandler{pricing: pricing}
}

// Calibrate handles POST /api/v1/maintenance/calibrate
func (h *AdvisorHandler) Calibrate(c *gin.Context) {
	var req models.CalibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, finance.CalibrateMaintenanceRate(finance.CalibrationInput{
		GrossRevenue:   req.GrossRevenue,
		LaborCost:      req.LaborCost,
		CurrentRate:    req.CurrentRate,
		CostCeiling:    req.CostCeiling,
		AutoMode:       req.AutoMode,
		ModelChanged:   req.ModelChanged,
		SuppressAlerts: req.SuppressAlerts,
	}))
}

// ECAdvice handles POST /api/v1/ec/advice
func (h *AdvisorHandler) ECAdvice(c *gin.Context) {
	var req models.ECAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, finance.RecommendECFleet(req.RawSurplusKWh, req.FleetSize))
}

// Capacity handles GET /api/v1/capacity
func (h *AdvisorHandler) Capacity(c *gin.Context) {
	var req models.CapacityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}
	p, _ := h.pricing.Get()
	c.JSON(http.StatusOK, energy.RecommendCapacity(req.SiteAreaM2, p))
}
