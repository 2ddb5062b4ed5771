package handlers

import (
	"errors"
	"net/http"
	"os"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/config"
	"solar-proposal/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PricingHandler serves the active pricing and the preset files.
type PricingHandler struct {
	holder     *config.PricingHolder
	presetsDir string
	logger     *zap.Logger

	// OnUpdate, when set, is called after the active pricing changed.
	OnUpdate func(model.PricingConfig, string)
}

func NewPricingHandler(holder *config.PricingHolder, presetsDir string, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{holder: holder, presetsDir: presetsDir, logger: logger}
}

// PresetsDir returns the presets directory path
func (h *PricingHandler) PresetsDir() string {
	return h.presetsDir
}

// GetPricing handles GET /api/v1/pricing
func (h *PricingHandler) GetPricing(c *gin.Context) {
	p, source := h.holder.Get()
	c.JSON(http.StatusOK, models.PricingResponse{Source: source, Pricing: p})
}

// UpdatePricing handles PUT /api/v1/pricing
func (h *PricingHandler) UpdatePricing(c *gin.Context) {
	var req models.PricingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return
	}

	base, _ := h.holder.Get()
	source := "api"
	if req.Preset != "" {
		f, err := config.FindPreset(h.presetsDir, req.Preset)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				respondError(c, http.StatusNotFound, models.CodeNotFound, err.Error())
				return
			}
			respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
			return
		}
		base, source = f.Pricing, "preset:"+req.Preset
	}

	next := config.MergePricing(base, req.Pricing)
	if err := h.holder.Update(next, source); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
		return
	}
	h.logger.Info("pricing updated", zap.String("source", source))
	if h.OnUpdate != nil {
		h.OnUpdate(next, source)
	}

	c.JSON(http.StatusOK, models.PricingResponse{Source: source, Pricing: next})
}

// ListPresets handles GET /api/v1/pricing/presets
func (h *PricingHandler) ListPresets(c *gin.Context) {
	presets, err := config.ListPresets(h.presetsDir)
	if err != nil {
		// A missing presets directory is not an error for clients.
		h.logger.Warn("reading presets directory",
			zap.String("dir", h.presetsDir),
			zap.Error(err),
		)
		presets = []config.PresetInfo{}
	}
	if presets == nil {
		presets = []config.PresetInfo{}
	}
	c.JSON(http.StatusOK, models.PresetListResponse{Presets: presets})
}
