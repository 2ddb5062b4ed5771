package handlers

import (
	"net/http"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/model"

	"github.com/gin-gonic/gin"
)

// ListBusinessModels handles GET /api/v1/business-models
func ListBusinessModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"business_models": []models.BusinessModelInfo{
		{
			Name:        model.ModelKEPCO,
			Description: "Sell all generation to the grid at the grid price. No EC trading, no self-consumption savings.",
			GridOnly:    true,
		},
		{
			Name:        model.ModelRE100,
			Description: "Self-consume first, sell surplus through EC at the current REC price (or the REC average when given), rest to the grid.",
			Default:     true,
		},
		{
			Name:        model.ModelREC5,
			Description: "As RE100, but EC energy is sold at the future REC price.",
		},
	}})
}

// ListModuleTiers handles GET /api/v1/module-tiers
func ListModuleTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"module_tiers": []models.ModuleTierInfo{
		{Name: model.TierPremium, Description: "High-efficiency modules, highest price per 100 kW."},
		{Name: model.TierStandard, Description: "Mainstream modules.", Default: true},
		{Name: model.TierEconomy, Description: "Lowest price per 100 kW."},
	}})
}
