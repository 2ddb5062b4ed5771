// Package api wires the HTTP surface.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"solar-proposal/internal/api/handlers"
	"solar-proposal/internal/api/live"
	"solar-proposal/internal/api/models"
	"solar-proposal/internal/api/middleware"
	"solar-proposal/internal/config"
	"solar-proposal/internal/simulation"
	"solar-proposal/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the long-lived services the routes need.
type Deps struct {
	Engine         *simulation.Engine
	Pricing        *config.PricingHolder
	Store          store.Store
	Logger         *zap.Logger
	PresetsDir     string
	AllowedOrigins []string
	// StaticDir holds a built frontend; skipped when empty or missing.
	StaticDir string
	// RateLimiter and Cache are optional.
	RateLimiter *middleware.RateLimiter
	Cache       *simulation.ResultCache
}

// NewRouter builds the gin engine with middleware and all /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(d.Logger))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.CORS(d.AllowedOrigins))

	simHandler := handlers.NewSimulationHandler(d.Engine, d.Pricing, d.PresetsDir, d.Cache, d.Logger)
	advisorHandler := handlers.NewAdvisorHandler(d.Pricing)
	pricingHandler := handlers.NewPricingHandler(d.Pricing, d.PresetsDir, d.Logger)
	projectHandler := handlers.NewProjectHandler(d.Store, d.Engine, d.Pricing, d.Logger)
	liveHandler := live.NewHandler(live.NewHub(d.Logger), d.Engine, d.Pricing, d.Logger)
	pricingHandler.OnUpdate = liveHandler.BroadcastPricing

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.Middleware())
	}
	{
		api.POST("/simulate", simHandler.Simulate)
		api.POST("/simulate/compare", simHandler.Compare)
		api.POST("/simulate/projection.csv", simHandler.ProjectionCSV)

		api.POST("/maintenance/calibrate", advisorHandler.Calibrate)
		api.POST("/ec/advice", advisorHandler.ECAdvice)
		api.GET("/capacity", advisorHandler.Capacity)

		api.GET("/pricing", pricingHandler.GetPricing)
		api.PUT("/pricing", pricingHandler.UpdatePricing)
		api.GET("/pricing/presets", pricingHandler.ListPresets)

		api.GET("/business-models", handlers.ListBusinessModels)
		api.GET("/module-tiers", handlers.ListModuleTiers)

		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects/:id", projectHandler.GetProject)
		api.PUT("/projects/:id", projectHandler.UpdateProject)
		api.DELETE("/projects/:id", projectHandler.DeleteProject)
		api.POST("/projects/:id/simulate", projectHandler.SimulateProject)

		api.GET("/ws", liveHandler.Serve)
	}

	// Serve the built frontend (if present); index.html handles client-side routes.
	staticDir := d.StaticDir
	if info, err := os.Stat(staticDir); staticDir != "" && err == nil && info.IsDir() {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "Not found"))
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
		d.Logger.Info("serving static files", zap.String("dir", staticDir))
	} else {
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "Not found"))
		})
	}

	return router
}
