package handlers

import (
	"net/http"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/config"
	"solar-proposal/internal/simulation"
	"solar-proposal/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProjectHandler handles saved projects
type ProjectHandler struct {
	store   store.Store
	engine  *simulation.Engine
	pricing *config.PricingHolder
	logger  *zap.Logger
}

func NewProjectHandler(s store.Store, engine *simulation.Engine, pricing *config.PricingHolder, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{store: s, engine: engine, pricing: pricing, logger: logger}
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing projects", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req, ok := h.bindProject(c)
	if !ok {
		return
	}
	p := &store.Project{
		Name:       req.Name,
		ClientName: req.ClientName,
		Input:      req.Input,
	}
	if err := h.store.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("creating project", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	h.logger.Info("project created", zap.String("id", p.ID.String()), zap.String("name", p.Name))
	c.JSON(http.StatusCreated, p)
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	req, ok := h.bindProject(c)
	if !ok {
		return
	}
	p := &store.Project{
		ID:         id,
		Name:       req.Name,
		ClientName: req.ClientName,
		Input:      req.Input,
	}
	if err := h.store.Update(c.Request.Context(), p); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SimulateProject handles POST /api/v1/projects/:id/simulate
func (h *ProjectHandler) SimulateProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	result, err := h.engine.Run(p.Input)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, models.CodeInvalidPricing, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.ProjectSimulateResponse{Project: *p, Result: result})
}

// bindProject decodes a project body over the defaults and the active pricing.
func (h *ProjectHandler) bindProject(c *gin.Context) (models.ProjectRequest, bool) {
	req := models.NewProjectRequest()
	req.Input.Pricing, _ = h.pricing.Get()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return req, false
	}
	if err := req.Input.Pricing.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidPricing, err.Error())
		return req, false
	}
	return req, true
}
