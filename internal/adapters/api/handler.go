// Package api exposes generation and history over HTTP with gin.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/validation"
	"github.com/example/entitygen/internal/logger"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
)

// GenerateBody is the JSON payload of POST /api/generate.
type GenerateBody struct {
	Entity       *models.EntityModel `json:"entity" binding:"required"`
	Components   []string            `json:"components"`
	DtoFields    []string            `json:"dtoFields"`
	FilterFields []string            `json:"filterFields"`
	DtoName      string              `json:"dtoName"`
	Validations  validation.Options  `json:"validations"`
	Pattern      string              `json:"pattern"`
	BasePackage  string              `json:"basePackage"`
	Structure    string              `json:"structure"`
	DryRun       bool                `json:"dryRun"`
}

// PlacedItem is one placed artifact in a generate response.
type PlacedItem struct {
	Kind      string `json:"kind"`
	ClassName string `json:"className"`
	Path      string `json:"path"`
	Outcome   string `json:"outcome"`
}

// GenerateResult is the data of a successful generate response.
type GenerateResult struct {
	RunID  string       `json:"runId"`
	Placed []PlacedItem `json:"placed"`
}

// ConfigResult is the data of GET /api/config.
type ConfigResult struct {
	Architecture *config.ArchitectureConfig      `json:"architecture"`
	Structures   []*config.ProjectStructureConfig `json:"structures"`
}

// Handler serves the generator API. Overwrites over HTTP are always
// silent since no one can answer a confirmation prompt.
type Handler struct {
	generation primary.GenerationService
	history    primary.HistoryService
	store      *config.Store
	structure  string
}

// NewHandler creates a Handler. history may be nil when history is
// disabled; structure names the default project structure.
func NewHandler(generation primary.GenerationService, history primary.HistoryService, store *config.Store, structure string) *Handler {
	return &Handler{
		generation: generation,
		history:    history,
		store:      store,
		structure:  structure,
	}
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

// GetConfig handles GET /api/config.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(ConfigResult{
		Architecture: h.store.LoadArchitecture(),
		Structures:   h.store.LoadStructures(),
	}))
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var body GenerateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(ErrCodeBadRequest, "invalid request body", err.Error()))
		return
	}

	components := make([]models.ArtifactKind, 0, len(body.Components))
	for _, name := range body.Components {
		kind, err := models.ParseArtifactKind(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(ErrCodeBadRequest, err.Error()))
			return
		}
		components = append(components, kind)
	}

	structure := body.Structure
	if structure == "" {
		structure = h.structure
	}
	resolved, err := h.store.Resolve(config.ResolveOptions{
		Pattern:     body.Pattern,
		BasePackage: body.BasePackage,
		Structure:   structure,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(ErrCodeBadRequest, err.Error()))
		return
	}

	resp, err := h.generation.Generate(c.Request.Context(), primary.GenerateRequest{
		Entity:            body.Entity,
		Config:            resolved.Config,
		Components:        components,
		DtoFields:         body.DtoFields,
		FilterFields:      body.FilterFields,
		ValidationOptions: body.Validations,
		DtoName:           body.DtoName,
		TemplateOverrides: resolved.TemplateOverrides,
		SourceRoots:       resolved.SourceRoots,
		Policy:            models.PolicySilent,
		Pattern:           body.Pattern,
		DryRun:            body.DryRun,
	})
	if err != nil {
		h.generateError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(GenerateResult{
		RunID:  resp.RunID,
		Placed: placedItems(resp.Placed),
	}))
}

// ListHistory handles GET /api/history.
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, errorResponse(ErrCodeNotFound, "history is disabled"))
		return
	}

	filters := primary.HistoryFilters{
		Entity: c.Query("entity"),
		Status: c.Query("status"),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorResponse(ErrCodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		filters.Limit = n
	}

	runs, err := h.history.ListRuns(c.Request.Context(), filters)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(runs))
}

// GetHistory handles GET /api/history/:id.
func (h *Handler) GetHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, errorResponse(ErrCodeNotFound, "history is disabled"))
		return
	}

	run, err := h.history.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, models.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(ErrCodeNotFound, err.Error()))
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(run))
}

// Helper methods

func (h *Handler) generateError(c *gin.Context, err error) {
	var (
		selErr   *models.SelectionError
		pathErrs models.PathErrors
		genErr   *models.GenerationError
		valErrs  validator.ValidationErrors
	)

	switch {
	case errors.As(err, &valErrs):
		c.JSON(http.StatusBadRequest, errorResponse(ErrCodeBadRequest, err.Error()))
	case errors.As(err, &selErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(ErrCodeSelection, selErr.Reason))
	case errors.As(err, &pathErrs):
		details := make([]string, len(pathErrs))
		for i, pe := range pathErrs {
			details[i] = pe.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, errorResponse(ErrCodePath, "invalid custom paths", details...))
	case errors.As(err, &genErr):
		details := make([]string, len(genErr.Placed))
		for i, p := range genErr.Placed {
			details[i] = p.Path
		}
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrSourceRootNotFound) {
			status = http.StatusUnprocessableEntity
		}
		logger.FromContext(c.Request.Context()).Warn("generation failed",
			zap.String("kind", string(genErr.Kind)),
			zap.Int("placed", len(genErr.Placed)),
			zap.Error(genErr.Err))
		c.JSON(status, errorResponse(ErrCodeGeneration, err.Error(), details...))
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse(ErrCodeInternal, err.Error()))
}

func placedItems(placed []*models.PlacedArtifact) []PlacedItem {
	items := make([]PlacedItem, len(placed))
	for i, p := range placed {
		items[i] = PlacedItem{
			Kind:      string(p.Artifact.Kind),
			ClassName: p.Artifact.ClassName,
			Path:      p.Path,
			Outcome:   string(p.Outcome),
		}
	}
	return items
}
