package controller

import (
	"errors"
	"net/http"

	"featuretoggle/apperror"
	"featuretoggle/pkg/logger"
	"featuretoggle/service"
	"featuretoggle/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type FeatureManagerController struct {
	manager     service.FeatureManager
	pagedBounds service.Bounds
	logger      *logger.Logger
}

func NewFeatureManagerController(manager service.FeatureManager, pagedBounds service.Bounds, log *logger.Logger) *FeatureManagerController {
	return &FeatureManagerController{
		manager:     manager,
		pagedBounds: pagedBounds,
		logger:      log,
	}
}

// CreateFeature handles POST /api/feature/manager
func (mc *FeatureManagerController) CreateFeature(c echo.Context) error {
	var req validator.FeatureRequest
	if err := c.Bind(&req); err != nil {
		mc.logger.Warnw("Failed to bind create feature request", "error", err)
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid request body")
	}

	response, err := mc.manager.CreateFeature(c.Request().Context(), req)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusCreated, response)
}

// GetFeature handles GET /api/feature/manager/:id
func (mc *FeatureManagerController) GetFeature(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid feature id")
	}

	response, err := mc.manager.GetFeature(c.Request().Context(), id)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, response)
}

// GetFeatures handles GET /api/feature/manager/all
func (mc *FeatureManagerController) GetFeatures(c echo.Context) error {
	responses, err := mc.manager.GetFeatures(c.Request().Context())
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetPagedFeatures handles GET /api/feature/manager
func (mc *FeatureManagerController) GetPagedFeatures(c echo.Context) error {
	var req validator.FeatureQueryRequest
	if err := c.Bind(&req); err != nil {
		mc.logger.Warnw("Failed to bind feature query request", "error", err)
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid query parameters")
	}
	if err := validator.ValidateFeatureQueryRequest(req); err != nil {
		return mapServiceError("Feature Manager", err)
	}

	query := service.NewFeatureQuery(mc.pagedBounds)
	query.SetFilter(req.Filter)
	query.SetSearch(req.Search)
	query.SetPage(req.Page)
	query.SetQuantity(req.Quantity)

	response, err := mc.manager.GetPagedFeatures(c.Request().Context(), query)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, response)
}

// GetPagedFeaturesByStatus handles GET /api/feature/manager/list
func (mc *FeatureManagerController) GetPagedFeaturesByStatus(c echo.Context) error {
	var req validator.PaginationRequest
	if err := c.Bind(&req); err != nil {
		mc.logger.Warnw("Failed to bind pagination request", "error", err)
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid query parameters")
	}

	response, err := mc.manager.GetPagedFeaturesByStatus(c.Request().Context(), req)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateFeature handles PUT /api/feature/manager/:id
func (mc *FeatureManagerController) UpdateFeature(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid feature id")
	}

	var req validator.FeatureRequest
	if err := c.Bind(&req); err != nil {
		mc.logger.Warnw("Failed to bind update feature request", "error", err, "id", id)
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid request body")
	}

	response, err := mc.manager.UpdateFeature(c.Request().Context(), id, req)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, response)
}

// DeleteFeature handles DELETE /api/feature/manager/:id
func (mc *FeatureManagerController) DeleteFeature(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.New(apperror.TypeValidationError, "Feature Manager", http.StatusBadRequest, "Invalid feature id")
	}

	response, err := mc.manager.DeleteFeature(c.Request().Context(), id)
	if err != nil {
		return mapServiceError("Feature Manager", err)
	}

	return c.JSON(http.StatusOK, response)
}

// mapServiceError converts domain-identifiable failures to envelope errors and
// leaves everything else for the boundary translator.
func mapServiceError(title string, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return apperror.New(apperror.TypeValidationError, title, http.StatusBadRequest, validationErr.Messages()...)
	}

	switch {
	case errors.Is(err, service.ErrFeatureAlreadyExists):
		return apperror.Conflict(title, "A feature with this name already exists")
	case errors.Is(err, service.ErrFeatureNotFound):
		return apperror.New(apperror.TypeNotFound, title, http.StatusNotFound, "Feature not found")
	default:
		return err
	}
}
