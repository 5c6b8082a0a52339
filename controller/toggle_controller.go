package controller

import (
	"net/http"

	"featuretoggle/pkg/logger"
	"featuretoggle/service"

	"github.com/labstack/echo/v4"
)

type FeatureToggleController struct {
	toggle service.FeatureToggle
	logger *logger.Logger
}

func NewFeatureToggleController(toggle service.FeatureToggle, log *logger.Logger) *FeatureToggleController {
	return &FeatureToggleController{toggle: toggle, logger: log}
}

// GetToggle handles GET /api/feature/toggle/:name. The response body is the
// bare boolean state.
func (tc *FeatureToggleController) GetToggle(c echo.Context) error {
	active, err := tc.toggle.GetToggle(c.Request().Context(), c.Param("name"))
	if err != nil {
		return mapServiceError("Feature Toggle", err)
	}

	return c.JSON(http.StatusOK, active)
}

// PutToggle handles PUT /api/feature/toggle/:name and returns the new state.
func (tc *FeatureToggleController) PutToggle(c echo.Context) error {
	active, err := tc.toggle.PutToggle(c.Request().Context(), c.Param("name"))
	if err != nil {
		return mapServiceError("Feature Toggle", err)
	}

	return c.JSON(http.StatusOK, active)
}
