package controller

import (
	"net/http"

	"featuretoggle/pkg/logger"
	"featuretoggle/service"

	"github.com/labstack/echo/v4"
)

type FeatureDashboardController struct {
	dashboard service.FeatureDashboard
	logger    *logger.Logger
}

func NewFeatureDashboardController(dashboard service.FeatureDashboard, log *logger.Logger) *FeatureDashboardController {
	return &FeatureDashboardController{dashboard: dashboard, logger: log}
}

// GetDashboard handles GET /api/feature/dashboard
func (dc *FeatureDashboardController) GetDashboard(c echo.Context) error {
	response, err := dc.dashboard.GetDashboard(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response)
}
