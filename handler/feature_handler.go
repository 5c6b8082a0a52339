package handler

import (
	"errors"
	"net/http"

	"featuretoggle/apperror"
	"featuretoggle/config"
	"featuretoggle/controller"
	_ "featuretoggle/docs" // Import for swagger docs
	"featuretoggle/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func RegisterRoutes(
	e *echo.Echo,
	mc *controller.FeatureManagerController,
	tc *controller.FeatureToggleController,
	dc *controller.FeatureDashboardController,
	cfg *config.Config,
	log *logger.Logger,
) {
	// Every error reaching echo resolves to the generic envelope here; full
	// detail stays in the server log.
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			if values.Error != nil {
				log.Errorw("Request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"error", values.Error,
				)
			} else {
				log.Infow("Request completed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
				)
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "healthy",
			"service": "featuretoggle",
		})
	})

	// Swagger documentation (if enabled)
	if cfg.Swagger.Enabled {
		log.Infow("Swagger documentation enabled", "path", "/swagger/*")
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api/feature")

	// Manager routes
	api.GET("/manager", mc.GetPagedFeatures)
	api.GET("/manager/all", mc.GetFeatures)
	api.GET("/manager/list", mc.GetPagedFeaturesByStatus)
	api.GET("/manager/:id", mc.GetFeature)
	api.POST("/manager", mc.CreateFeature)
	api.PUT("/manager/:id", mc.UpdateFeature)
	api.DELETE("/manager/:id", mc.DeleteFeature)

	// Toggle routes
	api.GET("/toggle/:name", tc.GetToggle)
	api.PUT("/toggle/:name", tc.PutToggle)

	// Dashboard route
	api.GET("/dashboard", dc.GetDashboard)
}

// errorHandler is the single boundary translator: it maps every error to the
// {type,title,messages} envelope with an HTTP status code.
func errorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		envelope := &apperror.Error{
			Type:     apperror.TypeFatal,
			Title:    "Internal Server Error",
			Messages: []string{"Error on process request"},
		}

		var appErr *apperror.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status()
			envelope = appErr
		case errors.As(err, &httpErr):
			status = httpErr.Code
			envelope = apperror.New(apperror.TypeServerError, http.StatusText(httpErr.Code), httpErr.Code,
				http.StatusText(httpErr.Code))
		default:
			log.Errorw("Unhandled error on request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err,
			)
		}

		if writeErr := c.JSON(status, envelope); writeErr != nil {
			log.Errorw("Failed to write error response", "error", writeErr)
		}
	}
}
