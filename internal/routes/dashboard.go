package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runDashboardRouter(secure *echo.Group, ctrl *controllers.DashboardController, authMW *middleware.AuthMiddleware) {
	secure.GET("/dashboard/stats", ctrl.GetStats, authMW.RequirePermission(authz.DashboardView))
}
