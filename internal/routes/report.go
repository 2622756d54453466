package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runReportRouter(secure *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secure.GET("/reports/calibration", ctrl.GetCalibrationReport, authMW.RequirePermission(authz.ReportsView))
}
