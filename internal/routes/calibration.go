package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runCalibrationRouter(secure *echo.Group, ctrl *controllers.CalibrationController, authMW *middleware.AuthMiddleware) {
	g := secure.Group("/calibration")
	g.GET("", ctrl.GetCalibrations, authMW.RequirePermission(authz.CalibrationsView))
	g.POST("", ctrl.RecordCalibration, authMW.RequirePermission(authz.CalibrationsCreate))
	g.GET("/:equipmentId", ctrl.GetEquipmentCalibrations, authMW.RequirePermission(authz.CalibrationsView))
	g.GET("/:equipmentId/suggestion", ctrl.SuggestNextDate, authMW.RequirePermission(authz.CalibrationsView))
}
