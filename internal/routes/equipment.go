package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runEquipmentRouter(secure *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	g := secure.Group("/equipment")
	g.GET("", ctrl.GetEquipments, authMW.RequirePermission(authz.EquipmentView))
	g.POST("", ctrl.CreateEquipment, authMW.RequirePermission(authz.EquipmentCreate))
	g.GET("/serial/:serialNumber", ctrl.FindBySerialNumber, authMW.RequirePermission(authz.EquipmentView))
	g.GET("/:id", ctrl.FindEquipment, authMW.RequirePermission(authz.EquipmentView))
	g.PUT("/:id", ctrl.UpdateEquipment, authMW.RequirePermission(authz.EquipmentUpdate))
	g.DELETE("/:id", ctrl.DeleteEquipment, authMW.RequirePermission(authz.EquipmentDelete))
	g.POST("/:id/documents", ctrl.AttachDocument, authMW.RequirePermission(authz.EquipmentUpdate))
}
