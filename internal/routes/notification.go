package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runNotificationRouter(secure *echo.Group, ctrl *controllers.NotificationController, authMW *middleware.AuthMiddleware) {
	g := secure.Group("/notifications")
	g.GET("", ctrl.GetNotifications, authMW.RequirePermission(authz.NotificationsView))
	g.GET("/feed", ctrl.GetFeed, authMW.RequirePermission(authz.NotificationsView))
	g.PUT("/read-all", ctrl.MarkAllRead, authMW.RequirePermission(authz.NotificationsUpdate))
	g.PUT("/:id/read", ctrl.MarkRead, authMW.RequirePermission(authz.NotificationsUpdate))
	g.DELETE("/:id", ctrl.DeleteNotification, authMW.RequirePermission(authz.NotificationsDelete))
}
