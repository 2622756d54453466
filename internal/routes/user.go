package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/middleware"
)

func runUserRouter(secure *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	g := secure.Group("/users")
	g.GET("", ctrl.GetUsers, authMW.RequirePermission(authz.UsersView))
	g.POST("", ctrl.CreateUser, authMW.RequirePermission(authz.UsersCreate))
	g.PUT("/:id", ctrl.UpdateUser, authMW.RequirePermission(authz.UsersUpdate))
	g.DELETE("/:id", ctrl.DeleteUser, authMW.RequirePermission(authz.UsersDelete))
}
