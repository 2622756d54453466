package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/controllers"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, ctrl *controllers.AuthController) {
	public.POST("/auth/register", ctrl.Register)
	public.POST("/auth/login", ctrl.Login)
	secure.GET("/auth/me", ctrl.Me)
}
