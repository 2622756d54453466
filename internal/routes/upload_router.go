package routes

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/controllers"
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/middleware"
)

func runUploadRouter(secure *echo.Group, ctrl *controllers.UploadController, authMW *middleware.AuthMiddleware) {
	// запас на multipart-обвязку сверх лимита самого файла
	bodyLimit := echomw.BodyLimit(fmt.Sprintf("%dM", constants.MaxUploadSizeMB+1))
	secure.POST("/upload", ctrl.Upload, bodyLimit, authMW.RequirePermission(authz.UploadsCreate))
}
