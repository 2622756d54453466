package routes

import (
	"github.com/labstack/echo/v4"

	"calibration-tracker/internal/controllers"
)

// токен проверяет сам контроллер: браузерный WebSocket не передаёт заголовки
func runWebSocketRouter(api *echo.Group, ctrl *controllers.WebSocketController) {
	api.GET("/ws/notifications", ctrl.ServeWs)
}
