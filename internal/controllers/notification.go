package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/services"
	"calibration-tracker/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(service services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: service, logger: logger}
}

// GetNotifications сначала запускает поиск просрочек, потом отдаёт сохранённые уведомления.
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	created := c.notificationService.GenerateOverdue(reqCtx)
	c.logger.Debug("Поиск просрочек выполнен", zap.Int("created", created))

	res, err := c.notificationService.GetNotifications(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Уведомления получены", http.StatusOK)
}

func (c *NotificationController) GetFeed(ctx echo.Context) error {
	res, err := c.notificationService.GetFeed(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Лента уведомлений получена", http.StatusOK)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.notificationService.MarkRead(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Уведомление прочитано", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	updated, err := c.notificationService.MarkAllRead(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.ReadAllResultDTO{Updated: updated}, "Все уведомления прочитаны", http.StatusOK)
}

func (c *NotificationController) DeleteNotification(ctx echo.Context) error {
	id, err := idParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.notificationService.DeleteNotification(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Уведомление удалено", http.StatusOK)
}
