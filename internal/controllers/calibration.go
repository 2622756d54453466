package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/services"
	"calibration-tracker/pkg/utils"
)

type CalibrationController struct {
	calibrationService services.CalibrationServiceInterface
	logger             *zap.Logger
}

func NewCalibrationController(service services.CalibrationServiceInterface, logger *zap.Logger) *CalibrationController {
	return &CalibrationController{calibrationService: service, logger: logger}
}

func (c *CalibrationController) GetCalibrations(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.calibrationService.GetCalibrations(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Журнал калибровок получен", http.StatusOK, total)
}

func (c *CalibrationController) GetEquipmentCalibrations(ctx echo.Context) error {
	equipmentID, err := idParam(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.GetEquipmentCalibrations(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "История калибровок получена", http.StatusOK)
}

func (c *CalibrationController) RecordCalibration(ctx echo.Context) error {
	var payload dto.CreateCalibrationDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.RecordCalibration(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Калибровка записана", http.StatusCreated)
}

func (c *CalibrationController) SuggestNextDate(ctx echo.Context) error {
	equipmentID, err := idParam(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.SuggestNextDate(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рекомендуемая дата рассчитана", http.StatusOK)
}
