package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/services"
	"calibration-tracker/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetCalibrationReport отдаёт журнал калибровок JSON-ом или, при ?format=xlsx, файлом Excel.
func (c *ReportController) GetCalibrationReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		data, err := c.reportService.GetCalibrationExport(reqCtx, filter)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.respondWithXLSX(ctx, data)
	}

	data, total, err := c.reportService.GetCalibrationReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK, total)
}

var reportHeaders = []interface{}{
	"№", "Оборудование", "Серийный номер", "Дата калибровки", "Исполнитель",
	"Номер сертификата", "Результат", "Следующая калибровка", "Примечания",
}

func rowToSlice(i int, item entities.Calibration) []interface{} {
	const dateFmt = "02.01.2006"

	var name, serial, next string
	if item.Equipment != nil {
		name, serial = item.Equipment.Name, item.Equipment.SerialNumber
	}
	if item.NextCalibrationDate != nil {
		next = item.NextCalibrationDate.Format(dateFmt)
	}

	return []interface{}{
		i + 1, name, serial, item.Date.Format(dateFmt), item.PerformedBy,
		utils.SafeDeref(item.CertificateNumber), string(item.Status), next, utils.SafeDeref(item.Notes),
	}
}

func buildCalibrationWorkbook(data []entities.Calibration) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Калибровки"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "I1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(i, item)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "B", "C", 25)
	_ = f.SetColWidth(sheet, "D", "H", 20)
	_ = f.SetColWidth(sheet, "I", "I", 50)
	return f, nil
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.Calibration) error {
	f, err := buildCalibrationWorkbook(data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("calibrations_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
