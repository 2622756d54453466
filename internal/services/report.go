package services

import (
	"context"

	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/pkg/types"
)

type ReportServiceInterface interface {
	GetCalibrationReport(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error)
	GetCalibrationExport(ctx context.Context, filter types.Filter) ([]entities.Calibration, error)
}

type ReportService struct {
	calibrationRepo repositories.CalibrationRepositoryInterface
	logger          *zap.Logger
}

func NewReportService(calibrationRepo repositories.CalibrationRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{calibrationRepo: calibrationRepo, logger: logger}
}

func (s *ReportService) GetCalibrationReport(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error) {
	return s.calibrationRepo.GetCalibrations(ctx, filter)
}

// GetCalibrationExport выгружает весь журнал под фильтром, без пагинации.
func (s *ReportService) GetCalibrationExport(ctx context.Context, filter types.Filter) ([]entities.Calibration, error) {
	filter.WithPagination = false
	list, total, err := s.calibrationRepo.GetCalibrations(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Выгрузка журнала калибровок", zap.Uint64("total", total))
	return list, nil
}
