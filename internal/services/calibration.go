package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/types"
)

type CalibrationServiceInterface interface {
	RecordCalibration(ctx context.Context, payload dto.CreateCalibrationDTO) (*entities.Calibration, error)
	GetCalibrations(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error)
	GetEquipmentCalibrations(ctx context.Context, equipmentID uint64) ([]entities.Calibration, error)
	SuggestNextDate(ctx context.Context, equipmentID uint64) (*dto.CalibrationSuggestionDTO, error)
}

type CalibrationService struct {
	txManager     repositories.TxManagerInterface
	repo          repositories.CalibrationRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
	now           Clock
}

func NewCalibrationService(
	txManager repositories.TxManagerInterface,
	repo repositories.CalibrationRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
	now Clock,
) CalibrationServiceInterface {
	return &CalibrationService{
		txManager:     txManager,
		repo:          repo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
		now:           now,
	}
}

// RecordCalibration пишет событие калибровки и переносит на оборудование дату последней
// калибровки, дату следующей (как прислали) и статус. Обе записи в одной транзакции.
func (s *CalibrationService) RecordCalibration(ctx context.Context, payload dto.CreateCalibrationDTO) (*entities.Calibration, error) {
	logger := s.logger.With(zap.Uint64("equipmentID", payload.EquipmentID))

	calibration := &entities.Calibration{
		EquipmentID:         payload.EquipmentID,
		Date:                payload.Date.Time,
		PerformedBy:         strings.TrimSpace(payload.PerformedBy),
		CertificateNumber:   payload.CertificateNumber,
		Status:              constants.CalibrationPass,
		Notes:               payload.Notes,
		NextCalibrationDate: payload.NextCalibrationDate.Ptr(),
	}
	if payload.Status != "" {
		calibration.Status = constants.CalibrationResult(payload.Status)
	}

	var created *entities.Calibration
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.equipmentRepo.FindEquipmentInTx(ctx, tx, payload.EquipmentID); err != nil {
			return err
		}

		var err error
		created, err = s.repo.CreateInTx(ctx, tx, calibration)
		if err != nil {
			return err
		}

		return s.equipmentRepo.ApplyScheduleInTx(ctx, tx, payload.EquipmentID, lifecycle.ScheduleAfter(created))
	})
	if err != nil {
		logger.Warn("Калибровка не записана", zap.Error(err))
		return nil, err
	}

	logger.Info("Калибровка записана",
		zap.Uint64("calibrationID", created.ID),
		zap.String("result", string(created.Status)),
	)
	return created, nil
}

func (s *CalibrationService) GetCalibrations(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error) {
	return s.repo.GetCalibrations(ctx, filter)
}

func (s *CalibrationService) GetEquipmentCalibrations(ctx context.Context, equipmentID uint64) ([]entities.Calibration, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.repo.FindByEquipment(ctx, equipmentID)
}

// SuggestNextDate считает подсказку от последней калибровки, а без неё от текущего момента.
func (s *CalibrationService) SuggestNextDate(ctx context.Context, equipmentID uint64) (*dto.CalibrationSuggestionDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	from := s.now()
	if e.LastCalibrationDate != nil {
		from = *e.LastCalibrationDate
	}

	return &dto.CalibrationSuggestionDTO{
		EquipmentID:                  e.ID,
		From:                         from,
		CalibrationFrequencyInMonths: e.CalibrationFrequencyInMonths,
		SuggestedNextCalibrationDate: lifecycle.SuggestNextCalibrationDate(from, e.CalibrationFrequencyInMonths),
	}, nil
}
