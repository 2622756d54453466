package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/types"
	"calibration-tracker/pkg/utils"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO, rawBody []byte) (*entities.Equipment, error)
	AttachDocument(ctx context.Context, id uint64, payload dto.AttachDocumentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	repo     repositories.EquipmentRepositoryInterface
	notifier NotificationEmitter
	logger   *zap.Logger
	now      Clock
}

func NewEquipmentService(
	repo repositories.EquipmentRepositoryInterface,
	notifier NotificationEmitter,
	logger *zap.Logger,
	now Clock,
) EquipmentServiceInterface {
	return &EquipmentService{repo: repo, notifier: notifier, logger: logger, now: now}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.repo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.repo.FindEquipment(ctx, id)
}

func (s *EquipmentService) FindBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, apperrors.NewBadRequestError("Серийный номер не указан")
	}
	return s.repo.FindBySerialNumber(ctx, serialNumber)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	now := s.now()

	e := &entities.Equipment{
		Name:                         strings.TrimSpace(payload.Name),
		SerialNumber:                 strings.TrimSpace(payload.SerialNumber),
		ModelNumber:                  payload.ModelNumber,
		Manufacturer:                 payload.Manufacturer,
		Location:                     payload.Location,
		Status:                       constants.EquipmentActive,
		LastCalibrationDate:          payload.LastCalibrationDate.Ptr(),
		NextCalibrationDate:          payload.NextCalibrationDate.Ptr(),
		CalibrationFrequencyInMonths: constants.DefaultCalibrationFrequencyMonths,
		CalibrationSentDate:          payload.CalibrationSentDate.Ptr(),
		CalibrationLab:               payload.CalibrationLab,
		CalibrationReturnDate:        payload.CalibrationReturnDate.Ptr(),
		AssignedTo:                   payload.AssignedTo,
		Documents:                    make([]entities.Document, 0, len(payload.Documents)),
	}
	if payload.Status != "" {
		e.Status = constants.EquipmentStatus(payload.Status)
	}
	if payload.CalibrationFrequencyInMonths != nil {
		e.CalibrationFrequencyInMonths = *payload.CalibrationFrequencyInMonths
	}
	for _, d := range payload.Documents {
		e.Documents = append(e.Documents, entities.Document{Name: d.Name, FilePath: d.FilePath, UploadDate: now})
	}

	if err := validateEquipment(e); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateEquipment(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Оборудование создано", zap.Uint64("equipmentID", created.ID), zap.String("serialNumber", created.SerialNumber))
	return created, nil
}

// UpdateEquipment - частичное обновление. Старое состояние читается до записи,
// по разнице статусов создаются уведомления о возврате и списании.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO, rawBody []byte) (*entities.Equipment, error) {
	before, err := s.repo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *before
	if err := utils.ApplyPatch(&updated, &payload, rawBody); err != nil {
		return nil, apperrors.NewBadRequestError("Неверный формат тела запроса")
	}
	updated.ID = id
	updated.Name = strings.TrimSpace(updated.Name)
	updated.SerialNumber = strings.TrimSpace(updated.SerialNumber)

	if err := validateEquipment(&updated); err != nil {
		return nil, err
	}

	saved, err := s.repo.UpdateEquipment(ctx, &updated)
	if err != nil {
		return nil, err
	}

	for _, n := range lifecycle.TransitionNotifications(before, saved) {
		s.notifier.Emit(ctx, n)
	}
	return saved, nil
}

func (s *EquipmentService) AttachDocument(ctx context.Context, id uint64, payload dto.AttachDocumentDTO) (*entities.Equipment, error) {
	doc := entities.Document{
		Name:       strings.TrimSpace(payload.Name),
		FilePath:   payload.FilePath,
		UploadDate: s.now(),
	}
	return s.repo.AddDocument(ctx, id, doc)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.Uint64("equipmentID", id))
	return nil
}

func validateEquipment(e *entities.Equipment) error {
	switch {
	case e.Name == "":
		return apperrors.NewBadRequestError("Название оборудования обязательно")
	case e.SerialNumber == "":
		return apperrors.NewBadRequestError("Серийный номер обязателен")
	case !e.Status.IsValid():
		return apperrors.NewBadRequestError("Недопустимый статус оборудования")
	case e.CalibrationFrequencyInMonths <= 0:
		return apperrors.NewBadRequestError("Периодичность калибровки должна быть больше нуля")
	}
	return nil
}
