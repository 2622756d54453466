package services

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/events"
	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/internal/repositories"
)

// NotificationEmitter сохраняет уведомление, не возвращая ошибку: сбой только логируется
// и не должен ломать операцию, которая его вызвала.
type NotificationEmitter interface {
	Emit(ctx context.Context, notification entities.Notification)
}

type NotificationServiceInterface interface {
	NotificationEmitter
	GenerateOverdue(ctx context.Context) int
	GetNotifications(ctx context.Context) ([]entities.Notification, error)
	GetFeed(ctx context.Context) ([]dto.NotificationFeedItemDTO, error)
	MarkRead(ctx context.Context, id uint64) (*entities.Notification, error)
	MarkAllRead(ctx context.Context) (int64, error)
	DeleteNotification(ctx context.Context, id uint64) error
}

type NotificationService struct {
	repo          repositories.NotificationRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	publisher     EventPublisher
	logger        *zap.Logger
	now           Clock
}

func NewNotificationService(
	repo repositories.NotificationRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
	now Clock,
) NotificationServiceInterface {
	return &NotificationService{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		publisher:     publisher,
		logger:        logger,
		now:           now,
	}
}

func (s *NotificationService) Emit(ctx context.Context, n entities.Notification) {
	s.persist(ctx, n)
}

func (s *NotificationService) persist(ctx context.Context, n entities.Notification) bool {
	logger := s.logger.With(zap.String("type", string(n.Type)), zap.Uint64("equipmentID", n.EquipmentID))

	created, err := s.repo.Create(ctx, &n)
	if err != nil {
		logger.Error("Не удалось сохранить уведомление", zap.Error(err))
		return false
	}
	logger.Info("Уведомление создано", zap.Uint64("notificationID", created.ID))

	if s.publisher != nil {
		s.publisher.Publish(events.NotificationCreatedEvent{Notification: *created})
	}
	return true
}

// GenerateOverdue - пакетный поиск просрочек. Для оборудования, у которого уже есть
// непрочитанное уведомление о просрочке, новое не создаётся. Ошибка выборки даёт 0.
func (s *NotificationService) GenerateOverdue(ctx context.Context) int {
	now := s.now()

	candidates, err := s.equipmentRepo.FindOverdueCandidates(ctx, now)
	if err != nil {
		s.logger.Error("Ошибка поиска просроченного оборудования", zap.Error(err))
		return 0
	}

	created := 0
	for i := range candidates {
		e := &candidates[i]
		if !lifecycle.IsNotificationOverdue(e, now) {
			continue
		}

		exists, err := s.repo.ExistsUnreadOverdue(ctx, e.ID)
		if err != nil {
			s.logger.Error("Ошибка проверки существующего уведомления", zap.Uint64("equipmentID", e.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		if s.persist(ctx, lifecycle.OverdueNotification(e, now)) {
			created++
		}
	}

	if created > 0 {
		s.logger.Info("Созданы уведомления о просрочке", zap.Int("count", created))
	}
	return created
}

func (s *NotificationService) GetNotifications(ctx context.Context) ([]entities.Notification, error) {
	return s.repo.GetNotifications(ctx)
}

// GetFeed объединяет сохранённые уведомления с вычисленными "на лету" просрочками.
// Сортировка по времени по убыванию; у живых время = момент запроса.
func (s *NotificationService) GetFeed(ctx context.Context) ([]dto.NotificationFeedItemDTO, error) {
	now := s.now()

	persisted, err := s.repo.GetNotifications(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := lo.Map(persisted, func(n entities.Notification, _ int) dto.NotificationFeedItemDTO {
		id := n.ID
		return dto.NotificationFeedItemDTO{
			ID:          &id,
			Type:        n.Type,
			Message:     n.Message,
			EquipmentID: n.EquipmentID,
			Read:        n.Read,
			Timestamp:   n.CreatedAt,
			Equipment:   n.Equipment,
		}
	})
	for _, n := range lifecycle.DeriveOverdue(equipment, now) {
		feed = append(feed, dto.NotificationFeedItemDTO{
			Type:        n.Type,
			Message:     n.Message,
			EquipmentID: n.EquipmentID,
			Live:        true,
			Timestamp:   n.CreatedAt,
			Equipment:   n.Equipment,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	return feed, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint64) (*entities.Notification, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}
