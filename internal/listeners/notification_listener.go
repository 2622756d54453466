package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"calibration-tracker/internal/events"
	"calibration-tracker/internal/services"
	"calibration-tracker/pkg/eventbus"
	"calibration-tracker/pkg/websocket"
)

// NotificationListener пересылает каждое сохранённое уведомление во все открытые вебсокеты.
type NotificationListener struct {
	wsNotificationService services.WebSocketNotificationServiceInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	wsNotificationService services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{wsNotificationService: wsNotificationService, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationCreated, l.handleNotificationCreated)
	l.logger.Info("NotificationListener подписан на событие", zap.String("event", events.NotificationCreated))
}

func (l *NotificationListener) handleNotificationCreated(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.NotificationCreatedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}

	if err := l.wsNotificationService.Broadcast(e.Notification, websocket.MessageTypeNotification); err != nil {
		l.logger.Warn("Не удалось разослать уведомление по WebSocket",
			zap.Uint64("notificationID", e.Notification.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
