package events

import "calibration-tracker/internal/entities"

const NotificationCreated = "notification.created"

// NotificationCreatedEvent - уведомление сохранено в БД.
type NotificationCreatedEvent struct {
	Notification entities.Notification
}

func (e NotificationCreatedEvent) Name() string {
	return NotificationCreated
}
