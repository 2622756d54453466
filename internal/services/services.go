package services

import (
	"time"

	"calibration-tracker/pkg/eventbus"
)

// Clock - источник текущего времени; в тестах подменяется фиксированным.
type Clock func() time.Time

// EventPublisher - то, что сервисам нужно от шины событий.
type EventPublisher interface {
	Publish(event eventbus.Event)
}
