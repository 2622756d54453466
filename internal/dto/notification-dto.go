package dto

import (
	"time"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

// NotificationFeedItemDTO - элемент общей ленты. У живых (вычисленных) уведомлений нет id,
// а Timestamp равен моменту запроса.
type NotificationFeedItemDTO struct {
	ID          *uint64                    `json:"id"`
	Type        constants.NotificationType `json:"type"`
	Message     string                     `json:"message"`
	EquipmentID uint64                     `json:"equipmentId"`
	Read        bool                       `json:"read"`
	Live        bool                       `json:"live"`
	Timestamp   time.Time                  `json:"timestamp"`
	Equipment   *entities.EquipmentRef     `json:"equipment,omitempty"`
}

type ScanResultDTO struct {
	Created int `json:"created"`
}

type ReadAllResultDTO struct {
	Updated int64 `json:"updated"`
}
