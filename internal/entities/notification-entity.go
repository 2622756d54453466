package entities

import (
	"time"

	"calibration-tracker/pkg/constants"
)

type Notification struct {
	ID          uint64                     `json:"id" db:"id"`
	Type        constants.NotificationType `json:"type" db:"type"`
	Message     string                     `json:"message" db:"message"`
	EquipmentID uint64                     `json:"equipmentId" db:"equipment_id"`
	Read        bool                       `json:"read" db:"read"`
	CreatedAt   time.Time                  `json:"createdAt" db:"created_at"`

	Equipment *EquipmentRef `json:"equipment,omitempty" db:"-"`
}
