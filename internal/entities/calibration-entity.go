package entities

import (
	"time"

	"calibration-tracker/pkg/constants"
)

// Calibration - запись о проведённой калибровке. После создания не изменяется.
type Calibration struct {
	ID                  uint64                      `json:"id" db:"id"`
	EquipmentID         uint64                      `json:"equipmentId" db:"equipment_id"`
	Date                time.Time                   `json:"date" db:"date"`
	PerformedBy         string                      `json:"performedBy" db:"performed_by"`
	CertificateNumber   *string                     `json:"certificateNumber,omitempty" db:"certificate_number"`
	Status              constants.CalibrationResult `json:"status" db:"status"`
	Notes               *string                     `json:"notes,omitempty" db:"notes"`
	NextCalibrationDate *time.Time                  `json:"nextCalibrationDate,omitempty" db:"next_calibration_date"`
	CreatedAt           time.Time                   `json:"createdAt" db:"created_at"`

	// Заполняется только в общем журнале (JOIN с equipments)
	Equipment *EquipmentRef `json:"equipment,omitempty" db:"-"`
}

type EquipmentRef struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
}
