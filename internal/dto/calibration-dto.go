package dto

import (
	"time"

	"calibration-tracker/pkg/types"
)

type CreateCalibrationDTO struct {
	EquipmentID         uint64      `json:"equipmentId" validate:"required,gt=0"`
	Date                types.Date  `json:"date" validate:"required"`
	PerformedBy         string      `json:"performedBy" validate:"required,max=255"`
	CertificateNumber   *string     `json:"certificateNumber" validate:"omitempty,max=100"`
	Status              string      `json:"status" validate:"omitempty,calibration_status"`
	Notes               *string     `json:"notes" validate:"omitempty,max=2000"`
	NextCalibrationDate *types.Date `json:"nextCalibrationDate"`
}

type CalibrationSuggestionDTO struct {
	EquipmentID                  uint64    `json:"equipmentId"`
	From                         time.Time `json:"from"`
	CalibrationFrequencyInMonths int       `json:"calibrationFrequencyInMonths"`
	SuggestedNextCalibrationDate time.Time `json:"suggestedNextCalibrationDate"`
}
