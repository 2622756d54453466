package entities

import (
	"time"

	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/types"
)

type Document struct {
	Name       string    `json:"name"`
	FilePath   string    `json:"filePath"`
	UploadDate time.Time `json:"uploadDate"`
}

type Equipment struct {
	ID           uint64                    `json:"id" db:"id"`
	Name         string                    `json:"name" db:"name"`
	SerialNumber string                    `json:"serialNumber" db:"serial_number"`
	ModelNumber  *string                   `json:"modelNumber,omitempty" db:"model_number"`
	Manufacturer *string                   `json:"manufacturer,omitempty" db:"manufacturer"`
	Location     *string                   `json:"location,omitempty" db:"location"`
	Status       constants.EquipmentStatus `json:"status" db:"status"`

	LastCalibrationDate          *time.Time `json:"lastCalibrationDate,omitempty" db:"last_calibration_date"`
	NextCalibrationDate          *time.Time `json:"nextCalibrationDate,omitempty" db:"next_calibration_date"`
	CalibrationFrequencyInMonths int        `json:"calibrationFrequencyInMonths" db:"calibration_frequency_months"`

	CalibrationSentDate   *time.Time `json:"calibrationSentDate,omitempty" db:"calibration_sent_date"`
	CalibrationLab        *string    `json:"calibrationLab,omitempty" db:"calibration_lab"`
	CalibrationReturnDate *time.Time `json:"calibrationReturnDate,omitempty" db:"calibration_return_date"`

	AssignedTo *uint64    `json:"assignedTo,omitempty" db:"assigned_to"`
	Documents  []Document `json:"documents" db:"documents"`

	types.BaseEntity
}

// IsScheduled - у оборудования задана дата следующей калибровки.
func (e *Equipment) IsScheduled() bool {
	return e.NextCalibrationDate != nil
}
