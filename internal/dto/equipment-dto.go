package dto

import (
	"github.com/aarondl/null/v8"

	"calibration-tracker/pkg/types"
)

type CreateEquipmentDTO struct {
	Name         string  `json:"name" validate:"required,max=255"`
	SerialNumber string  `json:"serialNumber" validate:"required,max=100"`
	ModelNumber  *string `json:"modelNumber" validate:"omitempty,max=100"`
	Manufacturer *string `json:"manufacturer" validate:"omitempty,max=255"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Status       string  `json:"status" validate:"omitempty,equipment_status"`

	LastCalibrationDate          *types.Date `json:"lastCalibrationDate"`
	NextCalibrationDate          *types.Date `json:"nextCalibrationDate"`
	CalibrationFrequencyInMonths *int        `json:"calibrationFrequencyInMonths" validate:"omitempty,gte=1,lte=240"`

	CalibrationSentDate   *types.Date `json:"calibrationSentDate"`
	CalibrationLab        *string     `json:"calibrationLab" validate:"omitempty,max=255"`
	CalibrationReturnDate *types.Date `json:"calibrationReturnDate"`

	AssignedTo *uint64       `json:"assignedTo" validate:"omitempty,gt=0"`
	Documents  []DocumentDTO `json:"documents" validate:"omitempty,dive"`
}

// UpdateEquipmentDTO - частичное обновление. Какие поля реально прислали, решает utils.ApplyPatch
// по сырому телу запроса; явный null сбрасывает необязательное поле.
type UpdateEquipmentDTO struct {
	Name         *string     `json:"name" validate:"omitempty,max=255"`
	SerialNumber *string     `json:"serialNumber" validate:"omitempty,max=100"`
	ModelNumber  null.String `json:"modelNumber" validate:"omitempty,max=100"`
	Manufacturer null.String `json:"manufacturer" validate:"omitempty,max=255"`
	Location     null.String `json:"location" validate:"omitempty,max=255"`
	Status       *string     `json:"status" validate:"omitempty,equipment_status"`

	LastCalibrationDate          types.NullDate `json:"lastCalibrationDate"`
	NextCalibrationDate          types.NullDate `json:"nextCalibrationDate"`
	CalibrationFrequencyInMonths *int           `json:"calibrationFrequencyInMonths" validate:"omitempty,gte=1,lte=240"`

	CalibrationSentDate   types.NullDate `json:"calibrationSentDate"`
	CalibrationLab        null.String    `json:"calibrationLab" validate:"omitempty,max=255"`
	CalibrationReturnDate types.NullDate `json:"calibrationReturnDate"`

	AssignedTo null.Uint64 `json:"assignedTo"`
}

type DocumentDTO struct {
	Name     string `json:"name" validate:"required,max=255"`
	FilePath string `json:"filePath" validate:"required,max=500"`
}

type AttachDocumentDTO struct {
	Name     string `json:"name" validate:"required,max=255"`
	FilePath string `json:"filePath" validate:"required,max=500"`
}
