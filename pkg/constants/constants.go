// pkg/constants/constants.go
package constants

import "slices"

//============== UPLOAD CONTEXTS ==============

// UploadContext определяет тип для контекстов загрузки файлов.
type UploadContext string

const (
	// UploadContextDocument - сертификаты калибровки и прочие документы оборудования.
	UploadContextDocument UploadContext = "document"
)

func (uc UploadContext) String() string {
	return string(uc)
}

//============== СТАТУСЫ ОБОРУДОВАНИЯ ==============

type EquipmentStatus string

const (
	EquipmentActive            EquipmentStatus = "Active"
	EquipmentInactive          EquipmentStatus = "Inactive"
	EquipmentOutForCalibration EquipmentStatus = "Out for Calibration"
	EquipmentMaintenance       EquipmentStatus = "Maintenance"
	EquipmentReserve           EquipmentStatus = "Reserve"
	EquipmentDiscontinued      EquipmentStatus = "Discontinued"
)

var EquipmentStatuses = []EquipmentStatus{
	EquipmentActive,
	EquipmentInactive,
	EquipmentOutForCalibration,
	EquipmentMaintenance,
	EquipmentReserve,
	EquipmentDiscontinued,
}

func (s EquipmentStatus) IsValid() bool {
	return slices.Contains(EquipmentStatuses, s)
}

// OverdueTracked - только эти статусы попадают в уведомления о просрочке.
func (s EquipmentStatus) OverdueTracked() bool {
	return s == EquipmentActive || s == EquipmentInactive
}

//============== РЕЗУЛЬТАТЫ КАЛИБРОВКИ ==============

type CalibrationResult string

const (
	CalibrationPass            CalibrationResult = "Pass"
	CalibrationFail            CalibrationResult = "Fail"
	CalibrationConditionalPass CalibrationResult = "Conditional Pass"
)

var CalibrationResults = []CalibrationResult{
	CalibrationPass,
	CalibrationFail,
	CalibrationConditionalPass,
}

func (r CalibrationResult) IsValid() bool {
	return slices.Contains(CalibrationResults, r)
}

// EquipmentStatusAfter - статус оборудования после записи калибровки.
func (r CalibrationResult) EquipmentStatusAfter() EquipmentStatus {
	if r == CalibrationFail {
		return EquipmentInactive
	}
	return EquipmentActive
}

//============== УВЕДОМЛЕНИЯ ==============

type NotificationType string

const (
	NotificationOverdue      NotificationType = "overdue"
	NotificationReturn       NotificationType = "return"
	NotificationDiscontinued NotificationType = "discontinued"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationOverdue, NotificationReturn, NotificationDiscontinued:
		return true
	}
	return false
}

//============== РОЛИ ==============

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleUser}

func (r Role) IsValid() bool {
	return slices.Contains(Roles, r)
}

//============== ПРОЧЕЕ ==============

const (
	DefaultCalibrationFrequencyMonths = 12
	MaxUploadSizeMB                   = 10
)
