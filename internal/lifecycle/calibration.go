package lifecycle

import (
	"time"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

// ScheduleUpdate - ровно три поля, которые запись калибровки переносит на оборудование.
type ScheduleUpdate struct {
	LastCalibrationDate time.Time
	NextCalibrationDate *time.Time
	Status              constants.EquipmentStatus
}

func ScheduleAfter(c *entities.Calibration) ScheduleUpdate {
	return ScheduleUpdate{
		LastCalibrationDate: c.Date,
		NextCalibrationDate: c.NextCalibrationDate,
		Status:              c.Status.EquipmentStatusAfter(),
	}
}

func (u ScheduleUpdate) ApplyTo(e *entities.Equipment) {
	last := u.LastCalibrationDate
	e.LastCalibrationDate = &last
	e.NextCalibrationDate = u.NextCalibrationDate
	e.Status = u.Status
}

// SuggestNextCalibrationDate - подсказка для формы: дата + периодичность в месяцах.
// Сервер её не применяет, дата следующей калибровки всегда берётся из запроса.
func SuggestNextCalibrationDate(from time.Time, months int) time.Time {
	if months <= 0 {
		months = constants.DefaultCalibrationFrequencyMonths
	}
	return from.AddDate(0, months, 0)
}
