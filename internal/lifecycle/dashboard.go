package lifecycle

import (
	"time"

	"github.com/samber/lo"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

type Stats struct {
	Active        int `json:"active"`
	Reserve       int `json:"reserve"`
	Inplant       int `json:"inplant"`
	Maintenance   int `json:"maintenance"`
	Scheduled     int `json:"scheduled"`
	Unscheduled   int `json:"unscheduled"`
	Discontinued  int `json:"discontinued"`
	InCalibration int `json:"inCalibration"`
	Overdue       int `json:"overdue"`
	Due7          int `json:"due7"`
	Due30         int `json:"due30"`
	Due180        int `json:"due180"`
}

// IsDashboardOverdue - любая запланированная дата раньше now, независимо от статуса.
func IsDashboardOverdue(e *entities.Equipment, now time.Time) bool {
	return e.NextCalibrationDate != nil && e.NextCalibrationDate.Before(now)
}

// IsDueWithin - now <= next <= now+N суток, обе границы включены.
func IsDueWithin(e *entities.Equipment, now time.Time, days int) bool {
	if e.NextCalibrationDate == nil {
		return false
	}
	next := *e.NextCalibrationDate
	return !next.Before(now) && !next.After(now.AddDate(0, 0, days))
}

func ComputeStats(equipment []entities.Equipment, now time.Time) Stats {
	hasStatus := func(statuses ...constants.EquipmentStatus) func(entities.Equipment) bool {
		return func(e entities.Equipment) bool { return lo.Contains(statuses, e.Status) }
	}
	dueWithin := func(days int) func(entities.Equipment) bool {
		return func(e entities.Equipment) bool { return IsDueWithin(&e, now, days) }
	}

	return Stats{
		Active:        lo.CountBy(equipment, hasStatus(constants.EquipmentActive)),
		Reserve:       lo.CountBy(equipment, hasStatus(constants.EquipmentReserve, constants.EquipmentInactive)),
		Inplant:       len(equipment),
		Maintenance:   lo.CountBy(equipment, hasStatus(constants.EquipmentMaintenance)),
		Discontinued:  lo.CountBy(equipment, hasStatus(constants.EquipmentDiscontinued)),
		InCalibration: lo.CountBy(equipment, hasStatus(constants.EquipmentOutForCalibration)),
		Scheduled: lo.CountBy(equipment, func(e entities.Equipment) bool {
			return e.NextCalibrationDate != nil && e.NextCalibrationDate.After(now)
		}),
		Unscheduled: lo.CountBy(equipment, func(e entities.Equipment) bool { return !e.IsScheduled() }),
		Overdue:     lo.CountBy(equipment, func(e entities.Equipment) bool { return IsDashboardOverdue(&e, now) }),
		Due7:        lo.CountBy(equipment, dueWithin(7)),
		Due30:       lo.CountBy(equipment, dueWithin(30)),
		Due180:      lo.CountBy(equipment, dueWithin(180)),
	}
}
