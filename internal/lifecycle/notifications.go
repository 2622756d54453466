// Package lifecycle содержит правила жизненного цикла калибровки:
// переходы статусов оборудования, вычисление просрочки и сводку для дашборда.
// Пакет не обращается к хранилищу и не зависит от текущего времени.
package lifecycle

import (
	"fmt"
	"time"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

const day = 24 * time.Hour

func ReturnMessage(name, serialNumber string) string {
	return fmt.Sprintf("%s (%s) has returned from calibration", name, serialNumber)
}

func DiscontinuedMessage(name, serialNumber string) string {
	return fmt.Sprintf("%s (%s) has been marked as discontinued", name, serialNumber)
}

func OverdueMessage(name, serialNumber string, daysOverdue int64) string {
	return fmt.Sprintf("%s (%s) is %d days overdue for calibration", name, serialNumber, daysOverdue)
}

// DaysOverdue - целое число суток, отсечение дробной части.
func DaysOverdue(next, now time.Time) int64 {
	return int64(now.Sub(next) / day)
}

// IsNotificationOverdue - предикат для уведомлений: дата прошла и статус Active/Inactive.
// Отличается от предиката дашборда, который статус не учитывает.
func IsNotificationOverdue(e *entities.Equipment, now time.Time) bool {
	if e.NextCalibrationDate == nil {
		return false
	}
	return e.NextCalibrationDate.Before(now) && e.Status.OverdueTracked()
}

// OverdueNotification строит уведомление о просрочке без идентификатора.
func OverdueNotification(e *entities.Equipment, now time.Time) entities.Notification {
	return entities.Notification{
		Type:        constants.NotificationOverdue,
		Message:     OverdueMessage(e.Name, e.SerialNumber, DaysOverdue(*e.NextCalibrationDate, now)),
		EquipmentID: e.ID,
		Read:        false,
		CreatedAt:   now,
		Equipment:   &entities.EquipmentRef{ID: e.ID, Name: e.Name, SerialNumber: e.SerialNumber},
	}
}

// DeriveOverdue - "живой" режим: уведомления вычисляются по списку в памяти и не сохраняются.
func DeriveOverdue(equipment []entities.Equipment, now time.Time) []entities.Notification {
	var out []entities.Notification
	for i := range equipment {
		if IsNotificationOverdue(&equipment[i], now) {
			out = append(out, OverdueNotification(&equipment[i], now))
		}
	}
	return out
}

// TransitionNotifications сравнивает состояние до и после обновления.
// Уведомление появляется только для двух переходов:
// "Out for Calibration" -> Active|Reserve и любой статус -> Discontinued.
func TransitionNotifications(before, after *entities.Equipment) []entities.Notification {
	if before == nil || after == nil {
		return nil
	}

	var out []entities.Notification
	if before.Status == constants.EquipmentOutForCalibration &&
		(after.Status == constants.EquipmentActive || after.Status == constants.EquipmentReserve) {
		out = append(out, entities.Notification{
			Type:        constants.NotificationReturn,
			Message:     ReturnMessage(after.Name, after.SerialNumber),
			EquipmentID: after.ID,
		})
	}
	if before.Status != constants.EquipmentDiscontinued && after.Status == constants.EquipmentDiscontinued {
		out = append(out, entities.Notification{
			Type:        constants.NotificationDiscontinued,
			Message:     DiscontinuedMessage(after.Name, after.SerialNumber),
			EquipmentID: after.ID,
		})
	}
	return out
}
