package seeders

import "calibration-tracker/pkg/constants"

type equipmentSeed struct {
	Name         string
	SerialNumber string
	Model        string
	Manufacturer string
	Location     string
	Status       constants.EquipmentStatus
	Frequency    int
	// Смещение следующей калибровки в днях от текущей даты. nil - не запланирована.
	NextInDays *int
}

func days(n int) *int { return &n }

var demoEquipment = []equipmentSeed{
	{"Штангенциркуль цифровой", "SN-CAL-0001", "500-196-30", "Mitutoyo", "Цех 1", constants.EquipmentActive, 12, days(-5)},
	{"Микрометр гладкий", "SN-MIC-0002", "103-137", "Mitutoyo", "Цех 1", constants.EquipmentActive, 12, days(6)},
	{"Манометр показывающий", "SN-MAN-0003", "МП-100", "Манотомь", "Котельная", constants.EquipmentInactive, 6, days(-30)},
	{"Мультиметр", "SN-DMM-0004", "87V", "Fluke", "Лаборатория", constants.EquipmentOutForCalibration, 12, days(-2)},
	{"Весы лабораторные", "SN-BAL-0005", "XS205", "Mettler Toledo", "Лаборатория", constants.EquipmentReserve, 24, days(90)},
	{"Термометр контактный", "SN-THR-0006", "testo 905", "Testo", "Склад", constants.EquipmentMaintenance, 12, nil},
	{"Индикатор часового типа", "SN-IND-0007", "ИЧ-10", "КРИН", "Архив", constants.EquipmentDiscontinued, 12, days(-200)},
}
