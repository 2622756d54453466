package authz

import "calibration-tracker/pkg/constants"

// Пермишен - пара "ресурс:действие".
const (
	EquipmentView   = "equipment:view"
	EquipmentCreate = "equipment:create"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"

	CalibrationsView   = "calibrations:view"
	CalibrationsCreate = "calibrations:create"

	NotificationsView   = "notifications:view"
	NotificationsUpdate = "notifications:update"
	NotificationsDelete = "notifications:delete"

	DashboardView = "dashboard:view"
	ReportsView   = "reports:view"
	UploadsCreate = "uploads:create"

	UsersView   = "users:view"
	UsersCreate = "users:create"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"
)

var operational = []string{
	EquipmentView, EquipmentCreate, EquipmentUpdate, EquipmentDelete,
	CalibrationsView, CalibrationsCreate,
	NotificationsView, NotificationsUpdate, NotificationsDelete,
	DashboardView, ReportsView, UploadsCreate,
}

// rolePermissions - единственное место, где роли связываются с правами.
var rolePermissions = map[constants.Role][]string{
	constants.RoleAdmin:   append(append([]string{}, operational...), UsersView, UsersCreate, UsersUpdate, UsersDelete),
	constants.RoleManager: append(append([]string{}, operational...), UsersView),
	constants.RoleUser:    operational,
}
