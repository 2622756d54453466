package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"calibration-tracker/pkg/constants"
)

func TestGatekeeper_UserAdministration(t *testing.T) {
	g := NewGatekeeper()

	tests := []struct {
		role       constants.Role
		permission string
		want       bool
	}{
		{constants.RoleAdmin, UsersView, true},
		{constants.RoleAdmin, UsersCreate, true},
		{constants.RoleAdmin, UsersUpdate, true},
		{constants.RoleAdmin, UsersDelete, true},
		{constants.RoleManager, UsersView, true},
		{constants.RoleManager, UsersCreate, false},
		{constants.RoleManager, UsersUpdate, false},
		{constants.RoleManager, UsersDelete, false},
		{constants.RoleUser, UsersView, false},
		{constants.RoleUser, UsersDelete, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.permission, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Can(tt.role, tt.permission))
		})
	}
}

func TestGatekeeper_OperationalAccessForEveryRole(t *testing.T) {
	g := NewGatekeeper()
	for _, role := range constants.Roles {
		for _, p := range operational {
			assert.True(t, g.Can(role, p), "%s %s", role, p)
		}
	}
}

func TestGatekeeper_UnknownRole(t *testing.T) {
	g := NewGatekeeper()
	assert.False(t, g.Can(constants.Role("Root"), EquipmentView))
	assert.False(t, g.Can("", UsersView))
}

func TestGatekeeper_CanDeleteUser(t *testing.T) {
	g := NewGatekeeper()
	assert.True(t, g.CanDeleteUser(constants.RoleAdmin, 1, 2))
	assert.False(t, g.CanDeleteUser(constants.RoleAdmin, 1, 1), "себя удалить нельзя")
	assert.False(t, g.CanDeleteUser(constants.RoleManager, 1, 2))
}

func TestGatekeeper_RolesWith(t *testing.T) {
	g := NewGatekeeper()
	assert.Equal(t, []constants.Role{constants.RoleAdmin, constants.RoleManager}, g.RolesWith(UsersView))
	assert.Equal(t, []constants.Role{constants.RoleAdmin}, g.RolesWith(UsersDelete))
}
