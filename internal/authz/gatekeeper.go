package authz

import (
	"slices"

	"calibration-tracker/pkg/constants"
)

// Gatekeeper - централизованный предикат доступа {роль, ресурс, действие}.
type Gatekeeper struct {
	perms map[constants.Role]map[string]bool
}

func NewGatekeeper() *Gatekeeper {
	g := &Gatekeeper{perms: make(map[constants.Role]map[string]bool, len(rolePermissions))}
	for role, list := range rolePermissions {
		set := make(map[string]bool, len(list))
		for _, p := range list {
			set[p] = true
		}
		g.perms[role] = set
	}
	return g
}

func (g *Gatekeeper) Can(role constants.Role, permission string) bool {
	return g.perms[role][permission]
}

// CanDeleteUser - кроме права users:delete, нельзя удалить самого себя.
func (g *Gatekeeper) CanDeleteUser(role constants.Role, actorID, targetID uint64) bool {
	return g.Can(role, UsersDelete) && actorID != targetID
}

// RolesWith - роли, которым выдан пермишен (для сообщений об ошибке).
func (g *Gatekeeper) RolesWith(permission string) []constants.Role {
	var roles []constants.Role
	for _, role := range constants.Roles {
		if g.Can(role, permission) {
			roles = append(roles, role)
		}
	}
	slices.Sort(roles)
	return roles
}
