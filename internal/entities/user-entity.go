// Файл: internal/entities/user_entity.go
package entities

import (
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/types"
)

type User struct {
	ID       uint64         `json:"id" db:"id"`
	Username string         `json:"username" db:"username"`
	Email    string         `json:"email" db:"email"`
	Password string         `json:"-" db:"password"`
	Role     constants.Role `json:"role" db:"role"`

	types.BaseEntity
}
