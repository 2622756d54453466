package dto

import (
	"time"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,custom_email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}

type UpdateUserDTO struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,custom_email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role" validate:"omitempty,user_role"`
}

// UserDTO - пользователь без пароля.
type UserDTO struct {
	ID        uint64         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Role      constants.Role `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewUserDTO(u *entities.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
