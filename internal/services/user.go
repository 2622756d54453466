package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"calibration-tracker/internal/authz"
	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/types"
	"calibration-tracker/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	repo       repositories.UserRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewUserService(repo repositories.UserRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) UserServiceInterface {
	return &UserService{repo: repo, gatekeeper: gatekeeper, logger: logger}
}

// actor достаёт из контекста id и роль и проверяет пермишен.
func (s *UserService) actor(ctx context.Context, permission string) (uint64, constants.Role, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, "", err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return 0, "", err
	}
	if !s.gatekeeper.Can(role, permission) {
		return 0, "", apperrors.ErrForbidden
	}
	return actorID, role, nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	if _, _, err := s.actor(ctx, authz.UsersView); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	res := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		res = append(res, dto.NewUserDTO(&users[i]))
	}
	return res, total, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	actorID, _, err := s.actor(ctx, authz.UsersCreate)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	username := strings.TrimSpace(payload.Username)
	if err := s.ensureUnique(ctx, email, username, 0); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	role := constants.RoleUser
	if payload.Role != "" {
		role = constants.Role(payload.Role)
	}

	created, err := s.repo.CreateUser(ctx, &entities.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Пользователь создан", zap.Uint64("userID", created.ID), zap.Uint64("actorID", actorID))

	res := dto.NewUserDTO(created)
	return &res, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if _, _, err := s.actor(ctx, authz.UsersUpdate); err != nil {
		return nil, err
	}

	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Username != nil {
		user.Username = strings.TrimSpace(*payload.Username)
	}
	if payload.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Role != nil {
		user.Role = constants.Role(*payload.Role)
	}
	if payload.Username != nil || payload.Email != nil {
		if err := s.ensureUnique(ctx, user.Email, user.Username, id); err != nil {
			return nil, err
		}
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	res := dto.NewUserDTO(updated)
	return &res, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	actorID, role, err := s.actor(ctx, authz.UsersDelete)
	if err != nil {
		return err
	}
	if !s.gatekeeper.CanDeleteUser(role, actorID, id) {
		return apperrors.NewBadRequestError("Нельзя удалить собственную учётную запись")
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.Uint64("userID", id), zap.Uint64("actorID", actorID))
	return nil
}

func (s *UserService) ensureUnique(ctx context.Context, email, username string, excludeID uint64) error {
	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewBadRequestError("Пользователь с таким email или именем уже существует")
	}
	return nil
}
