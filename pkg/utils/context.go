package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/contextkeys"
	apperrors "calibration-tracker/pkg/errors"
)

func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), time.Duration(timeout)*time.Second)
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return role, nil
}
