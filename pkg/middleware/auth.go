package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"calibration-tracker/internal/authz"
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/contextkeys"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/service"
	"calibration-tracker/pkg/utils"
)

// TokenHeader - основной заголовок с токеном; Authorization: Bearer тоже принимается.
const TokenHeader = "auth-token"

type AuthMiddleware struct {
	jwtService service.JWTService
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

func (m *AuthMiddleware) extractToken(c echo.Context) (string, error) {
	if token := strings.TrimSpace(c.Request().Header.Get(TokenHeader)); token != "" {
		return token, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// Auth проверяет токен и кладёт id и роль пользователя в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := m.extractToken(c)
		if err != nil {
			m.logger.Debug("AuthMiddleware: токен не передан", zap.String("path", c.Path()))
			return utils.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		role := constants.Role(claims.Role)
		if !role.IsValid() {
			m.logger.Warn("AuthMiddleware: неизвестная роль в токене", zap.String("role", claims.Role))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequirePermission пропускает только роли, которым выдан пермишен.
// Без аутентификации - 401, с недостаточной ролью - 403.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, err := utils.GetUserIDFromCtx(ctx)
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			role, err := utils.GetUserRoleFromCtx(ctx)
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}

			if !m.gatekeeper.Can(role, permission) {
				m.logger.Warn("Недостаточно прав",
					zap.Uint64("userID", userID),
					zap.String("role", string(role)),
					zap.String("permission", permission),
				)
				allowed := lo.Map(m.gatekeeper.RolesWith(permission), func(r constants.Role, _ int) string { return string(r) })
				msg := fmt.Sprintf("Недостаточно прав: требуется роль %s", strings.Join(allowed, " или "))
				return utils.ErrorResponse(c, apperrors.NewForbiddenError(msg), m.logger)
			}
			return next(c)
		}
	}
}
