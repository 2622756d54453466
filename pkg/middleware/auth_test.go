package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-tracker/internal/authz"
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/service"
	"calibration-tracker/pkg/utils"
)

const secret = "test-secret"

func setup() (*echo.Echo, service.JWTService) {
	jwtSvc := service.NewJWTService(secret, time.Hour)
	m := NewAuthMiddleware(jwtSvc, authz.NewGatekeeper(), zap.NewNop())

	e := echo.New()
	handler := func(c echo.Context) error {
		id, _ := utils.GetUserIDFromCtx(c.Request().Context())
		role, _ := utils.GetUserRoleFromCtx(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "role": role})
	}
	e.GET("/me", handler, m.Auth)
	e.GET("/users", handler, m.Auth, m.RequirePermission(authz.UsersView))
	e.GET("/open", handler, m.RequirePermission(authz.UsersView))
	return e, jwtSvc
}

func do(e *echo.Echo, path string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestAuth_TokenHeaders(t *testing.T) {
	e, jwtSvc := setup()
	token, err := jwtSvc.GenerateToken(5, string(constants.RoleManager))
	require.NoError(t, err)

	rec, body := do(e, "/me", map[string]string{TokenHeader: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "Manager", body["role"])

	rec, _ = do(e, "/me", map[string]string{echo.HeaderAuthorization: "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Rejects(t *testing.T) {
	e, _ := setup()
	other := service.NewJWTService("other-secret", time.Hour)
	foreign, _ := other.GenerateToken(5, "Admin")
	expired, _ := service.NewJWTService(secret, -time.Minute).GenerateToken(5, "Admin")
	unknownRole, _ := service.NewJWTService(secret, time.Hour).GenerateToken(5, "Root")

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no token", nil},
		{"malformed bearer", map[string]string{echo.HeaderAuthorization: "Token abc"}},
		{"foreign signature", map[string]string{TokenHeader: foreign}},
		{"expired", map[string]string{TokenHeader: expired}},
		{"unknown role", map[string]string{TokenHeader: unknownRole}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(e, "/me", tt.headers)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, false, body["status"])
		})
	}
}

func TestRequirePermission(t *testing.T) {
	e, jwtSvc := setup()
	userToken, _ := jwtSvc.GenerateToken(3, string(constants.RoleUser))
	managerToken, _ := jwtSvc.GenerateToken(2, string(constants.RoleManager))

	rec, body := do(e, "/users", map[string]string{TokenHeader: userToken})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, body["message"], "Admin")

	rec, _ = do(e, "/users", map[string]string{TokenHeader: managerToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, unauth := do(e, "/open", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEqual(t, body["message"], unauth["message"], "401 and 403 carry distinct messages")
}
