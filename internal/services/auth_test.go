package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/pkg/config"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
)

func newAuthService(users *fakeUserRepo, cache *fakeCache) AuthServiceInterface {
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}
	return NewAuthService(users, cache, fakeJWT{}, zap.NewNop(), cfg)
}

func TestRegister_AlwaysUserRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, newFakeCache())

	res, err := svc.Register(context.Background(), dto.RegisterDTO{Username: "ann", Email: "Ann@Example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "token-1-User", res.Token)
	assert.Equal(t, constants.RoleUser, res.User.Role)
	assert.Equal(t, "ann@example.com", res.User.Email)

	stored, _ := users.FindUser(context.Background(), 1)
	assert.NotEqual(t, "secret1", stored.Password, "пароль хранится в виде хеша")
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), newFakeCache())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterDTO{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterDTO{Username: "ann", Email: "other@example.com", Password: "secret1"})
	assert.Equal(t, 400, apperrors.StatusCode(err))
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), newFakeCache())
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterDTO{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, dto.LoginDTO{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.User.ID)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_Lockout(t *testing.T) {
	cache := newFakeCache()
	svc := newAuthService(newFakeUserRepo(), cache)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterDTO{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, dto.LoginDTO{Email: "ann@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)

	require.NoError(t, cache.Del(ctx, "lockout:1"))
	_, err = svc.Login(ctx, dto.LoginDTO{Email: "ann@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), newFakeCache())
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterDTO{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ann", me.Username)

	_, err = svc.Me(ctx, 9)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
