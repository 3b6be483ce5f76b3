package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
)

type fakeSettingsRepo struct {
	hash string
}

func (f *fakeSettingsRepo) GetPasswordHash(_ context.Context) (string, error) {
	return f.hash, nil
}

func (f *fakeSettingsRepo) SetPasswordHash(_ context.Context, hash string) error {
	f.hash = hash
	return nil
}

func newTestService(settings *fakeSettingsRepo) *Service {
	jwtService := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "bahikhata",
		AccessTokenTTL: time.Hour,
	})
	return NewService(settings, jwtService, DefaultServiceConfig())
}

func TestEnsureAdminPasswordSeedsDefault(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)

	require.NoError(t, svc.EnsureAdminPassword(ctx))
	require.NotEmpty(t, settings.hash)

	// Default password must now log in.
	_, _, err := svc.Login(ctx, DefaultAdminPassword)
	require.NoError(t, err)

	// A second call must not overwrite the stored hash.
	stored := settings.hash
	require.NoError(t, svc.EnsureAdminPassword(ctx))
	assert.Equal(t, stored, settings.hash)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)
	require.NoError(t, svc.EnsureAdminPassword(ctx))

	_, _, err := svc.Login(ctx, "not-the-password")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLoginIssuesValidToken(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)
	require.NoError(t, svc.EnsureAdminPassword(ctx))

	token, expiresAt, err := svc.Login(ctx, DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, "admin", claims.Subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{})

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	other := NewJWTService(JWTConfig{Secret: "other-secret", Issuer: "bahikhata", AccessTokenTTL: time.Hour})
	token, _, err := other.GenerateAccessToken()
	require.NoError(t, err)

	svc := newTestService(&fakeSettingsRepo{})
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)
	require.NoError(t, svc.EnsureAdminPassword(ctx))

	require.NoError(t, svc.ChangePassword(ctx, DefaultAdminPassword, "much-better-password"))

	// Old password is dead, new one works.
	_, _, err := svc.Login(ctx, DefaultAdminPassword)
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "much-better-password")
	require.NoError(t, err)
}

func TestChangePasswordRejectsShort(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)
	require.NoError(t, svc.EnsureAdminPassword(ctx))

	err := svc.ChangePassword(ctx, DefaultAdminPassword, "short")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettingsRepo{}
	svc := newTestService(settings)
	require.NoError(t, svc.EnsureAdminPassword(ctx))

	err := svc.ChangePassword(ctx, "wrong", "much-better-password")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}
