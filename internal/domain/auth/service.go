package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bahikhata/internal/core/apperror"
	"bahikhata/pkg/logger"
)

// DefaultAdminPassword seeds the settings row on first start.
// Change it after first login.
const DefaultAdminPassword = "admin123"

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides admin authentication.
type Service struct {
	settings SettingsRepository
	jwt      *JWTService
	config   ServiceConfig
}

// NewService creates a new auth service.
func NewService(settings SettingsRepository, jwt *JWTService, config ServiceConfig) *Service {
	return &Service{
		settings: settings,
		jwt:      jwt,
		config:   config,
	}
}

// EnsureAdminPassword seeds the default password hash when none is stored.
// Called once at startup.
func (s *Service) EnsureAdminPassword(ctx context.Context) error {
	hash, err := s.settings.GetPasswordHash(ctx)
	if err != nil {
		return fmt.Errorf("get password hash: %w", err)
	}
	if hash != "" {
		return nil
	}

	seeded, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if err := s.settings.SetPasswordHash(ctx, string(seeded)); err != nil {
		return fmt.Errorf("store default password: %w", err)
	}

	logger.Warn(ctx, "seeded default admin password, change it after first login")
	return nil
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, password string) (string, time.Time, error) {
	hash, err := s.settings.GetPasswordHash(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get password hash: %w", err)
	}
	if hash == "" {
		return "", time.Time{}, apperror.NewUnauthorized("admin password is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", time.Time{}, apperror.NewUnauthorized("incorrect password")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "admin logged in")
	return token, expiresAt, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	hash, err := s.settings.GetPasswordHash(ctx)
	if err != nil {
		return fmt.Errorf("get password hash: %w", err)
	}
	if hash == "" {
		return apperror.NewUnauthorized("admin password is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	if len(next) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.settings.SetPasswordHash(ctx, string(newHash)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	logger.Info(ctx, "admin password changed")
	return nil
}

// ValidateToken validates a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.jwt.ValidateToken(tokenString)
}
