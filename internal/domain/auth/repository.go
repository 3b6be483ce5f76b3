package auth

import "context"

// SettingsRepository stores the admin password hash.
type SettingsRepository interface {
	// GetPasswordHash returns the stored bcrypt hash, or "" when unset.
	GetPasswordHash(ctx context.Context) (string, error)

	// SetPasswordHash stores the bcrypt hash, replacing any previous one.
	SetPasswordHash(ctx context.Context, hash string) error
}
