// Package auth_repo provides PostgreSQL implementation for auth settings.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bahikhata/internal/domain/auth"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const passwordHashKey = "admin_password_hash"

// SettingsRepo implements auth.SettingsRepository over sys_settings.
type SettingsRepo struct {
	txm *postgres.TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txm *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txm: txm}
}

// GetPasswordHash returns the stored hash, or "" when unset.
func (r *SettingsRepo) GetPasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT v FROM sys_settings WHERE k = $1`, passwordHashKey,
	).Scan(&hash)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return hash, nil
}

// SetPasswordHash stores the hash, replacing any previous one.
func (r *SettingsRepo) SetPasswordHash(ctx context.Context, hash string) error {
	_, err := r.txm.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_settings (k, v)
		VALUES ($1, $2)
		ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v
	`, passwordHashKey, hash)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ auth.SettingsRepository = (*SettingsRepo)(nil)
