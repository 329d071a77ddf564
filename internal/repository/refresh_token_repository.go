package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// RefreshTokenRepository persists refresh-token records keyed by token value.
type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token.ID, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetByToken looks a record up by exact token value.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token, user_id, expires_at FROM refresh_tokens WHERE token = $1
	`, value).Scan(&token.ID, &token.Token, &token.UserID, &token.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrRefreshTokenExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &token, nil
}

// Rotate overwrites the record's token value and expiry in place. The old
// value stops resolving the moment this commits.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, token *models.RefreshToken) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET token = $2, expires_at = $3 WHERE id = $1
	`, token.ID, token.Token, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return requireRow(result, "Refresh token")
}

// DeleteAllForUser removes every refresh token owned by the user.
func (r *RefreshTokenRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}
