package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// UpsertRefreshToken stores the current refresh-token hash for a user,
// replacing any previous one (one live refresh token per account).
func (s *Store) UpsertRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO refresh_tokens (user_id, token_hash, expiration_date)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			token_hash = excluded.token_hash,
			expiration_date = excluded.expiration_date`),
		userID, tokenHash, expiresAt)
	return err
}

// GetRefreshTokenHash returns ("", nil) when the user has no stored token.
func (s *Store) GetRefreshTokenHash(ctx context.Context, userID uuid.UUID) (string, error) {
	var hash string
	err := s.db.GetContext(ctx, &hash, s.db.Rebind(
		"SELECT token_hash FROM refresh_tokens WHERE user_id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}
