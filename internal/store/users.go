package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/models"
)

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, name, website,
			phone_number, gender, biography, image_id, image_url,
			private_account, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Username, u.Email, u.PasswordHash, u.Name, u.Website,
		u.PhoneNumber, u.Gender, u.Biography, u.ImageID, u.ImageURL,
		u.PrivateAccount, u.Enabled, u.CreatedAt)
	return err
}

// GetUserByUsername returns (nil, nil) when no such user exists.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		s.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		s.db.Rebind("SELECT * FROM users WHERE email = ?"), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		s.db.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile overwrites every profile column from u. Field-level
// merge semantics (omitted inputs keep stored values) are the logic
// layer's job; by the time a record reaches here it is complete.
func (s *Store) UpdateProfile(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users
		SET email = ?, name = ?, website = ?, phone_number = ?, gender = ?,
			biography = ?, private_account = ?
		WHERE id = ?`),
		u.Email, u.Name, u.Website, u.PhoneNumber, u.Gender,
		u.Biography, u.PrivateAccount, u.ID)
	return err
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE users SET password_hash = ? WHERE id = ?"), hash, id)
	return err
}

func (s *Store) UpdateImage(ctx context.Context, id uuid.UUID, imageID, imageURL string) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE users SET image_id = ?, image_url = ? WHERE id = ?"),
		imageID, imageURL, id)
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE users SET last_login = ? WHERE id = ?"), at, id)
	return err
}

// SearchUsers returns enabled users whose username contains q, ordered by
// username for a stable result across calls. LIKE is case-insensitive on
// some engines, so the substring match is re-checked case-sensitively here.
func (s *Store) SearchUsers(ctx context.Context, q string) ([]models.User, error) {
	var candidates []models.User
	err := s.db.SelectContext(ctx, &candidates, s.db.Rebind(`
		SELECT * FROM users
		WHERE enabled AND username LIKE '%' || ? || '%'
		ORDER BY username`), q)
	if err != nil {
		return nil, err
	}

	users := candidates[:0]
	for _, u := range candidates {
		if strings.Contains(u.Username, q) {
			users = append(users, u)
		}
	}
	return users, nil
}
