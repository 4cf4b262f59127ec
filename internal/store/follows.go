package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/models"
)

// IsFollowing reports whether a follow edge exists from follower to followee.
func (s *Store) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		"SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?"),
		followerID, followeeID)
	return n > 0, err
}

// ToggleFollow adds the edge if absent, removes it if present. The
// read-modify-write pair runs in one transaction; the returned bool is the
// resulting membership.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID, now time.Time) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	err = tx.GetContext(ctx, &n, tx.Rebind(
		"SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?"),
		followerID, followeeID)
	if err != nil {
		return false, err
	}

	following := n == 0
	if following {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)"),
			followerID, followeeID, now)
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM follows WHERE follower_id = ? AND followee_id = ?"),
			followerID, followeeID)
	}
	if err != nil {
		return false, err
	}

	return following, tx.Commit()
}

// ListFollowers returns the users following userID, newest edge first.
// limit <= 0 returns the whole collection.
func (s *Store) ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.User, error) {
	q := `
		SELECT u.* FROM users u
		JOIN follows f ON f.follower_id = u.id
		WHERE f.followee_id = ?
		ORDER BY f.created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, s.db.Rebind(q), args...)
	return users, err
}

// ListFollowings returns the users that userID follows, newest edge first.
func (s *Store) ListFollowings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.User, error) {
	q := `
		SELECT u.* FROM users u
		JOIN follows f ON f.followee_id = u.id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, s.db.Rebind(q), args...)
	return users, err
}

func (s *Store) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		"SELECT COUNT(*) FROM follows WHERE followee_id = ?"), userID)
	return n, err
}

func (s *Store) CountFollowings(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		"SELECT COUNT(*) FROM follows WHERE follower_id = ?"), userID)
	return n, err
}
