package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/models"
)

func (s *Store) InsertPost(ctx context.Context, p *models.Post) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO posts (id, user_id, image_id, image_url, caption, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.UserID, p.ImageID, p.ImageURL, p.Caption, p.Location, p.CreatedAt)
	return err
}

// GetPostByID returns (nil, nil) when no such post exists.
func (s *Store) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := s.db.GetContext(ctx, &p,
		s.db.Rebind("SELECT * FROM posts WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CountPostsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		"SELECT COUNT(*) FROM posts WHERE user_id = ?"), userID)
	return n, err
}

// ListPostsByUser returns userID's posts newest first. limit <= 0 returns
// the whole collection.
func (s *Store) ListPostsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Post, error) {
	q := "SELECT * FROM posts WHERE user_id = ? ORDER BY created_at DESC"
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, s.db.Rebind(q), args...)
	return posts, err
}

// ListWallPosts returns userID's own posts unioned with the posts of every
// user they follow, newest first.
func (s *Store) ListWallPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Post, error) {
	q := `
		SELECT * FROM posts
		WHERE user_id = ?
		   OR user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)
		ORDER BY created_at DESC`
	args := []any{userID, userID}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, s.db.Rebind(q), args...)
	return posts, err
}

// ListExplorePosts returns posts whose owner is a public account, newest
// first. The viewer plays no part in the filter.
func (s *Store) ListExplorePosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	q := `
		SELECT p.* FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE NOT u.private_account AND u.enabled
		ORDER BY p.created_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, s.db.Rebind(q), args...)
	return posts, err
}

// ListSavedPosts returns the posts userID bookmarked, newest bookmark first.
func (s *Store) ListSavedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Post, error) {
	q := `
		SELECT p.* FROM posts p
		JOIN saved_posts sp ON sp.post_id = p.id
		WHERE sp.user_id = ?
		ORDER BY sp.created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, s.db.Rebind(q), args...)
	return posts, err
}

// ToggleLike adds a like edge if absent, removes it if present, in one
// transaction. The returned bool is the resulting membership.
func (s *Store) ToggleLike(ctx context.Context, postID, userID uuid.UUID, now time.Time) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	err = tx.GetContext(ctx, &n, tx.Rebind(
		"SELECT COUNT(*) FROM likes WHERE post_id = ? AND user_id = ?"), postID, userID)
	if err != nil {
		return false, err
	}

	liked := n == 0
	if liked {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO likes (post_id, user_id, created_at) VALUES (?, ?, ?)"),
			postID, userID, now)
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM likes WHERE post_id = ? AND user_id = ?"), postID, userID)
	}
	if err != nil {
		return false, err
	}

	return liked, tx.Commit()
}

// ToggleSave adds the post to userID's saved set if absent, removes it if
// present, in one transaction.
func (s *Store) ToggleSave(ctx context.Context, userID, postID uuid.UUID, now time.Time) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	err = tx.GetContext(ctx, &n, tx.Rebind(
		"SELECT COUNT(*) FROM saved_posts WHERE user_id = ? AND post_id = ?"), userID, postID)
	if err != nil {
		return false, err
	}

	saved := n == 0
	if saved {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"INSERT INTO saved_posts (user_id, post_id, created_at) VALUES (?, ?, ?)"),
			userID, postID, now)
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM saved_posts WHERE user_id = ? AND post_id = ?"), userID, postID)
	}
	if err != nil {
		return false, err
	}

	return saved, tx.Commit()
}

func (s *Store) InsertComment(ctx context.Context, c *models.Comment) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO comments (id, post_id, user_id, description, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		c.ID, c.PostID, c.UserID, c.Description, c.CreatedAt)
	return err
}

// ListLikes returns a post's likes in insertion order, with usernames joined.
func (s *Store) ListLikes(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	likes := []models.Like{}
	err := s.db.SelectContext(ctx, &likes, s.db.Rebind(`
		SELECT l.post_id, l.user_id, u.username, l.created_at
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = ?
		ORDER BY l.created_at`), postID)
	return likes, err
}

// ListComments returns a post's comments in insertion order.
func (s *Store) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.db.SelectContext(ctx, &comments, s.db.Rebind(`
		SELECT c.id, c.post_id, c.user_id, u.username, c.description, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at`), postID)
	return comments, err
}
