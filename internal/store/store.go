// Package store is the persistence layer: users, follow edges, posts and the
// like/comment/save edges attached to them. Relationship and interaction
// edges are independent rows referencing their parent records, so a single
// row insert or delete covers both directions of an edge atomically.
package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// schema is written portably: it runs unchanged on postgres and sqlite.
// Username and email uniqueness is enforced here in addition to the
// application-level pre-checks that produce the field-named error messages.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	biography TEXT NOT NULL DEFAULT '',
	image_id TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	private_account BOOLEAN NOT NULL DEFAULT FALSE,
	enabled BOOLEAN NOT NULL DEFAULT TRUE,
	last_login TIMESTAMP,
	created_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email);

CREATE TABLE IF NOT EXISTS follows (
	follower_id TEXT NOT NULL,
	followee_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS follows_edge_idx ON follows (follower_id, followee_id);
CREATE INDEX IF NOT EXISTS follows_followee_idx ON follows (followee_id);

CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	image_id TEXT NOT NULL,
	image_url TEXT NOT NULL,
	caption TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS posts_user_idx ON posts (user_id, created_at);

CREATE TABLE IF NOT EXISTS likes (
	post_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS likes_edge_idx ON likes (post_id, user_id);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	post_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS comments_post_idx ON comments (post_id, created_at);

CREATE TABLE IF NOT EXISTS saved_posts (
	user_id TEXT NOT NULL,
	post_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS saved_posts_edge_idx ON saved_posts (user_id, post_id);

CREATE TABLE IF NOT EXISTS refresh_tokens (
	user_id TEXT PRIMARY KEY,
	token_hash TEXT NOT NULL,
	expiration_date TIMESTAMP NOT NULL
);
`

// Migrate creates the schema if it is not present yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}
