// Package logic is the business core of the photo-sharing service: account
// identity, the follow graph, posts with likes/comments/saves, and the
// visibility policy that gates all of it. It is the single surface the
// transport layer calls.
//
// Operations are short-lived, independently invoked requests. Toggle
// operations are read-modify-write inside a storage transaction; concurrent
// toggles on the same pair resolve last-writer-wins at the storage layer.
// Errors are never retried here; every failure surfaces to the caller
// unchanged.
package logic

import (
	"context"
	"log/slog"
	"time"

	"github.com/giodelabarrera/inskygram/internal/media"
	"github.com/giodelabarrera/inskygram/internal/models"
	"github.com/giodelabarrera/inskygram/internal/store"
)

// Anonymous is the viewer identity of an unauthenticated caller.
const Anonymous = ""

// refreshTokenTTL bounds how long a stored refresh token stays exchangeable.
const refreshTokenTTL = 14 * 24 * time.Hour

// Authenticator hashes credentials and mints identity tokens.
// Implemented by auth.Manager.
type Authenticator interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, storedHash string) bool
	IssueAccessToken(username string) (string, error)
	IssueRefreshToken(username string) (string, error)
	ParseToken(token string) (string, error)
	HashToken(token string) (string, error)
	VerifyTokenHash(token, storedHash string) bool
}

// TokenPair is the result of a successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Logic struct {
	store *store.Store
	media media.Store
	auth  Authenticator
	log   *slog.Logger
}

type Option func(*Logic)

func WithLogger(log *slog.Logger) Option {
	return func(l *Logic) {
		l.log = log
	}
}

func New(s *store.Store, m media.Store, a Authenticator, opts ...Option) *Logic {
	l := &Logic{
		store: s,
		media: m,
		auth:  a,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logic) now() time.Time {
	return time.Now().UTC()
}

// resolveUser loads a user by username or fails with the not-found error.
func (l *Logic) resolveUser(ctx context.Context, username string) (*models.User, error) {
	u, err := l.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}
	return u, nil
}
