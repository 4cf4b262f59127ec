package logic

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giodelabarrera/inskygram/internal/auth"
	"github.com/giodelabarrera/inskygram/internal/media"
	"github.com/giodelabarrera/inskygram/internal/models"
	"github.com/giodelabarrera/inskygram/internal/store"
)

func newTestLogic(t *testing.T) *Logic {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))

	return New(s, media.NewMemory(), auth.NewManager([]byte("test-secret")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func mustRegister(t *testing.T, l *Logic, username string) {
	t.Helper()
	require.NoError(t, l.Register(context.Background(), username, username+"@example.com", "secret"))
}

func mustPost(t *testing.T, l *Logic, username string) uuid.UUID {
	t.Helper()
	id, err := l.CreatePost(context.Background(), username, "photo.jpg", []byte("jpeg bytes"), "", "")
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T {
	return &v
}

func TestRegisterAndAuthenticate(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	pair, err := l.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	view, err := l.RetrieveUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.NotNil(t, view.LastLogin)
}

func TestRegisterValidation(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	err := l.Register(ctx, "", "a@example.com", "secret")
	assert.EqualError(t, err, "invalid username")
	assert.True(t, IsValidation(err))

	err = l.Register(ctx, "alice", "", "secret")
	assert.EqualError(t, err, "invalid email")

	err = l.Register(ctx, "alice", "a@example.com", "")
	assert.EqualError(t, err, "invalid password")
}

func TestRegisterDuplicates(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	err := l.Register(ctx, "alice", "other@example.com", "secret")
	assert.EqualError(t, err, "user with username alice already exists")
	assert.True(t, IsUniqueConstraint(err))

	err = l.Register(ctx, "alice2", "alice@example.com", "secret")
	assert.EqualError(t, err, "user with email alice@example.com already exists")
	assert.True(t, IsUniqueConstraint(err))
}

func TestAuthenticateWrongCredentials(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	_, err := l.Authenticate(ctx, "alice", "wrong")
	assert.EqualError(t, err, "wrong credentials")
	assert.True(t, IsAccessDenied(err))

	// An unknown account fails the same way as a wrong password.
	_, err = l.Authenticate(ctx, "nobody", "secret")
	assert.EqualError(t, err, "wrong credentials")
}

func TestRefreshAccessToken(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	pair, err := l.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)

	access, err := l.RefreshAccessToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = l.RefreshAccessToken(ctx, "garbage")
	assert.EqualError(t, err, "invalid refresh token")
	assert.True(t, IsAccessDenied(err))

	// An access token carries a valid identity but does not match the
	// stored refresh hash.
	_, err = l.RefreshAccessToken(ctx, pair.AccessToken)
	assert.EqualError(t, err, "invalid refresh token")
}

func TestUpdateProfile(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	err := l.UpdateProfile(ctx, "alice", ProfileUpdate{
		Name:      ptr("Alice"),
		Biography: ptr("photographer"),
	})
	require.NoError(t, err)

	view, err := l.RetrieveUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice", view.Name)
	assert.Equal(t, "photographer", view.Biography)
	// An omitted email keeps the stored one.
	assert.Equal(t, "alice@example.com", view.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")

	err := l.UpdateProfile(ctx, "alice", ProfileUpdate{Email: ptr("bob@example.com")})
	assert.EqualError(t, err, "user with email bob@example.com already exists")
	assert.True(t, IsUniqueConstraint(err))

	// Re-submitting your own email is not a conflict.
	err = l.UpdateProfile(ctx, "alice", ProfileUpdate{Email: ptr("alice@example.com")})
	assert.NoError(t, err)
}

func TestUpdateProfileInvalidGender(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	err := l.UpdateProfile(ctx, "alice", ProfileUpdate{Gender: ptr(models.Gender("other"))})
	assert.EqualError(t, err, "invalid gender")
	assert.True(t, IsValidation(err))

	err = l.UpdateProfile(ctx, "alice", ProfileUpdate{Gender: ptr(models.GenderFemale)})
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	err := l.UpdatePassword(ctx, "alice", "wrong", "newsecret")
	assert.EqualError(t, err, "wrong credentials")

	require.NoError(t, l.UpdatePassword(ctx, "alice", "secret", "newsecret"))

	_, err = l.Authenticate(ctx, "alice", "secret")
	assert.EqualError(t, err, "wrong credentials")
	_, err = l.Authenticate(ctx, "alice", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateAvatar(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	require.NoError(t, l.UpdateAvatar(ctx, "alice", "me.jpg", []byte("jpeg bytes")))

	view, err := l.RetrieveUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ImageID)
	assert.NotEmpty(t, view.ImageURL)

	err = l.UpdateAvatar(ctx, "alice", "", []byte("jpeg bytes"))
	assert.EqualError(t, err, "invalid filename")
}

func TestRetrieveUser(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")

	// Self-access includes the owner-only fields.
	view, err := l.RetrieveUser(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", view.Email)

	// Another viewer gets the redacted projection.
	view, err = l.RetrieveUser(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Empty(t, view.Email)

	_, err = l.RetrieveUser(ctx, "alice", "nobody")
	assert.EqualError(t, err, "user does not exist")
	assert.True(t, IsNotFound(err))
}

func TestRetrieveUserStats(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	mustRegister(t, l, "carol")

	require.NoError(t, l.ToggleFollow(ctx, "bob", "alice"))
	require.NoError(t, l.ToggleFollow(ctx, "carol", "alice"))
	require.NoError(t, l.ToggleFollow(ctx, "alice", "bob"))
	mustPost(t, l, "alice")

	stats, err := l.RetrieveUserStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", stats.User.Username)
	assert.Equal(t, 2, stats.Followers)
	assert.Equal(t, 1, stats.Followings)
	assert.Equal(t, 1, stats.Posts)
}

func TestSearch(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "malice")
	mustRegister(t, l, "bob")

	got, err := l.Search(ctx, "lice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "malice", got[1].Username)
	// Search results never carry owner-only fields.
	assert.Empty(t, got[0].Email)

	got, err = l.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestToggleFollow(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")

	require.NoError(t, l.ToggleFollow(ctx, "alice", "bob"))

	followings, err := l.ListUserFollowings(ctx, "alice", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, followings, 1)
	assert.Equal(t, "bob", followings[0].Username)

	followers, err := l.ListUserFollowers(ctx, "bob", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	// A second toggle removes the edge.
	require.NoError(t, l.ToggleFollow(ctx, "alice", "bob"))

	followings, err = l.ListUserFollowings(ctx, "alice", "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, followings)
}

func TestToggleFollowValidation(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	err := l.ToggleFollow(ctx, "", "alice")
	assert.EqualError(t, err, "invalid username")

	err = l.ToggleFollow(ctx, "alice", "")
	assert.EqualError(t, err, "invalid target username")

	err = l.ToggleFollow(ctx, "alice", "alice")
	assert.EqualError(t, err, "can not follow yourself")
	assert.True(t, IsValidation(err))

	err = l.ToggleFollow(ctx, "alice", "nobody")
	assert.EqualError(t, err, "user does not exist")
}
