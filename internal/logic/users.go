package logic

import (
	"context"

	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/models"
)

// Register creates a new public, enabled account. Username is checked for
// uniqueness before email.
func (l *Logic) Register(ctx context.Context, username, email, password string) error {
	if username == "" {
		return errInvalidUsername
	}
	if email == "" {
		return errInvalidEmail
	}
	if password == "" {
		return errInvalidPassword
	}

	existing, err := l.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return newError(KindUniqueConstraint, "user with username %s already exists", username)
	}

	existing, err = l.store.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return newError(KindUniqueConstraint, "user with email %s already exists", email)
	}

	hash, err := l.auth.HashPassword(password)
	if err != nil {
		return err
	}

	u := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		CreatedAt:    l.now(),
	}

	if err := l.store.InsertUser(ctx, u); err != nil {
		return err
	}

	l.log.Info("user registered", "username", username)
	return nil
}

// Authenticate verifies credentials against the stored hash, stamps the last
// login, and returns a fresh token pair.
func (l *Logic) Authenticate(ctx context.Context, username, password string) (TokenPair, error) {
	if username == "" {
		return TokenPair{}, errInvalidUsername
	}
	if password == "" {
		return TokenPair{}, errInvalidPassword
	}

	u, err := l.store.GetUserByUsername(ctx, username)
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil || !u.Enabled || !l.auth.VerifyPassword(password, u.PasswordHash) {
		return TokenPair{}, errBadCredentials
	}

	if err := l.store.UpdateLastLogin(ctx, u.ID, l.now()); err != nil {
		return TokenPair{}, err
	}

	access, err := l.auth.IssueAccessToken(username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := l.auth.IssueRefreshToken(username)
	if err != nil {
		return TokenPair{}, err
	}

	refreshHash, err := l.auth.HashToken(refresh)
	if err != nil {
		return TokenPair{}, err
	}
	expiresAt := l.now().Add(refreshTokenTTL)
	if err := l.store.UpsertRefreshToken(ctx, u.ID, refreshHash, expiresAt); err != nil {
		return TokenPair{}, err
	}

	l.log.Info("user authenticated", "username", username)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
func (l *Logic) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	username, err := l.auth.ParseToken(refreshToken)
	if err != nil {
		return "", &Error{Kind: KindAccessDenied, Message: "invalid refresh token"}
	}

	u, err := l.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !u.Enabled {
		return "", &Error{Kind: KindAccessDenied, Message: "invalid refresh token"}
	}

	storedHash, err := l.store.GetRefreshTokenHash(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if storedHash == "" || !l.auth.VerifyTokenHash(refreshToken, storedHash) {
		return "", &Error{Kind: KindAccessDenied, Message: "invalid refresh token"}
	}

	return l.auth.IssueAccessToken(username)
}

// ProfileUpdate carries optional profile fields. A nil field keeps the
// stored value; a non-nil field overwrites it, empty string included.
type ProfileUpdate struct {
	Email          *string        `json:"email"`
	Name           *string        `json:"name"`
	Website        *string        `json:"website"`
	PhoneNumber    *string        `json:"phone_number"`
	Gender         *models.Gender `json:"gender"`
	Biography      *string        `json:"biography"`
	PrivateAccount *bool          `json:"private_account"`
}

func (l *Logic) UpdateProfile(ctx context.Context, username string, in ProfileUpdate) error {
	if username == "" {
		return errInvalidUsername
	}

	u, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if in.Email != nil {
		other, err := l.store.GetUserByEmail(ctx, *in.Email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != u.ID {
			return newError(KindUniqueConstraint, "user with email %s already exists", *in.Email)
		}
		u.Email = *in.Email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Website != nil {
		u.Website = *in.Website
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Gender != nil {
		if *in.Gender != "" && *in.Gender != models.GenderMale && *in.Gender != models.GenderFemale {
			return &Error{Kind: KindValidation, Message: "invalid gender"}
		}
		u.Gender = *in.Gender
	}
	if in.Biography != nil {
		u.Biography = *in.Biography
	}
	if in.PrivateAccount != nil {
		u.PrivateAccount = *in.PrivateAccount
	}

	return l.store.UpdateProfile(ctx, u)
}

// UpdatePassword overwrites the credential after verifying the old one.
func (l *Logic) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if username == "" {
		return errInvalidUsername
	}
	if oldPassword == "" || newPassword == "" {
		return errInvalidPassword
	}

	u, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if !l.auth.VerifyPassword(oldPassword, u.PasswordHash) {
		return errBadCredentials
	}

	hash, err := l.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return l.store.UpdatePasswordHash(ctx, u.ID, hash)
}

// UpdateAvatar stores the image through the media collaborator and keeps the
// returned reference on the user. Media failures propagate unchanged.
func (l *Logic) UpdateAvatar(ctx context.Context, username, filename string, data []byte) error {
	if username == "" {
		return errInvalidUsername
	}
	if filename == "" {
		return &Error{Kind: KindValidation, Message: "invalid filename"}
	}

	u, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	img, err := l.media.Save(ctx, filename, data)
	if err != nil {
		return err
	}

	return l.store.UpdateImage(ctx, u.ID, img.ID, img.URL)
}

// RetrieveUser resolves the target (defaulting to the viewer), applies the
// visibility policy, and returns the profile. Owner-only fields are included
// only on self-access.
func (l *Logic) RetrieveUser(ctx context.Context, viewer, targetUsername string) (*models.UserView, error) {
	if targetUsername == "" {
		targetUsername = viewer
	}
	if targetUsername == "" {
		return nil, errInvalidUsername
	}

	target, err := l.resolveUser(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if err := l.authorize(ctx, viewer, target, resourceProfile); err != nil {
		return nil, err
	}

	view := target.View(viewer == target.Username)
	return &view, nil
}

// RetrieveUserStats returns follower/following/post counts. Stats are
// ungated: private accounts expose their counts too.
func (l *Logic) RetrieveUserStats(ctx context.Context, username string) (*models.UserStats, error) {
	if username == "" {
		return nil, errInvalidUsername
	}

	u, err := l.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := l.store.CountFollowers(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	followings, err := l.store.CountFollowings(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	posts, err := l.store.CountPostsByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		User:       u.View(false),
		Followers:  followers,
		Followings: followings,
		Posts:      posts,
	}, nil
}

// Search returns enabled users whose username contains q, case-sensitively.
// Only the username is matched.
func (l *Logic) Search(ctx context.Context, q string) ([]models.UserView, error) {
	users, err := l.store.SearchUsers(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View(false))
	}
	return views, nil
}

// ToggleFollow follows the target if not currently following, unfollows
// otherwise. Callers needing the resulting state re-query.
func (l *Logic) ToggleFollow(ctx context.Context, username, targetUsername string) error {
	if username == "" {
		return errInvalidUsername
	}
	if targetUsername == "" {
		return errInvalidTargetUsername
	}
	if username == targetUsername {
		return errSelfFollow
	}

	follower, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	target, err := l.resolveUser(ctx, targetUsername)
	if err != nil {
		return err
	}

	following, err := l.store.ToggleFollow(ctx, follower.ID, target.ID, l.now())
	if err != nil {
		return err
	}

	l.log.Info("follow toggled",
		"follower", username, "target", targetUsername, "following", following)
	return nil
}
