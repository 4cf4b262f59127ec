package logic

import (
	"context"

	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/models"
)

// CreatePost stores the image through the media collaborator and creates a
// post owned by username. Returns the new post's id.
func (l *Logic) CreatePost(ctx context.Context, username, filename string, data []byte, caption, location string) (uuid.UUID, error) {
	if username == "" {
		return uuid.Nil, errInvalidUsername
	}
	if filename == "" {
		return uuid.Nil, &Error{Kind: KindValidation, Message: "invalid filename"}
	}

	owner, err := l.resolveUser(ctx, username)
	if err != nil {
		return uuid.Nil, err
	}

	img, err := l.media.Save(ctx, filename, data)
	if err != nil {
		return uuid.Nil, err
	}

	p := &models.Post{
		ID:        uuid.New(),
		UserID:    owner.ID,
		ImageID:   img.ID,
		ImageURL:  img.URL,
		Caption:   caption,
		Location:  location,
		CreatedAt: l.now(),
	}

	if err := l.store.InsertPost(ctx, p); err != nil {
		return uuid.Nil, err
	}

	l.log.Info("post created", "username", username, "post_id", p.ID)
	return p.ID, nil
}

// RetrievePost returns the post with its owner, likes and comments
// populated. Visibility is governed by the owner's privacy, not the
// viewer's.
func (l *Logic) RetrievePost(ctx context.Context, postID uuid.UUID, viewer string) (*models.Post, error) {
	p, owner, err := l.resolvePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := l.authorize(ctx, viewer, owner, resourcePost); err != nil {
		return nil, err
	}

	ownerView := owner.View(viewer == owner.Username)
	p.Owner = &ownerView

	if p.Likes, err = l.store.ListLikes(ctx, postID); err != nil {
		return nil, err
	}
	if p.Comments, err = l.store.ListComments(ctx, postID); err != nil {
		return nil, err
	}

	return p, nil
}

// ToggleLike adds the viewer's like if absent, removes it if present.
func (l *Logic) ToggleLike(ctx context.Context, username string, postID uuid.UUID) error {
	if username == "" {
		return errInvalidUsername
	}

	viewer, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	p, owner, err := l.resolvePost(ctx, postID)
	if err != nil {
		return err
	}

	if err := l.authorize(ctx, username, owner, resourcePost); err != nil {
		return err
	}

	liked, err := l.store.ToggleLike(ctx, p.ID, viewer.ID, l.now())
	if err != nil {
		return err
	}

	l.log.Info("like toggled", "username", username, "post_id", postID, "liked", liked)
	return nil
}

// AddComment appends a comment entry. Comments are never removable here.
func (l *Logic) AddComment(ctx context.Context, username string, postID uuid.UUID, description string) error {
	if username == "" {
		return errInvalidUsername
	}
	if description == "" {
		return &Error{Kind: KindValidation, Message: "invalid description"}
	}

	viewer, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	p, owner, err := l.resolvePost(ctx, postID)
	if err != nil {
		return err
	}

	if err := l.authorize(ctx, username, owner, resourcePost); err != nil {
		return err
	}

	return l.store.InsertComment(ctx, &models.Comment{
		ID:          uuid.New(),
		PostID:      p.ID,
		UserID:      viewer.ID,
		Description: description,
		CreatedAt:   l.now(),
	})
}

// ToggleSave toggles the post's membership in the viewer's saved set.
func (l *Logic) ToggleSave(ctx context.Context, username string, postID uuid.UUID) error {
	if username == "" {
		return errInvalidUsername
	}

	viewer, err := l.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	p, owner, err := l.resolvePost(ctx, postID)
	if err != nil {
		return err
	}

	if err := l.authorize(ctx, username, owner, resourcePost); err != nil {
		return err
	}

	saved, err := l.store.ToggleSave(ctx, viewer.ID, p.ID, l.now())
	if err != nil {
		return err
	}

	l.log.Info("save toggled", "username", username, "post_id", postID, "saved", saved)
	return nil
}

// resolvePost loads a post and its owner, failing with not-found errors for
// either. A post without a live owner is treated as absent owner data, not
// tolerated silently.
func (l *Logic) resolvePost(ctx context.Context, postID uuid.UUID) (*models.Post, *models.User, error) {
	p, err := l.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, errPostNotFound
	}

	owner, err := l.store.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, errUserNotFound
	}

	return p, owner, nil
}
