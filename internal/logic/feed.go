package logic

import (
	"context"

	"github.com/giodelabarrera/inskygram/internal/models"
)

// pageBounds turns the optional limit/page pair into a limit/offset pair.
// limit <= 0 means the whole collection; page is 1-indexed and defaults to
// the first page.
func pageBounds(limit, page int) (int, int) {
	if limit <= 0 {
		return 0, 0
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// ListUserPosts returns the target's posts, newest first, after the
// visibility check. An empty target means the viewer's own posts.
func (l *Logic) ListUserPosts(ctx context.Context, viewer, targetUsername string, limit, page int) ([]models.Post, error) {
	target, err := l.resolveTarget(ctx, viewer, targetUsername, resourcePosts)
	if err != nil {
		return nil, err
	}

	lim, off := pageBounds(limit, page)
	return l.store.ListPostsByUser(ctx, target.ID, lim, off)
}

// ListUserFollowers returns the target's followers, newest edge first.
func (l *Logic) ListUserFollowers(ctx context.Context, viewer, targetUsername string, limit, page int) ([]models.UserView, error) {
	target, err := l.resolveTarget(ctx, viewer, targetUsername, resourceFollowers)
	if err != nil {
		return nil, err
	}

	lim, off := pageBounds(limit, page)
	users, err := l.store.ListFollowers(ctx, target.ID, lim, off)
	if err != nil {
		return nil, err
	}
	return userViews(users), nil
}

// ListUserFollowings returns the users the target follows, newest edge first.
func (l *Logic) ListUserFollowings(ctx context.Context, viewer, targetUsername string, limit, page int) ([]models.UserView, error) {
	target, err := l.resolveTarget(ctx, viewer, targetUsername, resourceFollowings)
	if err != nil {
		return nil, err
	}

	lim, off := pageBounds(limit, page)
	users, err := l.store.ListFollowings(ctx, target.ID, lim, off)
	if err != nil {
		return nil, err
	}
	return userViews(users), nil
}

// ListUserSavedPosts returns the target's bookmarked posts, newest bookmark
// first.
func (l *Logic) ListUserSavedPosts(ctx context.Context, viewer, targetUsername string, limit, page int) ([]models.Post, error) {
	target, err := l.resolveTarget(ctx, viewer, targetUsername, resourceSavedPosts)
	if err != nil {
		return nil, err
	}

	lim, off := pageBounds(limit, page)
	return l.store.ListSavedPosts(ctx, target.ID, lim, off)
}

// ListUserWall returns the union of the user's own posts and the posts of
// everyone they follow, newest first. No visibility check is needed: every
// contributor is the user or someone they already follow.
func (l *Logic) ListUserWall(ctx context.Context, username string, limit, page int) ([]models.Post, error) {
	if username == "" {
		return nil, errInvalidUsername
	}

	u, err := l.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	lim, off := pageBounds(limit, page)
	return l.store.ListWallPosts(ctx, u.ID, lim, off)
}

// ListExplorePosts returns all posts owned by public accounts, newest first.
// The viewer's own privacy is irrelevant and anonymous viewers are allowed.
func (l *Logic) ListExplorePosts(ctx context.Context, viewer string, limit, page int) ([]models.Post, error) {
	lim, off := pageBounds(limit, page)
	return l.store.ListExplorePosts(ctx, lim, off)
}

// resolveTarget defaults the target to the viewer, resolves it, and applies
// the visibility policy for the given resource.
func (l *Logic) resolveTarget(ctx context.Context, viewer, targetUsername string, kind resource) (*models.User, error) {
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

	if err := l.authorize(ctx, viewer, target, kind); err != nil {
		return nil, err
	}

	return target, nil
}

func userViews(users []models.User) []models.UserView {
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View(false))
	}
	return views
}
