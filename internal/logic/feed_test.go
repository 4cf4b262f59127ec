package logic

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		limit, page      int
		wantLim, wantOff int
	}{
		{0, 0, 0, 0},
		{0, 5, 0, 0},
		{-1, 2, 0, 0},
		{10, 0, 10, 0},
		{10, 1, 10, 0},
		{10, 3, 10, 20},
		{1, 2, 1, 1},
	}

	for _, tt := range tests {
		lim, off := pageBounds(tt.limit, tt.page)
		assert.Equal(t, tt.wantLim, lim, "limit=%d page=%d", tt.limit, tt.page)
		assert.Equal(t, tt.wantOff, off, "limit=%d page=%d", tt.limit, tt.page)
	}
}

func TestListUserWall(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	mustRegister(t, l, "carol")

	a1 := mustPost(t, l, "alice")
	a2 := mustPost(t, l, "alice")
	b1 := mustPost(t, l, "bob")
	mustPost(t, l, "carol")

	require.NoError(t, l.ToggleFollow(ctx, "bob", "alice"))

	// Own posts plus followed users' posts, newest first. Carol is not
	// followed so her post stays out.
	wall, err := l.ListUserWall(ctx, "bob", 0, 0)
	require.NoError(t, err)
	require.Len(t, wall, 3)
	assert.Equal(t, []uuid.UUID{b1, a2, a1}, []uuid.UUID{wall[0].ID, wall[1].ID, wall[2].ID})

	// Alice follows nobody: her wall is her own posts only.
	wall, err = l.ListUserWall(ctx, "alice", 0, 0)
	require.NoError(t, err)
	assert.Len(t, wall, 2)

	_, err = l.ListUserWall(ctx, "nobody", 0, 0)
	assert.EqualError(t, err, "user does not exist")
}

func TestWallIncludesPrivateFollowed(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	mustPost(t, l, "alice")
	require.NoError(t, l.ToggleFollow(ctx, "bob", "alice"))
	makePrivate(t, l, "alice")

	// A follower keeps seeing a private account's posts on the wall.
	wall, err := l.ListUserWall(ctx, "bob", 0, 0)
	require.NoError(t, err)
	assert.Len(t, wall, 1)
}

func TestListExplorePosts(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	mustPost(t, l, "alice")
	b1 := mustPost(t, l, "bob")

	got, err := l.ListExplorePosts(ctx, Anonymous, 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A private owner's posts drop out of explore for everyone, the
	// viewer's own privacy is irrelevant.
	makePrivate(t, l, "alice")

	got, err = l.ListExplorePosts(ctx, Anonymous, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b1, got[0].ID)

	got, err = l.ListExplorePosts(ctx, "alice", 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListUserPostsPagination(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	first := mustPost(t, l, "alice")
	second := mustPost(t, l, "alice")
	third := mustPost(t, l, "alice")

	all, err := l.ListUserPosts(ctx, "alice", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third, all[0].ID)
	assert.Equal(t, first, all[2].ID)

	// Pages partition the unpaginated order.
	page1, err := l.ListUserPosts(ctx, "alice", "", 2, 1)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, third, page1[0].ID)
	assert.Equal(t, second, page1[1].ID)

	page2, err := l.ListUserPosts(ctx, "alice", "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, first, page2[0].ID)

	// Page zero means the first page.
	page0, err := l.ListUserPosts(ctx, "alice", "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, page1, page0)
}

func TestCreateAndRetrievePost(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")

	id, err := l.CreatePost(ctx, "alice", "photo.jpg", []byte("jpeg bytes"), "sunset", "barcelona")
	require.NoError(t, err)

	p, err := l.RetrievePost(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, "sunset", p.Caption)
	assert.Equal(t, "barcelona", p.Location)
	assert.NotEmpty(t, p.ImageURL)
	require.NotNil(t, p.Owner)
	assert.Equal(t, "alice", p.Owner.Username)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)

	_, err = l.RetrievePost(ctx, uuid.New(), "alice")
	assert.EqualError(t, err, "post does not exist")
	assert.True(t, IsNotFound(err))

	_, err = l.CreatePost(ctx, "alice", "", []byte("jpeg bytes"), "", "")
	assert.EqualError(t, err, "invalid filename")
}

func TestToggleLikeAndSave(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	postID := mustPost(t, l, "alice")

	require.NoError(t, l.ToggleLike(ctx, "bob", postID))

	p, err := l.RetrievePost(ctx, postID, "bob")
	require.NoError(t, err)
	require.Len(t, p.Likes, 1)
	assert.Equal(t, "bob", p.Likes[0].Username)

	// A repeated like removes the edge instead of duplicating it.
	require.NoError(t, l.ToggleLike(ctx, "bob", postID))

	p, err = l.RetrievePost(ctx, postID, "bob")
	require.NoError(t, err)
	assert.Empty(t, p.Likes)

	require.NoError(t, l.ToggleSave(ctx, "bob", postID))
	saved, err := l.ListUserSavedPosts(ctx, "bob", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, postID, saved[0].ID)

	require.NoError(t, l.ToggleSave(ctx, "bob", postID))
	saved, err = l.ListUserSavedPosts(ctx, "bob", "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestAddComment(t *testing.T) {
	l := newTestLogic(t)
	ctx := context.Background()

	mustRegister(t, l, "alice")
	mustRegister(t, l, "bob")
	postID := mustPost(t, l, "alice")

	require.NoError(t, l.AddComment(ctx, "bob", postID, "nice shot"))
	require.NoError(t, l.AddComment(ctx, "alice", postID, "thanks"))

	p, err := l.RetrievePost(ctx, postID, "alice")
	require.NoError(t, err)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, "nice shot", p.Comments[0].Description)
	assert.Equal(t, "bob", p.Comments[0].Username)
	assert.Equal(t, "thanks", p.Comments[1].Description)

	err = l.AddComment(ctx, "bob", postID, "")
	assert.EqualError(t, err, "invalid description")
	assert.True(t, IsValidation(err))
}
