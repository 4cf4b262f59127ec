package logic

import (
	"context"

	"github.com/giodelabarrera/inskygram/internal/models"
)

// resource names the protected view in denial messages. The literals are
// part of the observable contract.
type resource string

const (
	resourceProfile    resource = "profile"
	resourcePost       resource = "post"
	resourcePosts      resource = "posts"
	resourceFollowers  resource = "follower users"
	resourceFollowings resource = "following users"
	resourceSavedPosts resource = "saved posts"
)

// authorize decides whether viewer may see a protected view of target.
// Rules in order, first match wins: same account; public target; anonymous
// viewer of a private target is denied; a follower of a private target is
// allowed; everything else is denied.
func (l *Logic) authorize(ctx context.Context, viewer string, target *models.User, kind resource) error {
	if viewer == target.Username {
		return nil
	}
	if !target.PrivateAccount {
		return nil
	}
	if viewer == Anonymous {
		return newError(KindAccessDenied,
			"user not logged in can not see the %s of user %s", kind, target.Username)
	}

	denied := newError(KindAccessDenied,
		"user %s can not see the %s of user %s", viewer, kind, target.Username)

	viewerUser, err := l.store.GetUserByUsername(ctx, viewer)
	if err != nil {
		return err
	}
	if viewerUser == nil {
		return denied
	}

	following, err := l.store.IsFollowing(ctx, viewerUser.ID, target.ID)
	if err != nil {
		return err
	}
	if !following {
		return denied
	}

	return nil
}
