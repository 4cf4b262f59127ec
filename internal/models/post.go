package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ImageID   string    `db:"image_id" json:"image_id"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Caption   string    `db:"caption" json:"caption,omitempty"`
	Location  string    `db:"location" json:"location,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Populated on single-post retrieval only, not on list queries.
	Owner    *UserView `db:"-" json:"owner,omitempty"`
	Likes    []Like    `db:"-" json:"likes,omitempty"`
	Comments []Comment `db:"-" json:"comments,omitempty"`
}

// Like is a (post, user) edge. The pair is unique: a second like by the same
// user removes the edge instead of duplicating it.
type Like struct {
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Comment entries are append-only; listing order is insertion order.
type Comment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PostID      uuid.UUID `db:"post_id" json:"post_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type UserStats struct {
	User       UserView `json:"user"`
	Followers  int      `json:"followers"`
	Followings int      `json:"followings"`
	Posts      int      `json:"posts"`
}
