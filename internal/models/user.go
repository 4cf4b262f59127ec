package models

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is the full identity record, credential included. It never leaves the
// logic layer as-is; handlers receive a UserView instead.
type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Name           string     `db:"name" json:"name"`
	Website        string     `db:"website" json:"website"`
	PhoneNumber    string     `db:"phone_number" json:"phone_number"`
	Gender         Gender     `db:"gender" json:"gender"`
	Biography      string     `db:"biography" json:"biography"`
	ImageID        string     `db:"image_id" json:"image_id"`
	ImageURL       string     `db:"image_url" json:"image_url"`
	PrivateAccount bool       `db:"private_account" json:"private_account"`
	Enabled        bool       `db:"enabled" json:"-"`
	LastLogin      *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// UserView is the externally visible profile. Email, phone number and last
// login are populated only when the viewer is the account owner.
type UserView struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Name           string     `json:"name,omitempty"`
	Website        string     `json:"website,omitempty"`
	Biography      string     `json:"biography,omitempty"`
	Gender         Gender     `json:"gender,omitempty"`
	ImageID        string     `json:"image_id,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	PrivateAccount bool       `json:"private_account"`
	CreatedAt      time.Time  `json:"created_at"`
	Email          string     `json:"email,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// View projects the record into its public shape. includePrivate adds the
// owner-only fields; the credential is excluded in every case.
func (u *User) View(includePrivate bool) UserView {
	v := UserView{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Website:        u.Website,
		Biography:      u.Biography,
		Gender:         u.Gender,
		ImageID:        u.ImageID,
		ImageURL:       u.ImageURL,
		PrivateAccount: u.PrivateAccount,
		CreatedAt:      u.CreatedAt,
	}

	if includePrivate {
		v.Email = u.Email
		v.PhoneNumber = u.PhoneNumber
		v.LastLogin = u.LastLogin
	}

	return v
}
