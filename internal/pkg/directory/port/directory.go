package directory

import (
	"context"
	"errors"
)

// User carries the public profile fields and notification preferences the
// messaging subsystem consumes from the platform's user directory.
type User struct {
	ID                 string  `db:"id" json:"id"`
	Email              string  `db:"email" json:"-"`
	FirstName          string  `db:"first_name" json:"firstName"`
	LastName           string  `db:"last_name" json:"lastName"`
	ProfilePicture     *string `db:"profile_picture" json:"profilePicture"`
	EmailNotifications bool    `db:"email_notifications" json:"-"`
	NotifyOnMessages   bool    `db:"notify_on_messages" json:"-"`
}

// FullName joins first and last name for display and email templates.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ErrUserNotFound signals a lookup for an unknown user identity.
var ErrUserNotFound = errors.New("directory: user not found")

// Directory is the read-only view of the platform's user store. The messaging
// subsystem never mutates users; profile editing lives elsewhere.
type Directory interface {
	// GetUser returns the user or ErrUserNotFound.
	GetUser(ctx context.Context, id string) (*User, error)

	// GetUsers resolves a batch of IDs. Unknown IDs are simply absent from
	// the result; it is not an error to ask for a user that no longer exists.
	GetUsers(ctx context.Context, ids []string) (map[string]User, error)
}
