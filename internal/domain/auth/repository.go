package auth

import "context"

// UserRepository defines the persistence operations the auth core requires
// from a credential store. Implementations must enforce username uniqueness
// atomically, including under concurrent inserts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
