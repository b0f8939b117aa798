package users

import "context"

// UserRepo is the persisted user store. Lookups of unknown users return an
// error matching internal/errors.ErrUserNotFound; any other error is an I/O
// failure.
type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Upsert(ctx context.Context, user *User) error
}
