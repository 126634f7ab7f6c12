package user

import (
	"context"
)

// Repository resolves users. Both lookups see only live accounts; a
// soft-deleted user is indistinguishable from a missing one. Lookups
// return (nil, nil) when no live account matches.
type Repository interface {
	// Create returns ErrEmailTaken when a live user already holds the email.
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
