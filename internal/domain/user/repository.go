package user

import (
	"context"
)

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error

	// List returns all users, optionally restricted to one role.
	List(ctx context.Context, role *Role) ([]User, error)

	// ListIDsByRole returns just the IDs of users holding a role.
	// Used for admin notification fan-out.
	ListIDsByRole(ctx context.Context, role Role) ([]string, error)
}
