package user

import (
	"context"
)

// UserService manages employee and admin accounts.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, role *Role) ([]UserResponse, error)
}
