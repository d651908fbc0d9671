package auth

import (
	"context"
)

// AuthService defines authentication business logic.
type AuthService interface {
	// Login verifies username/password credentials and issues tokens.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// LoginWithGoogle resolves an account by verified Google email and issues tokens.
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)

	// Logout revokes the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
