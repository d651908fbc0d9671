package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or malformed token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrGoogleNotLinked     = errors.New("no account is linked to this Google email")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
)
