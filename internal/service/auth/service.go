package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/qssun/attendance-backend-go/internal/domain/auth"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
	"github.com/qssun/attendance-backend-go/internal/pkg/jwt"
	"github.com/qssun/attendance-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	users  user.UserRepository
	tokens jwt.Service
	google oauth.GoogleService // nil when Google sign-in is disabled
}

// NewAuthService creates a new auth service
func NewAuthService(users user.UserRepository, tokens jwt.Service, google oauth.GoogleService) auth.AuthService {
	return &service{users: users, tokens: tokens, google: google}
}

// Login implements auth.AuthService.
func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// LoginWithGoogle implements auth.AuthService.
func (s *service) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	if s.google == nil {
		return auth.LoginResponse{}, auth.ErrGoogleNotLinked
	}

	token, err := s.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrGoogleNotLinked
	}

	u, err := s.users.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrGoogleNotLinked
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService.
func (s *service) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.tokens.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := s.tokens.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := decoded.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.tokens.RevokeToken(refreshToken)
	return nil
}

func (s *service) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.tokens.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExp, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
		User:                  user.ToResponse(u),
	}, nil
}
