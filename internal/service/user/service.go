package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qssun/attendance-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo user.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo user.UserRepository) user.UserService {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return user.UserResponse{}, user.ErrUsernameExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := user.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		Department:   req.Department,
		Phone:        req.Phone,
		Email:        req.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

func (s *service) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

func (s *service) List(ctx context.Context, role *user.Role) ([]user.UserResponse, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	return out, nil
}
