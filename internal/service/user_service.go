package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resource_booking/internal/model"
	"resource_booking/internal/repository"
	"resource_booking/internal/utils"
)

var ErrUserNotFound = errors.New("user not found")

// UserService provides profile and user administration operations
type UserService interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, req model.UpdateMeRequest) (*model.User, error)

	// Admin methods
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetByID returns a single non-deleted user
func (s *userService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own profile. Email
// uniqueness is enforced excluding the caller; a supplied password is
// re-hashed before storage.
func (s *userService) UpdateProfile(ctx context.Context, userID int, req model.UpdateMeRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != user.Email {
			other, err := s.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			}
			if other != nil && other.ID != userID {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user in repo: %w", err)
	}
	return user, nil
}

// ListUsers returns all non-deleted users, for admins
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser soft-deletes a user. The user's reservations are deliberately
// left in place: the soft-deleted row keeps their user_id reference valid.
func (s *userService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	return nil
}
