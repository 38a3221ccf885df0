package services

import (
	"errors"
	"fmt"

	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidSystemRole = errors.New("invalid system role")

// UserService provides the master-gated user administration operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUserInput holds the fields a master may edit on any account.
type UpdateUserInput struct {
	Username string
	Email    string
	Role     models.SystemRole
}

// UpdateUser updates any user's profile and system role.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	if input.Role != models.SystemRoleUser && input.Role != models.SystemRoleMaster {
		return nil, ErrInvalidSystemRole
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	user.Username = input.Username
	user.Email = input.Email
	user.Role = input.Role

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
