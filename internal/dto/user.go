package dto

import (
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
)

// UserDTO is the lightweight user summary embedded in other responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// UserProfileDTO represents a full user in API responses, without credentials
type UserProfileDTO struct {
	ID        uint64            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      models.SystemRole `json:"role"`
	LastLogin *time.Time        `json:"last_login"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserProfileDTO converts a User model to UserProfileDTO
func ToUserProfileDTO(user models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		LastLogin: user.LastLoginAt,
	}
}

// ToUserProfileDTOs converts a slice of users
func ToUserProfileDTOs(users []models.User) []UserProfileDTO {
	dtos := make([]UserProfileDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserProfileDTO(u)
	}
	return dtos
}
