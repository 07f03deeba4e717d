package dto

import "github.com/spec-kit/storefront-service/internal/domain"

// CreateUserRequest payload for new users.
type CreateUserRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserResponse is the public view of an identity. The hash never leaves the service.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
