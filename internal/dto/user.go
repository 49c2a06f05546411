package dto

import (
	"time"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// UserResponse defines the data returned for a user. The password hash is
// never exposed.
type UserResponse struct {
	UserID     string          `json:"userID"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	IsActive   bool            `json:"isActive"`
	Department string          `json:"department,omitempty"`
	Avatar     string          `json:"avatar,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	Department *string `json:"department"`
	Avatar     *string `json:"avatar"`
	// Role and IsActive are honoured only when the caller is an admin.
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=admin employee"`
	IsActive *bool            `json:"isActive"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	PaginationParams
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsActive:   user.IsActive,
		Department: user.Department,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to UserResponse DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, user := range users {
		res[i] = ToUserResponse(&user)
	}
	return res
}
