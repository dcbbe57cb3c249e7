package dto

import (
	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     *string `json:"name"`
	Role     string  `json:"role" binding:"required,oneof=ADMIN MANAGER USER"`
	Password string  `json:"password" binding:"required,min=8"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

type UserResponse struct {
	UserID int64   `json:"userID"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	Role   string  `json:"role"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
