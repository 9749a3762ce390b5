package dto

import (
	"time"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// UserRegisterRequest payload for self-registration. Role and creation
// time are stamped server-side; client-supplied values are ignored.
type UserRegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserPatchRequest payload for the admin field-patch. Any subset of fields
// may be provided; the set is applied atomically.
type UserPatchRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	IsFraud *bool   `json:"is_fraud"`
}

// RoleResponse reports the resolved role for an email.
type RoleResponse struct {
	Role domain.Role `json:"role"`
}

// UserResponse is the wire representation of a role-store record.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	IsFraud   bool        `json:"is_fraud"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsFraud:   user.IsFraud,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
