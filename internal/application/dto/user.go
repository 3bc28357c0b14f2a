package dto

import "reminderio/internal/domain/entity"

// UserResponse is the DTO for sending user information to the client.
// The password hash is never exposed.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUserResponse converts an entity.User to a UserResponse DTO.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// UpdateProfileRequest is the DTO for updating a user's profile.
// At least one field must be provided.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
