package service

import (
	"context"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// GetUser finds a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, userID int64) (*entity.User, error)
	// GetUserByEmail finds a user by normalized email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, email, password, name string) (*entity.User, error)
	// UpdateProfile changes a user's name and/or email. The user ID is immutable.
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*entity.User, error)
}
