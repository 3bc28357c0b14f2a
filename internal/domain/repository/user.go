package repository

import (
	"context"

	"reminderio/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByEmail retrieves a user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Count returns the total number of registered users.
	Count(ctx context.Context) (int64, error)
	// Create creates a new user.
	Create(ctx context.Context, user *entity.User) error
	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error
}
