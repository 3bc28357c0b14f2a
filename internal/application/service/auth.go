package service

import (
	"context"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
)

// AuthService defines the interface for registration and login.
type AuthService interface {
	// Register creates a new account and mints a token for it.
	Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, string, error)
	// Login verifies credentials and mints a token.
	Login(ctx context.Context, req dto.LoginRequest) (*entity.User, string, error)
}
