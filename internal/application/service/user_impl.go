package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
	"reminderio/internal/domain/repository"
	"reminderio/internal/infrastructure/email"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userService struct {
	userRepo repository.UserRepository
	sender   email.Sender
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, sender email.Sender, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		sender:   sender,
		log:      log,
	}
}

// normalizeEmail lower-cases and trims an address for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateUserID produces a positive, effectively unique user ID.
func generateUserID() int64 {
	return time.Now().UnixMilli() + rand.Int63n(1000)
}

// GetUser finds a user by ID.
func (s *userService) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return user, nil
}

// GetUserByEmail finds a user by normalized email.
func (s *userService) GetUserByEmail(ctx context.Context, emailAddr string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.log.Error("Failed to get user by email", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return user, nil
}

// CreateUser registers a new user with a hashed password.
func (s *userService) CreateUser(ctx context.Context, emailAddr, password, name string) (*entity.User, error) {
	if emailAddr == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", apperrors.ErrValidation)
	}

	normalized := normalizeEmail(emailAddr)
	if _, err := s.userRepo.FindByEmail(ctx, normalized); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("Failed to check for existing user", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", apperrors.ErrInternal, err)
	}

	user := &entity.User{
		ID:           generateUserID(),
		Email:        normalized,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	s.log.Info(fmt.Sprintf("Created user %d", user.ID))
	return user, nil
}

// UpdateProfile changes a user's name and/or email.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*entity.User, error) {
	if req.Name == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: at least one field (name or email) must be provided", apperrors.ErrValidation)
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	emailChanged := false
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		normalized := normalizeEmail(req.Email)
		if normalized != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, normalized)
			if err == nil && existing.ID != userID {
				return nil, apperrors.ErrEmailTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Error("Failed to check email uniqueness", err)
				return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
			}
			user.Email = normalized
			emailChanged = true
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update profile for user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	if emailChanged {
		// Best effort: a verification failure must not fail the update.
		if err := s.sender.VerifyIdentity(ctx, user.Email); err != nil {
			s.log.Error(fmt.Sprintf("Failed to verify updated email identity for user %d", userID), err)
		}
	}

	s.log.Debug(fmt.Sprintf("Updated profile for user %d", userID))
	return user, nil
}
