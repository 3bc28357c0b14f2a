package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
	"reminderio/internal/infrastructure/email"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"
	"reminderio/internal/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userSvc   UserService
	quotaSvc  QuotaService
	sender    email.Sender
	secretKey string
	tokenTTL  time.Duration
	log       logger.Logger
}

// NewAuthService creates a new instance of AuthService implementation.
func NewAuthService(userSvc UserService, quotaSvc QuotaService, sender email.Sender, secretKey string, tokenTTL time.Duration, log logger.Logger) AuthService {
	return &authService{
		userSvc:   userSvc,
		quotaSvc:  quotaSvc,
		sender:    sender,
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a new account and mints a token for it. The user quota is
// checked before any write.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, string, error) {
	if err := s.quotaSvc.CheckUserCreation(ctx); err != nil {
		return nil, "", err
	}

	user, err := s.userSvc.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, "", err
	}

	// Best effort: identity verification failure must not fail registration.
	if err := s.sender.VerifyIdentity(ctx, user.Email); err != nil {
		s.log.Error(fmt.Sprintf("Failed to verify email identity for new user %d", user.ID), err)
	}

	tok, err := token.Generate(user.ID, s.secretKey, s.tokenTTL)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to generate token for user %d", user.ID), err)
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return user, tok, nil
}

// Login verifies credentials and mints a token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*entity.User, string, error) {
	user, err := s.userSvc.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	tok, err := token.Generate(user.ID, s.secretKey, s.tokenTTL)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to generate token for user %d", user.ID), err)
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return user, tok, nil
}
