package service

import (
	"context"
	"fmt"

	"reminderio/internal/domain/repository"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"
)

type quotaService struct {
	userRepo     repository.UserRepository
	reminderRepo repository.ReminderRepository
	maxUsers     int64
	maxPerUser   int64
	log          logger.Logger
}

// NewQuotaService creates a new instance of QuotaService implementation.
func NewQuotaService(userRepo repository.UserRepository, reminderRepo repository.ReminderRepository, maxUsers, maxRemindersPerUser int, log logger.Logger) QuotaService {
	return &quotaService{
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		maxUsers:     int64(maxUsers),
		maxPerUser:   int64(maxRemindersPerUser),
		log:          log,
	}
}

// CheckUserCreation rejects registration when the system user ceiling is reached.
func (s *quotaService) CheckUserCreation(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		s.log.Error("Failed to check user creation limit", err)
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if count >= s.maxUsers {
		return fmt.Errorf("%w: maximum %d users allowed", apperrors.ErrCapacity, s.maxUsers)
	}
	return nil
}

// CheckReminderCreation rejects creation when the user's reminder ceiling is reached.
func (s *quotaService) CheckReminderCreation(ctx context.Context, userID int64) error {
	count, err := s.reminderRepo.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to check reminder creation limit for user %d", userID), err)
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if count >= s.maxPerUser {
		return fmt.Errorf("%w: maximum %d reminders allowed per user", apperrors.ErrCapacity, s.maxPerUser)
	}
	return nil
}
