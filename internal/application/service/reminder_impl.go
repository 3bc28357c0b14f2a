package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
	"reminderio/internal/domain/repository"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	quotaSvc     QuotaService
	syncSvc      ScheduleSyncService
	log          logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(reminderRepo repository.ReminderRepository, quotaSvc QuotaService, syncSvc ScheduleSyncService, log logger.Logger) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		quotaSvc:     quotaSvc,
		syncSvc:      syncSvc,
		log:          log,
	}
}

// nowISO returns the current UTC instant in the stored timestamp format.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// withSchedule pairs the reminder with its trigger. Trigger lookup is best
// effort; a missing or unreadable schedule leaves the field empty.
func (s *reminderService) withSchedule(ctx context.Context, reminder *entity.Reminder) *dto.ReminderWithSchedule {
	out := &dto.ReminderWithSchedule{Reminder: dto.ToReminderResponse(reminder)}
	sched, err := s.syncSvc.GetReminderSchedule(ctx, reminder.ID)
	if err == nil {
		out.Schedule = &dto.ScheduleResponse{
			Name:       sched.Name,
			Expression: sched.Expression,
			State:      string(sched.State),
		}
	}
	return out
}

// findOwned loads a reminder and verifies ownership. A reminder owned by a
// different user is reported as not found.
func (s *reminderService) findOwned(ctx context.Context, userID int64, reminderID string) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get reminder %s", reminderID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if reminder.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return reminder, nil
}

// CreateReminder persists a new scheduled reminder and registers its delivery
// trigger.
func (s *reminderService) CreateReminder(ctx context.Context, userID int64, req dto.CreateReminderRequest) (*dto.ReminderWithSchedule, error) {
	if err := s.quotaSvc.CheckReminderCreation(ctx, userID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if req.ReminderDate <= 0 {
		return nil, fmt.Errorf("%w: reminderDate is required", apperrors.ErrValidation)
	}

	now := nowISO()
	reminder := &entity.Reminder{
		ID:           fmt.Sprintf("reminder_%s", uuid.NewString()),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		ReminderDate: req.ReminderDate,
		Status:       constant.StatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.log.Error("Failed to create reminder", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	// The row stays if the trigger fails; reconciliation reports it later.
	if err := s.syncSvc.CreateReminderSchedule(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Reminder %s persisted without a trigger", reminder.ID), err)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %s for user %d", reminder.ID, userID))
	return s.withSchedule(ctx, reminder), nil
}

// GetReminder retrieves a single reminder owned by the user.
func (s *reminderService) GetReminder(ctx context.Context, userID int64, reminderID string) (*dto.ReminderResponse, error) {
	reminder, err := s.findOwned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReminderResponse(reminder)
	return &resp, nil
}

// ListReminders returns all of the user's reminders, unsorted.
func (s *reminderService) ListReminders(ctx context.Context, userID int64) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return dto.ToReminderResponseList(reminders), nil
}

// ListRemindersPaginated filters, sorts and paginates the user's reminders.
func (s *reminderService) ListRemindersPaginated(ctx context.Context, userID int64, query dto.ListQuery) (*dto.PaginatedReminders, error) {
	reminders, err := s.reminderRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return paginateReminders(reminders, query)
}

// UpdateReminder rewrites a scheduled reminder's fields and its trigger.
// Zero-valued request fields keep the persisted values.
func (s *reminderService) UpdateReminder(ctx context.Context, userID int64, reminderID string, req dto.UpdateReminderRequest) (*dto.ReminderWithSchedule, error) {
	reminder, err := s.findOwned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.Terminal() {
		return nil, fmt.Errorf("%w: reminder is %s", apperrors.ErrTerminalState, reminder.Status)
	}

	if req.Title != "" {
		reminder.Title = req.Title
	}
	if req.Description != "" {
		reminder.Description = req.Description
	}
	if req.ReminderDate > 0 {
		reminder.ReminderDate = req.ReminderDate
	}
	reminder.UpdatedAt = nowISO()

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update reminder %s", reminderID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	if err := s.syncSvc.UpdateReminderSchedule(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Reminder %s updated but its trigger was not", reminderID), err)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Updated reminder %s", reminderID))
	return s.withSchedule(ctx, reminder), nil
}

// CancelReminder moves a scheduled reminder to CANCELLED and disables its
// trigger. The trigger is kept, disabled, for audit.
func (s *reminderService) CancelReminder(ctx context.Context, userID int64, reminderID string) (*dto.ReminderResponse, error) {
	reminder, err := s.findOwned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.Terminal() {
		return nil, fmt.Errorf("%w: reminder is %s", apperrors.ErrTerminalState, reminder.Status)
	}

	reminder.Status = constant.StatusCancelled
	reminder.UpdatedAt = nowISO()
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to cancel reminder %s", reminderID), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	if err := s.syncSvc.DisableReminderSchedule(ctx, reminderID); err != nil {
		s.log.Error(fmt.Sprintf("Reminder %s cancelled but its trigger is still armed", reminderID), err)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Cancelled reminder %s", reminderID))
	resp := dto.ToReminderResponse(reminder)
	return &resp, nil
}

// MarkDelivered moves a reminder to DELIVERED after a successful send.
func (s *reminderService) MarkDelivered(ctx context.Context, reminder *entity.Reminder) error {
	reminder.Status = constant.StatusDelivered
	reminder.UpdatedAt = nowISO()
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to mark reminder %s delivered", reminder.ID), err)
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return nil
}

// FindOrphans reports scheduled reminders whose fire time has passed and
// whose trigger no longer exists. These are rows the scheduler will never
// fire for, left behind by a trigger registration failure or a missed fire.
func (s *reminderService) FindOrphans(ctx context.Context) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindByStatus(ctx, constant.StatusScheduled)
	if err != nil {
		s.log.Error("Failed to load scheduled reminders for reconciliation", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	now := time.Now().UTC()
	orphans := make([]dto.ReminderResponse, 0)
	for _, reminder := range reminders {
		if reminder.FireTime().After(now) {
			continue
		}
		if _, err := s.syncSvc.GetReminderSchedule(ctx, reminder.ID); err == nil {
			continue
		}
		orphans = append(orphans, dto.ToReminderResponse(reminder))
	}
	if len(orphans) > 0 {
		s.log.Warn(fmt.Sprintf("Reconciliation found %d orphaned reminders", len(orphans)))
	}
	return orphans, nil
}
