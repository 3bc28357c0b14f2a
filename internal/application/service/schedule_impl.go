package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
	"reminderio/internal/domain/repository"
	"reminderio/internal/infrastructure/scheduler"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"
)

const (
	scheduleNamePrefix = "reminder-schedule-"
	deliveryRetryLimit = 3
	deliveryTargetName = "reminder-delivery"
	scheduleTimeLayout = "2006-01-02T15:04:05"
)

type scheduleSyncService struct {
	client       scheduler.Client
	reminderRepo repository.ReminderRepository
	userRepo     repository.UserRepository
	log          logger.Logger
}

// NewScheduleSyncService creates a new instance of ScheduleSyncService implementation.
func NewScheduleSyncService(client scheduler.Client, reminderRepo repository.ReminderRepository, userRepo repository.UserRepository, log logger.Logger) ScheduleSyncService {
	return &scheduleSyncService{
		client:       client,
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// ScheduleName derives the schedule name owned by a reminder.
func ScheduleName(reminderID string) string {
	return scheduleNamePrefix + reminderID
}

// buildSchedule assembles the full schedule definition for a reminder,
// including the delivery payload handed back when the schedule fires.
func (s *scheduleSyncService) buildSchedule(ctx context.Context, reminder *entity.Reminder) (scheduler.Schedule, error) {
	user, err := s.userRepo.FindByID(ctx, reminder.UserID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load user %d for reminder %s", reminder.UserID, reminder.ID), err)
		return scheduler.Schedule{}, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	fireAt := reminder.FireTime()
	payload := dto.DeliveryPayload{
		ReminderID:         reminder.ID,
		UserID:             reminder.UserID,
		Title:              reminder.Title,
		Description:        reminder.Description,
		UserEmail:          user.Email,
		ScheduledTime:      fireAt.Format(scheduleTimeLayout),
		ScheduledTimestamp: reminder.ReminderDate,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return scheduler.Schedule{}, fmt.Errorf("%w: failed to encode delivery payload: %v", apperrors.ErrInternal, err)
	}

	return scheduler.Schedule{
		Name:        ScheduleName(reminder.ID),
		Expression:  scheduler.AtExpression(fireAt),
		Description: fmt.Sprintf("Reminder: %s", reminder.Title),
		Target: scheduler.Target{
			Name:       deliveryTargetName,
			Payload:    raw,
			RetryLimit: deliveryRetryLimit,
		},
		State: scheduler.StateEnabled,
	}, nil
}

// CreateReminderSchedule registers a one-shot schedule for the reminder.
func (s *scheduleSyncService) CreateReminderSchedule(ctx context.Context, reminder *entity.Reminder) error {
	sched, err := s.buildSchedule(ctx, reminder)
	if err != nil {
		return err
	}
	if err := s.client.Create(ctx, sched); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create schedule for reminder %s", reminder.ID), err)
		return fmt.Errorf("%w: %v", apperrors.ErrScheduler, err)
	}
	return nil
}

// UpdateReminderSchedule rewrites the reminder's schedule in place.
func (s *scheduleSyncService) UpdateReminderSchedule(ctx context.Context, reminder *entity.Reminder) error {
	sched, err := s.buildSchedule(ctx, reminder)
	if err != nil {
		return err
	}
	if err := s.client.Update(ctx, sched); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update schedule for reminder %s", reminder.ID), err)
		return fmt.Errorf("%w: %v", apperrors.ErrScheduler, err)
	}
	return nil
}

// DisableReminderSchedule keeps the schedule but stops it from firing.
func (s *scheduleSyncService) DisableReminderSchedule(ctx context.Context, reminderID string) error {
	name := ScheduleName(reminderID)
	if err := s.client.Disable(ctx, name); err != nil {
		if errors.Is(err, scheduler.ErrScheduleNotFound) {
			s.log.Warn(fmt.Sprintf("Schedule %s already gone, nothing to disable", name))
			return nil
		}
		s.log.Error(fmt.Sprintf("Failed to disable schedule %s", name), err)
		return fmt.Errorf("%w: %v", apperrors.ErrScheduler, err)
	}
	return nil
}

// DeleteReminderSchedule removes the reminder's schedule entirely.
func (s *scheduleSyncService) DeleteReminderSchedule(ctx context.Context, reminderID string) error {
	name := ScheduleName(reminderID)
	if err := s.client.Delete(ctx, name); err != nil {
		if errors.Is(err, scheduler.ErrScheduleNotFound) {
			s.log.Warn(fmt.Sprintf("Schedule %s already gone, nothing to delete", name))
			return nil
		}
		s.log.Error(fmt.Sprintf("Failed to delete schedule %s", name), err)
		return fmt.Errorf("%w: %v", apperrors.ErrScheduler, err)
	}
	return nil
}

// GetReminderSchedule fetches the reminder's schedule if one exists.
func (s *scheduleSyncService) GetReminderSchedule(ctx context.Context, reminderID string) (*scheduler.Schedule, error) {
	sched, err := s.client.Get(ctx, ScheduleName(reminderID))
	if err != nil {
		if errors.Is(err, scheduler.ErrScheduleNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrScheduler, err)
	}
	return sched, nil
}

// ResyncSchedules re-registers schedules for scheduled reminders after a
// restart. Reminders whose fire time has passed are left alone and logged so
// the reconciliation endpoint picks them up.
func (s *scheduleSyncService) ResyncSchedules(ctx context.Context) error {
	reminders, err := s.reminderRepo.FindByStatus(ctx, constant.StatusScheduled)
	if err != nil {
		s.log.Error("Failed to load scheduled reminders for resync", err)
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}

	now := time.Now().UTC()
	restored := 0
	for _, reminder := range reminders {
		if !reminder.FireTime().After(now) {
			s.log.Warn(fmt.Sprintf("Reminder %s is past due with no schedule, leaving for reconciliation", reminder.ID))
			continue
		}
		if _, err := s.client.Get(ctx, ScheduleName(reminder.ID)); err == nil {
			continue
		}
		if err := s.CreateReminderSchedule(ctx, reminder); err != nil {
			s.log.Error(fmt.Sprintf("Failed to restore schedule for reminder %s", reminder.ID), err)
			continue
		}
		restored++
	}
	s.log.Info(fmt.Sprintf("Schedule resync complete, restored %d of %d scheduled reminders", restored, len(reminders)))
	return nil
}
