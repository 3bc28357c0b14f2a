package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/repository"
	"reminderio/internal/infrastructure/email"
	apperrors "reminderio/internal/pkg/errors"
	"reminderio/internal/pkg/logger"

	"gorm.io/gorm"
)

// deliverySkewTolerance is how late a fire may arrive before it is flagged.
const deliverySkewTolerance = time.Minute

type deliveryService struct {
	reminderRepo repository.ReminderRepository
	reminderSvc  ReminderService
	syncSvc      ScheduleSyncService
	sender       email.Sender
	log          logger.Logger
}

// NewDeliveryService creates a new instance of DeliveryService implementation.
func NewDeliveryService(reminderRepo repository.ReminderRepository, reminderSvc ReminderService, syncSvc ScheduleSyncService, sender email.Sender, log logger.Logger) DeliveryService {
	return &deliveryService{
		reminderRepo: reminderRepo,
		reminderSvc:  reminderSvc,
		syncSvc:      syncSvc,
		sender:       sender,
		log:          log,
	}
}

// HandleDelivery sends the reminder email and marks the reminder delivered.
func (s *deliveryService) HandleDelivery(ctx context.Context, payload dto.DeliveryPayload) error {
	if payload.ReminderID == "" || payload.UserID == 0 || payload.UserEmail == "" {
		return fmt.Errorf("%w: delivery payload is missing reminderId, userId or userEmail", apperrors.ErrValidation)
	}

	reminder, err := s.reminderRepo.FindByID(ctx, payload.ReminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, payload.ReminderID)
		}
		s.log.Error(fmt.Sprintf("Failed to load reminder %s for delivery", payload.ReminderID), err)
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if reminder.UserID != payload.UserID {
		return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, payload.ReminderID)
	}

	// Idempotency gate: anything past SCHEDULED was already handled, so the
	// fire is acknowledged without a send.
	if reminder.Status != constant.StatusScheduled {
		s.log.Info(fmt.Sprintf("Reminder %s is %s, skipping delivery", reminder.ID, reminder.Status))
		return nil
	}

	if skew := time.Since(reminder.FireTime()); skew > deliverySkewTolerance {
		s.log.Warn(fmt.Sprintf("Reminder %s fired %s late", reminder.ID, skew.Truncate(time.Second)))
	}

	subject, body := email.FormatReminder(reminder.Title, reminder.Description)
	if err := s.sender.Send(ctx, payload.UserEmail, subject, body); err != nil {
		s.log.Error(fmt.Sprintf("Failed to send reminder %s to %s", reminder.ID, payload.UserEmail), err)
		return fmt.Errorf("%w: %v", apperrors.ErrEmail, err)
	}

	if err := s.reminderSvc.MarkDelivered(ctx, reminder); err != nil {
		return err
	}

	// Best effort: the schedule has fired and only clutters the registry now.
	if err := s.syncSvc.DeleteReminderSchedule(ctx, reminder.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete fired schedule for reminder %s", reminder.ID), err)
	}

	s.log.Info(fmt.Sprintf("Delivered reminder %s to %s", reminder.ID, payload.UserEmail))
	return nil
}
