package service

import (
	"context"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
)

// ReminderService defines the interface for the reminder lifecycle. All
// lookups are scoped to the requesting user; a reminder owned by someone else
// is indistinguishable from one that does not exist.
type ReminderService interface {
	// CreateReminder persists a new scheduled reminder and registers its
	// delivery trigger. The row is written before the trigger; a trigger
	// failure surfaces as an error with the row left in place.
	CreateReminder(ctx context.Context, userID int64, req dto.CreateReminderRequest) (*dto.ReminderWithSchedule, error)
	// GetReminder retrieves a single reminder owned by the user.
	GetReminder(ctx context.Context, userID int64, reminderID string) (*dto.ReminderResponse, error)
	// ListReminders returns all of the user's reminders, unsorted.
	ListReminders(ctx context.Context, userID int64) ([]dto.ReminderResponse, error)
	// ListRemindersPaginated filters, sorts and paginates the user's reminders.
	ListRemindersPaginated(ctx context.Context, userID int64, query dto.ListQuery) (*dto.PaginatedReminders, error)
	// UpdateReminder rewrites a scheduled reminder's fields and its trigger.
	UpdateReminder(ctx context.Context, userID int64, reminderID string, req dto.UpdateReminderRequest) (*dto.ReminderWithSchedule, error)
	// CancelReminder moves a scheduled reminder to CANCELLED and disables
	// its trigger.
	CancelReminder(ctx context.Context, userID int64, reminderID string) (*dto.ReminderResponse, error)
	// MarkDelivered moves a reminder to DELIVERED after a successful send.
	MarkDelivered(ctx context.Context, reminder *entity.Reminder) error
	// FindOrphans reports scheduled reminders whose fire time has passed and
	// whose trigger no longer exists.
	FindOrphans(ctx context.Context) ([]dto.ReminderResponse, error)
}
