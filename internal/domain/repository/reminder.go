package repository

import (
	"context"

	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder data operations.
type ReminderRepository interface {
	// FindByID retrieves a reminder by its ID.
	FindByID(ctx context.Context, id string) (*entity.Reminder, error)
	// FindByUserID retrieves all reminders for a specific user.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Reminder, error)
	// FindByStatus retrieves all reminders in the given status
	// (used for the startup resync pass and reconciliation).
	FindByStatus(ctx context.Context, status constant.ReminderStatus) ([]*entity.Reminder, error)
	// CountByUserID returns the number of reminders a user owns, all statuses included.
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	// Create creates a new reminder.
	Create(ctx context.Context, reminder *entity.Reminder) error
	// Update updates an existing reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error
}
