package sqlite

import (
	"context"
	"fmt"

	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
	"reminderio/internal/domain/repository"

	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id string) (*entity.Reminder, error) {
	var reminder entity.Reminder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to find reminder by id %s: %w", id, err)
	}
	return &reminder, nil
}

// FindByUserID retrieves all reminders for a specific user.
func (r *reminderRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to find reminders by user_id %d: %w", userID, err)
	}
	return reminders, nil
}

// FindByStatus retrieves all reminders in the given status.
func (r *reminderRepository) FindByStatus(ctx context.Context, status constant.ReminderStatus) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to find reminders by status %s: %w", status, err)
	}
	return reminders, nil
}

// CountByUserID returns the number of reminders a user owns, all statuses included.
func (r *reminderRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Reminder{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reminders for user %d: %w", userID, err)
	}
	return count, nil
}

// Create creates a new reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("failed to create reminder for user %d: %w", reminder.UserID, err)
	}
	return nil
}

// Update updates an existing reminder.
func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("failed to update reminder %s: %w", reminder.ID, err)
	}
	return nil
}
