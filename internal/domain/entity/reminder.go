package entity

import (
	"time"

	"reminderio/internal/domain/constant"
)

// Reminder represents a single future notification owned by a user.
// CreatedAt and UpdatedAt hold ISO-8601 instants; ReminderDate is the fire
// instant in epoch milliseconds.
type Reminder struct {
	ID           string                  `gorm:"column:id;primaryKey"`
	UserID       int64                   `gorm:"column:user_id;index"`
	Title        string                  `gorm:"column:title;type:text"`
	Description  string                  `gorm:"column:description;type:text"`
	ReminderDate int64                   `gorm:"column:reminder_date"`
	Status       constant.ReminderStatus `gorm:"column:status;index"`
	CreatedAt    string                  `gorm:"column:created_at"`
	UpdatedAt    string                  `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}

// Terminal reports whether the reminder permits no further transitions.
func (r *Reminder) Terminal() bool {
	return r.Status.Terminal()
}

// FireTime returns the scheduled fire instant in UTC.
func (r *Reminder) FireTime() time.Time {
	return time.UnixMilli(r.ReminderDate).UTC()
}
