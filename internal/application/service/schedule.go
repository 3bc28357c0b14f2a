package service

import (
	"context"

	"reminderio/internal/domain/entity"
	"reminderio/internal/infrastructure/scheduler"
)

// ScheduleSyncService keeps the scheduler's view of reminders consistent with
// the persisted state. Each scheduled reminder owns exactly one named
// schedule; the schedule name is derived from the reminder ID.
type ScheduleSyncService interface {
	// CreateReminderSchedule registers a one-shot schedule for the reminder.
	CreateReminderSchedule(ctx context.Context, reminder *entity.Reminder) error
	// UpdateReminderSchedule rewrites the reminder's schedule in place.
	UpdateReminderSchedule(ctx context.Context, reminder *entity.Reminder) error
	// DisableReminderSchedule keeps the schedule but stops it from firing.
	DisableReminderSchedule(ctx context.Context, reminderID string) error
	// DeleteReminderSchedule removes the reminder's schedule entirely.
	DeleteReminderSchedule(ctx context.Context, reminderID string) error
	// GetReminderSchedule fetches the reminder's schedule if one exists.
	GetReminderSchedule(ctx context.Context, reminderID string) (*scheduler.Schedule, error)
	// ResyncSchedules re-registers schedules for scheduled reminders after a
	// restart and reports ones whose fire time has already passed.
	ResyncSchedules(ctx context.Context) error
}
