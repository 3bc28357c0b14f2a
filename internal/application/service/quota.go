package service

import "context"

// QuotaService defines the capacity checks evaluated before create
// operations. Checks are pure reads and fail closed: a store failure rejects
// the operation rather than letting it through.
type QuotaService interface {
	// CheckUserCreation rejects with ErrCapacity when the user ceiling is reached.
	CheckUserCreation(ctx context.Context) error
	// CheckReminderCreation rejects with ErrCapacity when the per-user
	// reminder ceiling is reached. All statuses count.
	CheckReminderCreation(ctx context.Context, userID int64) error
}
