package service

import (
	"context"

	"reminderio/internal/application/dto"
)

// DeliveryService defines the interface for handling fired schedules. The
// handler is idempotent: a reminder no longer in SCHEDULED is acknowledged
// without a send, so retries and duplicate fires cannot deliver twice.
type DeliveryService interface {
	// HandleDelivery sends the reminder email and marks the reminder
	// delivered. A nil return acknowledges the fire; an error asks the
	// scheduler to retry.
	HandleDelivery(ctx context.Context, payload dto.DeliveryPayload) error
}
