package constant

// ReminderStatus defines the lifecycle states of a reminder.
type ReminderStatus string

const (
	// StatusScheduled is the initial state: a delivery is pending.
	StatusScheduled ReminderStatus = "SCHEDULED"
	// StatusCancelled is terminal: the user withdrew the reminder before delivery.
	StatusCancelled ReminderStatus = "CANCELLED"
	// StatusDelivered is terminal: the notification was sent.
	StatusDelivered ReminderStatus = "DELIVERED"
)

// Valid reports whether s is a known status value.
func (s ReminderStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusDelivered:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s ReminderStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusDelivered
}

func (s ReminderStatus) String() string {
	return string(s)
}
