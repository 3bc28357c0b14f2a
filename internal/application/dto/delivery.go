package dto

// DeliveryPayload is the JSON document the schedule engine hands to the
// delivery target at fire time.
type DeliveryPayload struct {
	ReminderID         string `json:"reminderId"`
	UserID             int64  `json:"userId"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	UserEmail          string `json:"userEmail"`
	ScheduledTime      string `json:"scheduledTime"`
	ScheduledTimestamp int64  `json:"scheduledTimestamp"`
}
