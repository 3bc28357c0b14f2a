package dto

import (
	"reminderio/internal/domain/entity"
)

// ReminderResponse is the DTO for sending reminder information to the client.
type ReminderResponse struct {
	ID           string `json:"id"`
	UserID       int64  `json:"userId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate int64  `json:"reminderDate"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Description:  r.Description,
		ReminderDate: r.ReminderDate,
		Status:       r.Status.String(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to DTOs.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}

// ScheduleResponse describes the trigger bound to a reminder.
type ScheduleResponse struct {
	Name       string `json:"name"`
	Expression string `json:"scheduleExpression"`
	State      string `json:"state"`
}

// ReminderWithSchedule pairs a reminder with its trigger, returned by the
// create and update paths.
type ReminderWithSchedule struct {
	Reminder ReminderResponse  `json:"reminder"`
	Schedule *ScheduleResponse `json:"schedule,omitempty"`
}

// CreateReminderRequest is the DTO for creating a new reminder.
// ReminderDate is the fire instant in epoch milliseconds.
type CreateReminderRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate int64  `json:"reminderDate"`
}

// UpdateReminderRequest is the DTO for updating a reminder. Zero-valued
// fields keep the persisted value; the owner and status are not settable.
type UpdateReminderRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate int64  `json:"reminderDate"`
}

// ListQuery carries the optional pagination, filter and sort parameters of
// the list endpoint.
type ListQuery struct {
	Page      int
	Limit     int
	Status    string
	SortBy    string
	SortOrder string
}

// Pagination describes the slice of the result set being returned.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// PaginatedReminders is the paginated list response.
type PaginatedReminders struct {
	Data       []ReminderResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
