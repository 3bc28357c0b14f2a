package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/entity"
	apperrors "reminderio/internal/pkg/errors"
)

// List query defaults, applied when the client omits a parameter.
const (
	defaultPage      = 1
	defaultLimit     = 10
	defaultSortBy    = "reminderDate"
	defaultSortOrder = "desc"
)

var sortableFields = map[string]bool{
	"reminderDate": true,
	"title":        true,
	"status":       true,
	"createdAt":    true,
}

// paginateReminders filters, sorts and slices an in-memory result set. Sorting
// is stable so equal keys keep their store order across pages.
func paginateReminders(reminders []*entity.Reminder, query dto.ListQuery) (*dto.PaginatedReminders, error) {
	if query.Page == 0 {
		query.Page = defaultPage
	}
	if query.Limit == 0 {
		query.Limit = defaultLimit
	}
	if query.SortBy == "" {
		query.SortBy = defaultSortBy
	}
	if query.SortOrder == "" {
		query.SortOrder = defaultSortOrder
	}

	if query.Page < 1 || query.Limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", apperrors.ErrValidation)
	}
	if !sortableFields[query.SortBy] {
		return nil, fmt.Errorf("%w: cannot sort by %q", apperrors.ErrValidation, query.SortBy)
	}
	if query.SortOrder != "asc" && query.SortOrder != "desc" {
		return nil, fmt.Errorf("%w: sortOrder must be asc or desc", apperrors.ErrValidation)
	}

	filtered := reminders
	if query.Status != "" {
		filtered = make([]*entity.Reminder, 0, len(reminders))
		for _, r := range reminders {
			if r.Status.String() == query.Status {
				filtered = append(filtered, r)
			}
		}
	}

	sortReminders(filtered, query.SortBy, query.SortOrder)

	total := len(filtered)
	totalPages := (total + query.Limit - 1) / query.Limit
	start := (query.Page - 1) * query.Limit
	end := start + query.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &dto.PaginatedReminders{
		Data: dto.ToReminderResponseList(filtered[start:end]),
		Pagination: dto.Pagination{
			CurrentPage:     query.Page,
			TotalPages:      totalPages,
			TotalItems:      total,
			ItemsPerPage:    query.Limit,
			HasNextPage:     query.Page < totalPages,
			HasPreviousPage: query.Page > 1 && total > 0,
		},
	}, nil
}

func sortReminders(reminders []*entity.Reminder, sortBy, sortOrder string) {
	less := func(a, b *entity.Reminder) bool {
		switch sortBy {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "status":
			return a.Status.String() < b.Status.String()
		case "createdAt":
			return parseStoredTime(a.CreatedAt).Before(parseStoredTime(b.CreatedAt))
		default:
			return a.ReminderDate < b.ReminderDate
		}
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(reminders[j], reminders[i])
		}
		return less(reminders[i], reminders[j])
	})
}

// parseStoredTime reads a stored RFC 3339 timestamp, treating unparseable
// values as the zero instant so they sort first ascending.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
