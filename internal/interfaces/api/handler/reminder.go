package handler

import (
	"net/http"
	"strconv"

	"reminderio/internal/application/dto"
	"reminderio/internal/application/service"
	"reminderio/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReminderHandler handles reminder CRUD requests for the authenticated user.
type ReminderHandler struct {
	reminderService service.ReminderService
	log             logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		log:             log,
	}
}

// Create registers a new reminder and its delivery trigger.
func (h *ReminderHandler) Create(c echo.Context) error {
	var req dto.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	result, err := h.reminderService.CreateReminder(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// List returns the user's reminders. With no query parameters at all it
// returns the plain unpaginated list; any parameter switches to the
// filtered, sorted, paginated form.
func (h *ReminderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	if len(c.QueryParams()) == 0 {
		reminders, err := h.reminderService.ListReminders(ctx, userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"reminders": reminders,
		})
	}

	query := dto.ListQuery{
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	var err error
	if query.Page, err = queryInt(c, "page"); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "page must be an integer"})
	}
	if query.Limit, err = queryInt(c, "limit"); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "limit must be an integer"})
	}

	result, err := h.reminderService.ListRemindersPaginated(ctx, userID, query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single reminder owned by the user.
func (h *ReminderHandler) Get(c echo.Context) error {
	result, err := h.reminderService.GetReminder(c.Request().Context(), currentUserID(c), c.Param("reminderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Update rewrites a scheduled reminder and its trigger.
func (h *ReminderHandler) Update(c echo.Context) error {
	var req dto.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	result, err := h.reminderService.UpdateReminder(c.Request().Context(), currentUserID(c), c.Param("reminderId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Cancel moves a scheduled reminder to CANCELLED.
func (h *ReminderHandler) Cancel(c echo.Context) error {
	result, err := h.reminderService.CancelReminder(c.Request().Context(), currentUserID(c), c.Param("reminderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Reminder cancelled successfully",
		"reminder": result,
	})
}

// Reconcile reports scheduled reminders that lost their trigger. Exposed on
// the internal route group, not the public API.
func (h *ReminderHandler) Reconcile(c echo.Context) error {
	orphans, err := h.reminderService.FindOrphans(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orphans": orphans,
		"count":   len(orphans),
	})
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
