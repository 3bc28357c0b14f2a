package handler

import (
	"errors"
	"net/http"

	appErrors "reminderio/internal/pkg/errors"

	"github.com/labstack/echo/v4"
)

// errorBody is the uniform error envelope returned by every endpoint.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps an application error to its HTTP status. Internal causes
// are collapsed to a generic message so store and scheduler details never
// leak to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Error: "Reminder not found"})
	case errors.Is(err, appErrors.ErrTerminalState):
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrCapacity):
		return c.JSON(http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrEmailTaken):
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid email or password"})
	case errors.Is(err, appErrors.ErrStore),
		errors.Is(err, appErrors.ErrScheduler),
		errors.Is(err, appErrors.ErrEmail),
		errors.Is(err, appErrors.ErrInternal):
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	default:
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	}
}
