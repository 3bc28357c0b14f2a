package handler

import (
	"net/http"

	"reminderio/internal/application/dto"
	"reminderio/internal/application/service"
	"reminderio/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler handles profile requests for the authenticated user.
type UserHandler struct {
	userService service.UserService
	log         logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": dto.ToUserResponse(user),
	})
}

// UpdateProfile changes the authenticated user's name and/or email.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}
