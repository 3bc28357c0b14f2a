package handler

import (
	"net/http"

	"reminderio/internal/application/dto"
	"reminderio/internal/application/service"
	"reminderio/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService service.AuthService
	log         logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register creates a new account. The token travels in the X-Auth-Token
// response header rather than the body.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	user, tok, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(authTokenHeader, tok)
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.ToUserResponse(user),
	})
}

// Login verifies credentials and returns a fresh token in X-Auth-Token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	user, tok, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(authTokenHeader, tok)
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.ToUserResponse(user),
	})
}
