package handler

import (
	"net/http"
	"strings"

	"reminderio/internal/pkg/logger"
	"reminderio/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

// Header carrying the API token, mirrored on auth responses.
const authTokenHeader = "X-Auth-Token"

// userIDKey is the echo context key the authenticated user ID is stored under.
const userIDKey = "userId"

// AuthMiddleware validates the request token and stores the caller's user ID
// on the context. Tokens are read from X-Auth-Token or a Bearer Authorization
// header.
func AuthMiddleware(secret string, log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(authTokenHeader)
			if raw == "" {
				auth := c.Request().Header.Get(echo.HeaderAuthorization)
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "Missing authentication token"})
			}

			claims, err := token.Parse(raw, secret)
			if err != nil {
				log.Debug("Rejected request with invalid token")
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid or expired token"})
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// currentUserID reads the authenticated user ID stored by AuthMiddleware.
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}
