package router

import (
	"fmt"
	"net/http"

	"reminderio/internal/interfaces/api/handler"
	"reminderio/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Config holds the dependencies for the router.
type Config struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ReminderHandler *handler.ReminderHandler
	SecretKey       string
	RateLimit       float64
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Auth-Token"},
		ExposeHeaders:    []string{"X-Auth-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	authed := api.Group("", handler.AuthMiddleware(cfg.SecretKey, cfg.Logger))
	authed.GET("/user/profile", cfg.UserHandler.GetProfile)
	authed.PUT("/user/profile", cfg.UserHandler.UpdateProfile)
	authed.POST("/reminder", cfg.ReminderHandler.Create)
	authed.GET("/reminder", cfg.ReminderHandler.List)
	authed.GET("/reminder/:reminderId", cfg.ReminderHandler.Get)
	authed.PUT("/reminder/:reminderId", cfg.ReminderHandler.Update)
	authed.DELETE("/reminder/:reminderId", cfg.ReminderHandler.Cancel)

	internal := e.Group("/internal")
	internal.GET("/reconciliation", cfg.ReminderHandler.Reconcile)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
