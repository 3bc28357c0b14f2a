package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries all runtime settings, populated from the environment.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	DBPath   string `envconfig:"DB_PATH" default:"reminder.db"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	SecretKey string        `envconfig:"SECRET_KEY" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	FromEmail    string `envconfig:"FROM_EMAIL" default:"noreply@reminderio.local"`

	MaxUsers            int `envconfig:"MAX_USERS" default:"5"`
	MaxRemindersPerUser int `envconfig:"MAX_REMINDERS_PER_USER" default:"10"`

	RateLimit float64 `envconfig:"RATE_LIMIT" default:"20"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
