package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"gt=0,lte=65535"`
	APIKey      string `validate:"required"`
	ServiceName string
	Version     string
	Environment string
	LogLevel    string
	LogFormat   string

	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBName     string `validate:"required"`

	// Order generation
	HorizonDays int `validate:"gt=0"`
	// Initial-status heuristic for backfilled orders: thresholds (in days
	// behind now) past which a new order counts as delivered or completed.
	// Observed production defaults; kept configurable on purpose.
	StatusDeliveredAfterDays int `validate:"gte=0"`
	StatusCompletedAfterDays int `validate:"gtefield=StatusDeliveredAfterDays"`

	// Monitor lookahead windows
	UrgentWindow   time.Duration `validate:"gt=0"`
	UpcomingWindow time.Duration `validate:"gtfield=UrgentWindow"`

	// Scheduler intervals, one per pipeline responsibility
	GenerateInterval   time.Duration `validate:"gt=0"`
	DeriveInterval     time.Duration `validate:"gt=0"`
	RescheduleInterval time.Duration `validate:"gt=0"`
	SweepInterval      time.Duration `validate:"gt=0"`

	// Reminder recipients for the monitor sweep
	ReminderRecipients []string

	// Recipe catalog seed file, empty disables seeding at startup
	RecipeCatalogPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		ServiceName: getEnv("SERVICE_NAME", "farmops"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "farmops"),

		RecipeCatalogPath: getEnv("RECIPE_CATALOG_PATH", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.HorizonDays, err = getEnvInt("GENERATION_HORIZON_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.StatusDeliveredAfterDays, err = getEnvInt("STATUS_DELIVERED_AFTER_DAYS", 1); err != nil {
		return nil, err
	}
	if cfg.StatusCompletedAfterDays, err = getEnvInt("STATUS_COMPLETED_AFTER_DAYS", 7); err != nil {
		return nil, err
	}
	if cfg.UrgentWindow, err = getEnvDuration("MONITOR_URGENT_WINDOW", 48*time.Hour); err != nil {
		return nil, err
	}
	if cfg.UpcomingWindow, err = getEnvDuration("MONITOR_UPCOMING_WINDOW", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.GenerateInterval, err = getEnvDuration("GENERATE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.DeriveInterval, err = getEnvDuration("DERIVE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RescheduleInterval, err = getEnvDuration("RESCHEDULE_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}

	if recipients := getEnv("REMINDER_RECIPIENTS", ""); recipients != "" {
		for _, r := range strings.Split(recipients, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.ReminderRecipients = append(cfg.ReminderRecipients, r)
			}
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
