package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string

	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int

	Database DatabaseConfig
	Log      LogConfig
	Booking  BookingConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level      string
	FilePath   string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// BookingConfig holds the scheduling compatibility knobs.
type BookingConfig struct {
	// SlotConflictMode is "overlap" (default) or "exact". Exact matches the
	// legacy start-time-only conflict behavior.
	SlotConflictMode string
	// StrictStatusTransitions turns on the status transition table. Off by
	// default to match legacy behavior.
	StrictStatusTransitions bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "medibook"),
	}

	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	logConfig := LogConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		FilePath:   getEnv("LOG_FILE", ""),
		MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
	}

	bookingConfig := BookingConfig{
		SlotConflictMode:        getEnv("SLOT_CONFLICT_MODE", "overlap"),
		StrictStatusTransitions: getEnvBool("STRICT_STATUS_TRANSITIONS", false),
	}

	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		Database:                  dbConfig,
		Log:                       logConfig,
		Booking:                   bookingConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
