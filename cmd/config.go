package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort   string
	LogLevel   string
	LogFormat  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	ValkeyAddr string
	NatsURL    string

	OfferTTL         time.Duration
	PendingTimeout   time.Duration
	DispatchLockTTL  time.Duration
	MaxReassignments int

	DispatchSweepSchedule string
	OrderTimeoutSchedule  string
	ShiftWatchdogSchedule string
}

// LoadConfig reads the configuration from environment variables, applying
// defaults for everything but the database credentials.
func LoadConfig() (Config, error) {
	offerTTLSeconds, err := envInt("OFFER_TTL_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}
	pendingTimeoutMinutes, err := envInt("PENDING_TIMEOUT_MINUTES", 15)
	if err != nil {
		return Config{}, err
	}
	lockTTLSeconds, err := envInt("DISPATCH_LOCK_TTL_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	maxReassignments, err := envInt("MAX_REASSIGNMENTS", 3)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		LogLevel:   envString("LOG_LEVEL", "info"),
		LogFormat:  envString("LOG_FORMAT", "json"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),
		ValkeyAddr: envString("VALKEY_ADDR", "localhost:6379"),
		NatsURL:    envString("NATS_URL", "nats://localhost:4222"),

		OfferTTL:         time.Duration(offerTTLSeconds) * time.Second,
		PendingTimeout:   time.Duration(pendingTimeoutMinutes) * time.Minute,
		DispatchLockTTL:  time.Duration(lockTTLSeconds) * time.Second,
		MaxReassignments: maxReassignments,

		DispatchSweepSchedule: envString("DISPATCH_SWEEP_SCHEDULE", "*/5 * * * * *"),
		OrderTimeoutSchedule:  envString("ORDER_TIMEOUT_SCHEDULE", "0 * * * * *"),
		ShiftWatchdogSchedule: envString("SHIFT_WATCHDOG_SCHEDULE", "0 * * * * *"),
	}, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
