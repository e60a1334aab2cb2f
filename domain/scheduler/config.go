package scheduler

import (
	"os"
	"strconv"
	"time"
)

// Config holds scheduler configuration
type Config struct {
	// Enabled controls whether the scheduler runs
	Enabled bool

	// StaleRepairInterval is the interval for recovering stuck index
	// repair jobs
	StaleRepairInterval time.Duration

	// StaleRepairMinutes is how long a repair job can be processing before
	// it's considered stale
	StaleRepairMinutes int

	// StaleRepairSchedule is a cron override for the stale repair recovery
	// (6 fields, with seconds); empty means use the interval
	StaleRepairSchedule string
}

// NewConfig creates a new Config from environment variables
func NewConfig() *Config {
	return &Config{
		Enabled:             getEnvBool("SCHEDULER_ENABLED", true),
		StaleRepairInterval: getEnvDuration("STALE_REPAIR_CLEANUP_INTERVAL_MS", 10*time.Minute),
		StaleRepairMinutes:  getEnvInt("STALE_REPAIR_MINUTES", 30),
		StaleRepairSchedule: getEnvString("STALE_REPAIR_CLEANUP_SCHEDULE", ""),
	}
}

// getEnvBool returns a boolean from an environment variable
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvInt returns an integer from an environment variable
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration returns a duration from an environment variable (in milliseconds)
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if ms, err := strconv.Atoi(val); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}

// getEnvString returns a string from an environment variable
func getEnvString(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
