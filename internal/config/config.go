package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"4400"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings
	Database DatabaseConfig

	// Per-event label-push toggles
	Triggers TriggerConfig

	// Labeling plugin rules
	Plugins PluginConfig

	// Search index maintenance
	Index IndexConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"reelkeep"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"reelkeep"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// TriggerConfig controls whether a studio's labels are pushed onto scenes for
// a given event. "Labels changed" and "labels should be broadcast" are
// distinct decisions: a disabled toggle suppresses the push even when the
// label set did change.
type TriggerConfig struct {
	// Push labels to scenes matched right after a studio is created
	StudioCreate bool `env:"PLUGIN_TRIGGER_STUDIO_CREATE" envDefault:"true"`

	// Push labels to owned scenes when an update changes the label set
	StudioUpdate bool `env:"PLUGIN_TRIGGER_STUDIO_UPDATE" envDefault:"true"`

	// Push labels to scenes matched by an explicit attach-unmatched call
	StudioFindUnmatched bool `env:"PLUGIN_TRIGGER_STUDIO_FIND_UNMATCHED" envDefault:"true"`
}

// PluginConfig holds labeling-hook settings.
type PluginConfig struct {
	// Path to the YAML rule pack consumed by the labeling hook.
	// Empty yields a pass-through hook; a set path that cannot be
	// loaded fails startup.
	RulesPath string `env:"PLUGIN_RULES_PATH" envDefault:""`
}

// IndexConfig holds search-index maintenance settings.
type IndexConfig struct {
	// Cron schedule (with seconds) for the index reconcile sweep
	SweepSchedule string `env:"INDEX_SWEEP_SCHEDULE" envDefault:"0 */5 * * * *"`

	// Disable the sweep and repair worker (tests, one-off tooling)
	SweepDisabled bool `env:"INDEX_SWEEP_DISABLED" envDefault:"false"`

	// Number of repair jobs claimed per worker pass
	RepairBatchSize int `env:"INDEX_REPAIR_BATCH_SIZE" envDefault:"25"`

	// Polling interval of the repair worker
	RepairInterval time.Duration `env:"INDEX_REPAIR_INTERVAL" envDefault:"15s"`
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
	)

	return cfg, nil
}
