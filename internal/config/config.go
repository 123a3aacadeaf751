package config

import (
	"fmt"
	"net"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Queue     QueueConfig
	Users     UserServiceConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Business  BusinessConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	Host            string `mapstructure:"DATABASE_HOST"`
	Port            string `mapstructure:"DATABASE_PORT"`
	Name            string `mapstructure:"DATABASE_NAME"`
	User            string `mapstructure:"DATABASE_USER"`
	Password        string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// QueueConfig names the Redis streams used for best-effort dispatch.
// A disabled queue is replaced by a no-op dispatcher.
type QueueConfig struct {
	NotificationsEnabled bool   `mapstructure:"QUEUE_NOTIFICATIONS_ENABLED"`
	NotificationStream   string `mapstructure:"QUEUE_NOTIFICATION_STREAM"`
	DebtCapacityEnabled  bool   `mapstructure:"QUEUE_DEBT_CAPACITY_ENABLED"`
	DebtCapacityStream   string `mapstructure:"QUEUE_DEBT_CAPACITY_STREAM"`
	MaxLen               int64  `mapstructure:"QUEUE_STREAM_MAXLEN"`
}

// UserServiceConfig points at the user service used to enrich reports.
// An empty URL disables the lookups.
type UserServiceConfig struct {
	URL     string `mapstructure:"USER_SERVICE_URL"`
	Timeout string `mapstructure:"USER_SERVICE_TIMEOUT"`
}

type SchedulerConfig struct {
	Cron     string `mapstructure:"SCHEDULER_CRON"`
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level string `mapstructure:"LOG_LEVEL"`
}

type BusinessConfig struct {
	DefaultPageSize int    `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int    `mapstructure:"MAX_PAGE_SIZE"`
	ProductCacheTTL string `mapstructure:"PRODUCT_CACHE_TTL"`
	IdempotencyTTL  string `mapstructure:"IDEMPOTENCY_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":                 "8080",
	"SERVER_HOST":                 "0.0.0.0",
	"ENV":                         "development",
	"SERVER_READ_TIMEOUT":         "15s",
	"SERVER_WRITE_TIMEOUT":        "15s",
	"DATABASE_URL":                "",
	"DATABASE_HOST":               "localhost",
	"DATABASE_PORT":               "5432",
	"DATABASE_NAME":               "crediya",
	"DATABASE_USER":               "postgres",
	"DATABASE_PASSWORD":           "",
	"DATABASE_SSLMODE":            "disable",
	"DATABASE_MAX_OPEN_CONNS":     25,
	"DATABASE_MAX_IDLE_CONNS":     5,
	"DATABASE_CONN_MAX_LIFETIME":  "30m",
	"REDIS_HOST":                  "localhost",
	"REDIS_PORT":                  "6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"QUEUE_NOTIFICATIONS_ENABLED": true,
	"QUEUE_NOTIFICATION_STREAM":   "loan:order-decisions",
	"QUEUE_DEBT_CAPACITY_ENABLED": true,
	"QUEUE_DEBT_CAPACITY_STREAM":  "loan:debt-capacity-requests",
	"QUEUE_STREAM_MAXLEN":         10000,
	"USER_SERVICE_URL":            "",
	"USER_SERVICE_TIMEOUT":        "3s",
	"SCHEDULER_CRON":              "0 0 * * * *",
	"SCHEDULER_TIMEZONE":          "America/Bogota",
	"LOG_LEVEL":                   "info",
	"DEFAULT_PAGE_SIZE":           10,
	"MAX_PAGE_SIZE":               100,
	"PRODUCT_CACHE_TTL":           "10m",
	"IDEMPOTENCY_TTL":             "5m",
	"HEALTH_CHECK_TIMEOUT":        "5s",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// .env values never override variables already set in the environment
	_ = godotenv.Load(".env")
	_ = godotenv.Load("./deployments/.env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var config Config
	sections := []any{
		&config.Server, &config.Database, &config.Redis, &config.Queue, &config.Users,
		&config.Scheduler, &config.Logging, &config.Business, &config.Health,
	}
	for _, section := range sections {
		if err := v.Unmarshal(section); err != nil {
			return nil, fmt.Errorf("unable to decode config: %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required")
	}

	if c.Business.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be greater than 0")
	}

	if c.Business.MaxPageSize < c.Business.DefaultPageSize {
		return fmt.Errorf("MAX_PAGE_SIZE must be greater than or equal to DEFAULT_PAGE_SIZE")
	}

	if c.Queue.NotificationsEnabled && c.Queue.NotificationStream == "" {
		return fmt.Errorf("QUEUE_NOTIFICATION_STREAM is required when notifications are enabled")
	}

	if c.Queue.DebtCapacityEnabled && c.Queue.DebtCapacityStream == "" {
		return fmt.Errorf("QUEUE_DEBT_CAPACITY_STREAM is required when debt capacity dispatch is enabled")
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"PRODUCT_CACHE_TTL":          c.Business.ProductCacheTTL,
		"IDEMPOTENCY_TTL":            c.Business.IdempotencyTTL,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
		"USER_SERVICE_TIMEOUT":       c.Users.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	// Six-field cron expression, seconds first
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Scheduler.Cron); err != nil {
		return fmt.Errorf("SCHEDULER_CRON must be a valid cron expression: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// IsDebug reports whether verbose logging was requested
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}

// DSN returns the Postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Addr returns the Redis host:port
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// GetReadTimeout returns the HTTP read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the HTTP write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// GetConnMaxLifetime returns the pool connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

// GetProductCacheTTL returns how long loan products stay cached
func (c *Config) GetProductCacheTTL() time.Duration {
	return mustDuration(c.Business.ProductCacheTTL)
}

// GetIdempotencyTTL returns how long idempotent responses are replayable
func (c *Config) GetIdempotencyTTL() time.Duration {
	return mustDuration(c.Business.IdempotencyTTL)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

// GetUserServiceTimeout returns the per-lookup user service timeout
func (c *Config) GetUserServiceTimeout() time.Duration {
	return mustDuration(c.Users.Timeout)
}

// GetSchedulerLocation returns the scheduler timezone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mustDuration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
