package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Push        PushConfig
	Scheduler   SchedulerConfig
	Journal     JournalConfig
	FailureLog  FailureLogConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// SessionConfig selects the session backend. "memory" keeps the historical
// in-process map (sessions die with the process); "redis" makes them durable.
type SessionConfig struct {
	Backend string
	TTL     time.Duration
}

type PushConfig struct {
	// FCMCredentialsFile points at the service-account JSON. Empty or
	// missing leaves the direct channel uninitialized; the process still
	// boots but the scheduler loop never starts.
	FCMCredentialsFile string
	ExpoEndpoint       string
	SendTimeout        time.Duration
}

type SchedulerConfig struct {
	Interval time.Duration
	// WindowOffset/WindowWidth define the background due window
	// [now+offset, now+offset+width).
	WindowOffset time.Duration
	WindowWidth  time.Duration
	// DefaultLookaheadMinutes backs the on-demand scan endpoint.
	DefaultLookaheadMinutes int
	// PendingOnly restricts scans to pending tasks; turning it off
	// reproduces the revision that scanned every status.
	PendingOnly bool
	Timezone    string
}

type JournalConfig struct {
	Path string
	// Retention bounds how long recorded outcomes are kept; entries older
	// than this are swept at startup.
	Retention time.Duration
}

type FailureLogConfig struct {
	Path string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "workaholic-backend"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "5000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "workaholic"),
			User:            getString("DB_USER", "workaholic"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Backend: getString("SESSION_BACKEND", "memory"),
			TTL:     getDuration("SESSION_TTL", 24*time.Hour),
		},
		Push: PushConfig{
			FCMCredentialsFile: getString("FCM_CREDENTIALS_FILE", "./firebase-service-account.json"),
			ExpoEndpoint:       getString("EXPO_PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),
			SendTimeout:        getDuration("PUSH_SEND_TIMEOUT", 10*time.Second),
		},
		Scheduler: SchedulerConfig{
			Interval:                getDuration("SCHEDULER_INTERVAL", time.Minute),
			WindowOffset:            getDuration("SCHEDULER_WINDOW_OFFSET", 30*time.Minute),
			WindowWidth:             getDuration("SCHEDULER_WINDOW_WIDTH", time.Minute),
			DefaultLookaheadMinutes: getInt("SCHEDULER_DEFAULT_LOOKAHEAD_MINUTES", 10),
			PendingOnly:             getBool("SCHEDULER_PENDING_ONLY", true),
			Timezone:                getString("SCHEDULER_TIMEZONE", ""),
		},
		Journal: JournalConfig{
			Path:      getString("JOURNAL_PATH", "./data/outcomes.db"),
			Retention: getDuration("JOURNAL_RETENTION", 30*24*time.Hour),
		},
		FailureLog: FailureLogConfig{
			Path: getString("FAILURE_LOG_PATH", "./data/notification-failures.log"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	return cfg, nil
}

// Location resolves the scheduler timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Scheduler.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
