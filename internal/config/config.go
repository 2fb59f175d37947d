package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minProductionTokenLength = 32
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`

	APIToken           string   `envconfig:"API_TOKEN"`
	PaginationMaxLimit int      `envconfig:"PAGINATION_MAX_LIMIT" default:"50"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	APIRateLimitPerMin    int    `envconfig:"API_RATE_LIMIT_PER_MIN" default:"120"`
	RateLimitRedisEnabled bool   `envconfig:"RATE_LIMIT_REDIS_ENABLED" default:"false"`
	RateLimitRedisPrefix  string `envconfig:"RATE_LIMIT_REDIS_PREFIX" default:"rl"`
	RedisAddr             string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword         string `envconfig:"REDIS_PASSWORD"`
	RedisDB               int    `envconfig:"REDIS_DB" default:"0"`

	ReadinessProbeTimeout        time.Duration `envconfig:"READINESS_PROBE_TIMEOUT" default:"1s"`
	ServerStartGracePeriod       time.Duration `envconfig:"SERVER_START_GRACE_PERIOD" default:"0s"`
	ShutdownTimeout              time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"20s"`
	ShutdownHTTPDrainTimeout     time.Duration `envconfig:"SHUTDOWN_HTTP_DRAIN_TIMEOUT" default:"10s"`
	ShutdownObservabilityTimeout time.Duration `envconfig:"SHUTDOWN_OBSERVABILITY_TIMEOUT" default:"8s"`

	OTELServiceName           string        `envconfig:"OTEL_SERVICE_NAME" default:"catalog-api"`
	OTELEnvironment           string        `envconfig:"OTEL_ENVIRONMENT"`
	OTELExporterOTLPEndpoint  string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	OTELExporterOTLPInsecure  bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	OTELMetricsExportInterval time.Duration `envconfig:"OTEL_METRICS_EXPORT_INTERVAL" default:"10s"`
	OTELTraceSamplingRatio    float64       `envconfig:"OTEL_TRACE_SAMPLING_RATIO" default:"1.0"`
	OTELMetricsEnabled        bool          `envconfig:"OTEL_METRICS_ENABLED" default:"false"`
	OTELTracingEnabled        bool          `envconfig:"OTEL_TRACING_ENABLED" default:"false"`
	OTELLogsEnabled           bool          `envconfig:"OTEL_LOGS_ENABLED" default:"false"`
	LogLevel                  string        `envconfig:"OTEL_LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path without overriding variables
// already present in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.OTELEnvironment == "" {
		c.OTELEnvironment = c.Env
	}
	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if trim := strings.TrimSpace(o); trim != "" {
			origins = append(origins, trim)
		}
	}
	c.CORSAllowedOrigins = origins
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverSQLite {
		errs = append(errs, "DATABASE_DRIVER must be one of postgres, sqlite")
	}
	if c.APIToken == "" {
		errs = append(errs, "API_TOKEN is required")
	}
	if c.PaginationMaxLimit <= 0 {
		errs = append(errs, "PAGINATION_MAX_LIMIT must be > 0")
	}
	if c.APIRateLimitPerMin <= 0 {
		errs = append(errs, "API_RATE_LIMIT_PER_MIN must be > 0")
	}
	if c.RateLimitRedisEnabled && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when RATE_LIMIT_REDIS_ENABLED=true")
	}
	if c.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must be >= 0")
	}
	if c.ReadinessProbeTimeout <= 0 {
		errs = append(errs, "READINESS_PROBE_TIMEOUT must be > 0")
	}
	if c.ServerStartGracePeriod < 0 {
		errs = append(errs, "SERVER_START_GRACE_PERIOD must be >= 0")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.ShutdownHTTPDrainTimeout <= 0 || c.ShutdownHTTPDrainTimeout > c.ShutdownTimeout {
		errs = append(errs, "SHUTDOWN_HTTP_DRAIN_TIMEOUT must be > 0 and <= SHUTDOWN_TIMEOUT")
	}
	if c.ShutdownObservabilityTimeout <= 0 || c.ShutdownObservabilityTimeout > c.ShutdownTimeout {
		errs = append(errs, "SHUTDOWN_OBSERVABILITY_TIMEOUT must be > 0 and <= SHUTDOWN_TIMEOUT")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsEnabled && c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.LogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}

	if !isLocalLikeEnv(c.Env) {
		if len(c.APIToken) < minProductionTokenLength {
			errs = append(errs, fmt.Sprintf("API_TOKEN must be at least %d chars outside local environments", minProductionTokenLength))
		}
		if c.DatabaseDriver == DriverSQLite {
			errs = append(errs, "DATABASE_DRIVER=sqlite is only allowed in local environments")
		}
		for _, o := range c.CORSAllowedOrigins {
			if o == "*" {
				errs = append(errs, "CORS_ALLOWED_ORIGINS must not contain * outside local environments")
				break
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return isLocalLikeEnv(c.Env)
}

func isLocalLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local", "test":
		return true
	default:
		return false
	}
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
