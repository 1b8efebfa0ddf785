package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session store kinds.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is read from a YAML file with environment variable overrides.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout must cover the longest multi-domain run
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds ordinary requests; workflow runs use Discovery.RunTimeout instead
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigin is sent as Access-Control-Allow-Origin
		AllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" env-default:"*" yaml:"allowedOrigin"`
		// SecureCookies marks the session cookie Secure; enable behind TLS
		SecureCookies bool `env:"HTTP_SECURE_COOKIES" env-default:"false" yaml:"secureCookies"`
	} `yaml:"http"`

	// Backend is the email discovery API
	Backend struct {
		// BaseURL is the backend origin
		BaseURL string `env:"BACKEND_BASE_URL" env-default:"http://localhost:3001" yaml:"baseURL"`
		// Timeout bounds a single backend call
		Timeout time.Duration `env:"BACKEND_TIMEOUT" env-default:"2m" yaml:"timeout"`
	} `yaml:"backend"`

	// DNS is the DNS-over-HTTPS resolver used for existence checks
	DNS struct {
		// ResolverURL is a JSON DoH endpoint
		ResolverURL string `env:"DNS_RESOLVER_URL" env-default:"https://dns.google/resolve" yaml:"resolverURL"`
		// Timeout bounds a single lookup
		Timeout time.Duration `env:"DNS_TIMEOUT" env-default:"5s" yaml:"timeout"`
	} `yaml:"dns"`

	// Session controls where signed-in web sessions are kept
	Session struct {
		// Store is "memory" or "redis"
		Store string `env:"SESSION_STORE" env-default:"memory" yaml:"store"`
		// RedisURL is used when Store is "redis"
		RedisURL string `env:"SESSION_REDIS_URL" env-default:"redis://localhost:6379/0" yaml:"redisURL"`
		// CookieName is the name of the session cookie
		CookieName string `env:"SESSION_COOKIE_NAME" env-default:"ef_session" yaml:"cookieName"`
		// TTL is how long a session is kept without activity
		TTL time.Duration `env:"SESSION_TTL" env-default:"168h" yaml:"ttl"`
	} `yaml:"session"`

	// Discovery tunes the workflow
	Discovery struct {
		// VerifyCount is how many emails are verified when the caller does not say
		VerifyCount int `env:"DISCOVERY_VERIFY_COUNT" env-default:"10" yaml:"verifyCount"`
		// MaxUploadSize is the largest accepted domain list in bytes
		MaxUploadSize int64 `env:"DISCOVERY_MAX_UPLOAD_SIZE" env-default:"5242880" yaml:"maxUploadSize"`
		// LegacyFallback enables the single-request generation path when the discovery API is unavailable
		LegacyFallback bool `env:"DISCOVERY_LEGACY_FALLBACK" env-default:"true" yaml:"legacyFallback"`
		// RunTimeout bounds a whole submit or verify run
		RunTimeout time.Duration `env:"DISCOVERY_RUN_TIMEOUT" env-default:"10m" yaml:"runTimeout"`
	} `yaml:"discovery"`

	// RateLimit bounds per-session activity
	RateLimit struct {
		// FormSubmissionsPerMinute limits workflow submissions
		FormSubmissionsPerMinute int `env:"RATE_LIMIT_FORM_SUBMISSIONS" env-default:"20" yaml:"formSubmissionsPerMinute"`
		// LookupsPerMinute limits AI lookups and domain checks
		LookupsPerMinute int `env:"RATE_LIMIT_LOOKUPS" env-default:"10" yaml:"lookupsPerMinute"`
	} `yaml:"rateLimit"`

	// CLI settings
	CLI struct {
		// CredentialsPath is where the CLI keeps its token; empty means the user config dir
		CredentialsPath string `env:"CLI_CREDENTIALS_PATH" env-default:"" yaml:"credentialsPath"`
	} `yaml:"cli"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the YAML file at configPath and applies environment overrides.
// A missing file is not an error: defaults and the environment are used.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(configPath)
	if errors.Is(statErr, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
