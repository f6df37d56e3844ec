// Package config provides configuration loading from environment variables.
// #IMPLEMENTATION_DECISION: Using envconfig for type-safe environment variable parsing
// #CODE_ASSUMPTION: All secrets provided via environment variables (no secret manager integration)
package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. RISKASSESS_DATABASE_URI
const Prefix = "RISKASSESS"

// Config holds all application configuration loaded from environment variables.
// #INTEGRATION_POINT: All services depend on this configuration
type Config struct {
	// Database configuration
	DatabaseURI  string `envconfig:"DATABASE_URI" required:"true"`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"riskassess"`

	// JWT configuration. Tokens are issued by the identity provider; only
	// the public key is needed to verify them.
	JWTPublicKeyPath  string `envconfig:"JWT_PUBLIC_KEY_PATH" required:"true"`
	JWTPrivateKeyPath string `envconfig:"JWT_PRIVATE_KEY_PATH"`
	JWTIssuer         string `envconfig:"JWT_ISSUER" default:"riskassess"`

	// Server configuration
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Version     string `envconfig:"VERSION" default:"1.0.0"`

	// CORS configuration
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Rate limiting
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// Evaluation cache. Empty address disables caching.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	// Domain events. Empty URL disables publishing.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"riskassess.events"`

	// Tracing. Empty endpoint disables export.
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	// Seed the sample questionnaire when the database is empty
	SeedOnStartup bool `envconfig:"SEED_ON_STARTUP" default:"true"`
}

var (
	instance *Config
	once     sync.Once
	errInit  error
)

// Load loads configuration from environment variables.
// #IMPLEMENTATION_DECISION: Singleton pattern ensures config is loaded once
func Load() (*Config, error) {
	once.Do(func() {
		instance, errInit = Parse()
	})

	return instance, errInit
}

// Parse reads and validates a fresh configuration without touching the singleton
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check on its own
func (c *Config) Validate() error {
	if _, err := os.Stat(c.JWTPublicKeyPath); os.IsNotExist(err) {
		return fmt.Errorf("JWT public key file not found: %s", c.JWTPublicKeyPath)
	}
	if c.JWTPrivateKeyPath != "" {
		if _, err := os.Stat(c.JWTPrivateKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("JWT private key file not found: %s", c.JWTPrivateKeyPath)
		}
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("rate limit requests must be positive, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimitWindow)
	}
	return nil
}

// GetConfig returns the loaded configuration.
// Panics if configuration has not been loaded.
func GetConfig() *Config {
	if instance == nil {
		panic("config: Load() must be called before GetConfig()")
	}
	return instance
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis address is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// EventsEnabled reports whether a broker URL is configured
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}
