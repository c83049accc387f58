package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Email providers accepted in EMAIL_PROVIDER.
const (
	EmailProviderLog      = "log"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	BusinessTimezone   string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MetricsEnabled     bool

	// Optional backends; empty means the feature is off.
	DatabaseURL   string
	ArchiveBucket string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Notifications
	EmailProvider  string
	BusinessEmail  string
	EmailFrom      string
	EmailFromName  string
	SendGridAPIKey string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Exit-intent popup
	ExitIntentDelay time.Duration
	ExitIntentTTL   time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		BusinessTimezone:   getEnv("BUSINESS_TIMEZONE", "America/Los_Angeles"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		ArchiveBucket: getEnv("ARCHIVE_BUCKET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", EmailProviderLog))),
		BusinessEmail:  getEnv("BUSINESS_EMAIL", ""),
		EmailFrom:      getEnv("EMAIL_FROM", getEnv("SENDGRID_FROM_EMAIL", "")),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", getEnv("SENDGRID_FROM_NAME", "")),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-west-2"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		ExitIntentDelay: getEnvAsDuration("EXIT_INTENT_DELAY", 5*time.Second),
		ExitIntentTTL:   getEnvAsDuration("EXIT_INTENT_TTL", 24*time.Hour),
	}
}

// Location loads BUSINESS_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	switch c.EmailProvider {
	case EmailProviderLog:
	case EmailProviderSendGrid:
		if c.SendGridAPIKey == "" || c.EmailFrom == "" {
			errs = append(errs, errors.New("config: sendgrid needs SENDGRID_API_KEY and EMAIL_FROM"))
		}
	case EmailProviderSES:
		if c.EmailFrom == "" {
			errs = append(errs, errors.New("config: ses needs EMAIL_FROM"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown EMAIL_PROVIDER %q", c.EmailProvider))
	}
	if c.EmailProvider != EmailProviderLog && c.BusinessEmail == "" {
		errs = append(errs, errors.New("config: BUSINESS_EMAIL is required to send notifications"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
