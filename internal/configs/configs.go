/*
Package configs loads the service configuration from environment variables.

The configuration is read once at startup and passed explicitly to every
component that needs it; nothing else in the service reads the environment.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds every setting the service needs.
type AppConfig struct {
	// General server settings
	Environment string
	Port        int

	// Security settings
	AllowedOrigins []string
	BaaSJWTSecret  string

	// Video platform credentials. Zero values are allowed at startup; the
	// token issuer reports them as a configuration error per request.
	ZegoAppID        uint32
	ZegoServerSecret string

	// S3 storage settings. Empty bucket disables content uploads.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Database settings. Empty DSN disables enrollment and checkout.
	DatabaseDSN string

	// Payment settings. Empty key disables checkout.
	StripeSecretKey  string
	CheckoutCurrency string
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// StorageEnabled reports whether S3 settings are present.
func (c *AppConfig) StorageEnabled() bool {
	return c.S3BucketName != ""
}

// DatabaseEnabled reports whether a database DSN is present.
func (c *AppConfig) DatabaseEnabled() bool {
	return c.DatabaseDSN != ""
}

// PaymentsEnabled reports whether checkout can run: it needs both the
// payment provider key and the database.
func (c *AppConfig) PaymentsEnabled() bool {
	return c.StripeSecretKey != "" && c.DatabaseEnabled()
}

// LoadConfig reads the configuration from the environment, applying
// defaults and validating values.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General server settings ---
	cfg.Environment = strings.TrimSpace(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", port)
	}
	cfg.Port = port

	// --- Security settings ---
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	cfg.BaaSJWTSecret = os.Getenv("BAAS_JWT_SECRET")
	if cfg.BaaSJWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("BAAS_JWT_SECRET environment variable is required in %s environment", cfg.Environment)
		}
		cfg.BaaSJWTSecret = "dev-insecure-baas-secret-change-me"
	}

	// --- Video platform ---
	cfg.ZegoAppID = parseAppID(os.Getenv("ZEGOCLOUD_APP_ID"))
	cfg.ZegoServerSecret = os.Getenv("ZEGOCLOUD_SERVER_SECRET")

	// --- S3 storage settings ---
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	if cfg.StorageEnabled() {
		missing := []string{}
		if cfg.S3Endpoint == "" {
			missing = append(missing, "S3_ENDPOINT")
		}
		if cfg.S3AccessKeyID == "" {
			missing = append(missing, "S3_ACCESS_KEY_ID")
		}
		if cfg.S3SecretAccessKey == "" {
			missing = append(missing, "S3_SECRET_ACCESS_KEY")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("S3_BUCKET_NAME is set but %s missing", strings.Join(missing, ", "))
		}
	}

	// --- Database settings ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")

	// --- Payment settings ---
	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.CheckoutCurrency = strings.ToLower(strings.TrimSpace(os.Getenv("CHECKOUT_CURRENCY")))
	if cfg.CheckoutCurrency == "" {
		cfg.CheckoutCurrency = "usd"
	}
	if len(cfg.CheckoutCurrency) != 3 {
		return nil, fmt.Errorf("invalid CHECKOUT_CURRENCY %q: expected a three-letter ISO code", cfg.CheckoutCurrency)
	}

	return cfg, nil
}

// parseAppID returns 0 for an unset, malformed or out-of-range identifier.
func parseAppID(raw string) uint32 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}

	return uint32(id)
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
