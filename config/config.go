package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Session       SessionConfig
	ReCAPTCHA     ReCAPTCHAConfig
	Email         EmailConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AppURL         string // Base URL of the web app, used for links in emails
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL           string
	MaxConns      int32
	MinConns      int32
	CACertPath    string
	TLSServerName string
}

// StorageConfig describes the S3-compatible bucket used for avatars.
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type ReCAPTCHAConfig struct {
	SecretKey string
}

// EmailConfig configures the outbound mail webhook.
type EmailConfig struct {
	WebhookURL     string
	WebhookSecret  string
	From           string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	RoleTTLSeconds int
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DATABASE_CA_CERT_PATH", "certs/db-ca.crt")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("EMAIL_FROM", "RoleReady <no-reply@roleready.app>")
	v.SetDefault("EMAIL_TIMEOUT_SECONDS", 10)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "roleready-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "roleready")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "roleready-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("ROLE_CACHE_TTL", 300)

	v.SetDefault("JWT_ISSUER", "roleready-api")
	v.SetDefault("SESSION_TTL_HOURS", 72)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // .env is optional

	// APP_URL wins; the web app's public variable is accepted as a fallback.
	appURL := v.GetString("APP_URL")
	if appURL == "" {
		appURL = v.GetString("NEXT_PUBLIC_APP_URL")
	}
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AppURL:         strings.TrimRight(appURL, "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:           v.GetString("DATABASE_URL"),
			MaxConns:      v.GetInt32("DB_MAX_CONNS"),
			MinConns:      v.GetInt32("DB_MIN_CONNS"),
			CACertPath:    v.GetString("DATABASE_CA_CERT_PATH"),
			TLSServerName: v.GetString("DATABASE_TLS_SERVER_NAME"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("S3_BUCKET_NAME"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			Region:          v.GetString("S3_REGION"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_SECRET_KEY"),
		},
		Email: EmailConfig{
			WebhookURL:     v.GetString("EMAIL_WEBHOOK_URL"),
			WebhookSecret:  v.GetString("EMAIL_WEBHOOK_SECRET"),
			From:           v.GetString("EMAIL_FROM"),
			TimeoutSeconds: v.GetInt("EMAIL_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			RoleTTLSeconds: v.GetInt("ROLE_CACHE_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Session.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Session.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.IsProduction() && c.Email.WebhookURL == "" {
		return fmt.Errorf("EMAIL_WEBHOOK_URL is required in production")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// StorageEnabled reports whether avatar uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != "" && c.Storage.BucketName != ""
}
