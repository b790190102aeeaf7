package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv                 string `mapstructure:"APP_ENV"`
	Port                   string `mapstructure:"PORT"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	JWTTTLHours            int    `mapstructure:"JWT_TTL_HOURS"`
	CORSAllowedOrigins     string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	StoragePath            string `mapstructure:"STORAGE_PATH"`
	StorageBaseURL         string `mapstructure:"STORAGE_BASE_URL"`
	MaxUploadMB            int    `mapstructure:"MAX_UPLOAD_MB"`
	GeoIPDBPath            string `mapstructure:"GEOIP_DB_PATH"`
	RabbitMQURL            string `mapstructure:"RABBITMQ_URL"`
	EventsExchange         string `mapstructure:"EVENTS_EXCHANGE"`
	RedisURL               string `mapstructure:"REDIS_URL"`
	RateLimitPerMin        int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	CampaignExpirySchedule string `mapstructure:"CAMPAIGN_EXPIRY_SCHEDULE"`
	PendingDonationTTLMin  int    `mapstructure:"PENDING_DONATION_TTL_MINUTES"`
	HTTPReadTimeoutSec     int    `mapstructure:"HTTP_READ_TIMEOUT_SECONDS"`
	HTTPWriteTimeoutSec    int    `mapstructure:"HTTP_WRITE_TIMEOUT_SECONDS"`
	HTTPIdleTimeoutSec     int    `mapstructure:"HTTP_IDLE_TIMEOUT_SECONDS"`

	HTTPReadTimeout    time.Duration `mapstructure:"-"`
	HTTPWriteTimeout   time.Duration `mapstructure:"-"`
	HTTPIdleTimeout    time.Duration `mapstructure:"-"`
	JWTTTL             time.Duration `mapstructure:"-"`
	PendingDonationTTL time.Duration `mapstructure:"-"`
}

var configDefaults = map[string]any{
	"APP_ENV":                      "development",
	"PORT":                         "8080",
	"DATABASE_URL":                 "",
	"JWT_SECRET":                   "",
	"JWT_TTL_HOURS":                24,
	"CORS_ALLOWED_ORIGINS":         "http://localhost:5173",
	"STORAGE_PATH":                 "./data/uploads",
	"STORAGE_BASE_URL":             "",
	"MAX_UPLOAD_MB":                10,
	"GEOIP_DB_PATH":                "",
	"RABBITMQ_URL":                 "",
	"EVENTS_EXCHANGE":              "clearcause.events",
	"REDIS_URL":                    "",
	"RATE_LIMIT_PER_MINUTE":        60,
	"CAMPAIGN_EXPIRY_SCHEDULE":     "@every 15m",
	"PENDING_DONATION_TTL_MINUTES": 60,
	"HTTP_READ_TIMEOUT_SECONDS":    15,
	"HTTP_WRITE_TIMEOUT_SECONDS":   30,
	"HTTP_IDLE_TIMEOUT_SECONDS":    60,
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if strings.TrimSpace(cfg.StorageBaseURL) == "" {
		cfg.StorageBaseURL = fmt.Sprintf("http://localhost:%s/static", cfg.Port)
	}
	cfg.StorageBaseURL = strings.TrimRight(cfg.StorageBaseURL, "/")

	cfg.HTTPReadTimeout = time.Duration(cfg.HTTPReadTimeoutSec) * time.Second
	cfg.HTTPWriteTimeout = time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second
	cfg.HTTPIdleTimeout = time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second
	cfg.JWTTTL = time.Duration(cfg.JWTTTLHours) * time.Hour
	cfg.PendingDonationTTL = time.Duration(cfg.PendingDonationTTLMin) * time.Minute

	return &cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// MaxUploadBytes is the request body cap for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
