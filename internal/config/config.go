package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StorageLocal    = "local"
	StorageSupabase = "supabase"

	defaultImageExtensions = "jpg,jpeg,png,webp"
)

type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Tokens
	SecretKey                string `env:"SECRET_KEY"`
	Algorithm                string `env:"ALGORITHM,default=HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=30"`

	// Uploads
	MaxFileSize            int64  `env:"MAX_FILE_SIZE,default=10485760"`
	AllowedImageExtensions string `env:"ALLOWED_IMAGE_EXTENSIONS"`
	UploadDir              string `env:"UPLOAD_DIR,default=./uploads"`
	StorageBackend         string `env:"STORAGE_BACKEND,default=local"`

	// Supabase Storage (only read when STORAGE_BACKEND=supabase)
	SupabaseURL           string `env:"SUPABASE_URL"`
	SupabaseServiceKey    string `env:"SUPABASE_SERVICE_KEY"`
	SupabaseStorageBucket string `env:"SUPABASE_STORAGE_BUCKET,default=paintings"`

	// Cache
	RedisURL string `env:"REDIS_URL"`

	// Server
	Port               string `env:"PORT,default=8000"`
	Environment        string `env:"ENVIRONMENT,default=development"`
	BaseURL            string `env:"BASE_URL,default=http://localhost:8000"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS       int    `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST,default=40"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	// envdecode splits tag options on commas, so list defaults are applied here
	if cfg.AllowedImageExtensions == "" {
		cfg.AllowedImageExtensions = defaultImageExtensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.IsProduction() && len(c.SecretKey) < 16 {
		return fmt.Errorf("SECRET_KEY must be at least 16 characters in production")
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("ALGORITHM must be one of HS256, HS384, HS512, got %q", c.Algorithm)
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if len(c.AllowedExtensions()) == 0 {
		return fmt.Errorf("ALLOWED_IMAGE_EXTENSIONS must list at least one extension")
	}
	switch c.StorageBackend {
	case StorageLocal:
	case StorageSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for the supabase storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q", StorageLocal, StorageSupabase)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedExtensions returns the lower-cased upload extension allow-list.
func (c *Config) AllowedExtensions() []string {
	return splitList(c.AllowedImageExtensions)
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
