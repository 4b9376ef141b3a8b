package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MediaLocal = "local"
	MediaGCS   = "gcs"
)

type Config struct {
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	ServerPort string

	MediaBackend       string
	MediaRoot          string
	MediaURL           string
	GCSBucket          string
	GCSCredentialsFile string

	LogMode     string
	CORSOrigins string

	// AuthRateLimit caps register/login requests per IP per minute; 0 disables it.
	AuthRateLimit int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	authRateLimit, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:     getEnv("DB_PATH", "eduforge.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "eduforge"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		MediaBackend:       strings.ToLower(getEnv("MEDIA_BACKEND", MediaLocal)),
		MediaRoot:          getEnv("MEDIA_ROOT", "media"),
		MediaURL:           strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		LogMode:     getEnv("LOG_MODE", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		AuthRateLimit: authRateLimit,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that would only fail later at connect time.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.MediaBackend {
	case MediaLocal:
	case MediaGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when MEDIA_BACKEND=%s", MediaGCS)
		}
	default:
		return fmt.Errorf("unsupported MEDIA_BACKEND %q", c.MediaBackend)
	}

	if c.AuthRateLimit < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must not be negative, got %d", c.AuthRateLimit)
	}
	return nil
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
