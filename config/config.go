package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Application struct {
	GracefulShutdownTimeout time.Duration
	SeedData                bool
}

type HTTPServer struct {
	Port int
}

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr             string
	Username         string
	Password         string
	DB               int
	ExpiresInMinutes int
}

// QueryBounds holds a page-size range for one query surface.
type QueryBounds struct {
	Default int
	Min     int
	Max     int
}

// Query carries the two intentionally distinct page-size ranges: the
// dashboard-facing paged listing and the general listing path.
type Query struct {
	Paged QueryBounds
	List  QueryBounds
}

type Logger struct {
	Level string
	Mode  string // development or production
}

type Swagger struct {
	Enabled bool `json:"enabled"`
}

type Config struct {
	Application Application
	HTTPServer  HTTPServer
	Database    Database
	Redis       Redis
	Query       Query
	Logger      Logger
	Swagger     Swagger
}

func Load() (*Config, error) {
	// Optional .env file; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Application: Application{
			GracefulShutdownTimeout: parseDurationWithDefault("APPLICATION_GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second),
			SeedData:                getEnvBoolWithDefault("APPLICATION_SEED_DATA", false),
		},
		HTTPServer: HTTPServer{
			Port: parseIntWithDefault("HTTP_SERVER_PORT", 8080),
		},
		Database: Database{
			Host:     getEnvWithDefault("DATABASE_HOST", "db"),
			Port:     parseIntWithDefault("DATABASE_PORT", 5432),
			User:     getEnvWithDefault("DATABASE_USER", "featuretoggle"),
			Password: getEnvWithDefault("DATABASE_PASSWORD", "featuretoggle"),
			Name:     getEnvWithDefault("DATABASE_NAME", "featuretoggle"),
			SSLMode:  getEnvWithDefault("DATABASE_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Addr:             getEnvWithDefault("REDIS_ADDR", "cache:6379"),
			Username:         getEnvWithDefault("REDIS_USERNAME", ""),
			Password:         getEnvWithDefault("REDIS_PASSWORD", ""),
			DB:               parseIntWithDefault("REDIS_DB", 0),
			ExpiresInMinutes: parseIntWithDefault("CACHE_EXPIRES_IN_MINUTES", 10),
		},
		Query: Query{
			Paged: QueryBounds{
				Default: parseIntWithDefault("QUERY_PAGED_QUANTITY", 6),
				Min:     parseIntWithDefault("QUERY_PAGED_MIN_QUANTITY", 1),
				Max:     parseIntWithDefault("QUERY_PAGED_MAX_QUANTITY", 6),
			},
			List: QueryBounds{
				Default: parseIntWithDefault("QUERY_LIST_QUANTITY", 10),
				Min:     parseIntWithDefault("QUERY_LIST_MIN_QUANTITY", 1),
				Max:     parseIntWithDefault("QUERY_LIST_MAX_QUANTITY", 100),
			},
		},
		Logger: Logger{
			Level: getEnvWithDefault("LOGGER_LEVEL", "info"),
			Mode:  getEnvWithDefault("LOGGER_MODE", "production"),
		},
	}

	// Set Swagger defaults
	cfg.Swagger = Swagger{
		Enabled: getEnvBoolWithDefault("SWAGGER_ENABLED", true),
	}

	// Support legacy environment variables
	if port := os.Getenv("APP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.HTTPServer.Port = p
		}
	}
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if user := os.Getenv("POSTGRES_USER"); user != "" {
		cfg.Database.User = user
	}
	if password := os.Getenv("POSTGRES_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if name := os.Getenv("POSTGRES_DB"); name != "" {
		cfg.Database.Name = name
	}

	return cfg, nil
}

// CacheExpiration returns the shared TTL for both cache key spaces.
func (c *Config) CacheExpiration() time.Duration {
	return time.Duration(c.Redis.ExpiresInMinutes) * time.Minute
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
