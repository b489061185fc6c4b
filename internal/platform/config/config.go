package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	App        AppConfig        `json:"app"`
	Cache      CacheConfig      `json:"cache"`
	Engagement EngagementConfig `json:"engagement"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	ConnectTimeout  int           `json:"connectTimeout"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	OrgName   string `json:"orgName"`
	WebDomain string `json:"webDomain"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	Backend         string        `json:"backend"`
	Prefix          string        `json:"prefix"`
	TTL             time.Duration `json:"ttl"`
	MaxMemory       int64         `json:"maxMemory"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
	Redis           RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	Database     int           `json:"database"`
	PoolSize     int           `json:"poolSize"`
	MinIdleConns int           `json:"minIdleConns"`
	MaxConnAge   time.Duration `json:"maxConnAge"`
}

// EngagementConfig holds knobs for the comment/reply/like subsystem.
type EngagementConfig struct {
	// MaxReplyDepth bounds how deep nested replies may go. A direct reply
	// has depth 0; creation past this bound is rejected.
	MaxReplyDepth int `json:"maxReplyDepth"`
	// DefaultTreeDepth is how many reply levels GetComments attaches when
	// the caller does not ask for a specific depth.
	DefaultTreeDepth int `json:"defaultTreeDepth"`
	// MaxTreeDepth caps caller-requested tree depth; tree assembly issues
	// one query per level per parent, so this bounds query fan-out.
	MaxTreeDepth int `json:"maxTreeDepth"`
	// DefaultPageSize / MaxPageSize bound comment list pagination.
	DefaultPageSize int `json:"defaultPageSize"`
	MaxPageSize     int `json:"maxPageSize"`
}

// LoadFromEnv loads configuration from the environment.
// It follows a clear precedence:
// 1. Explicit Environment Variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() reads the .env file and loads its values into the
	// environment for this process only if they are not already set, which
	// gives the precedence above.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}

	if loadErr != nil {
		// Not an error: the .env file is optional.
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "localhost"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			BaseRoute: getEnvOrDefault("BASE_ROUTE", "/api"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USERNAME", ""),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DATABASE", "alumlink"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
		},
		JWT: JWTConfig{
			PublicKey:  getEnvOrDefault("JWT_PUBLIC_KEY", ""),
			PrivateKey: getEnvOrDefault("JWT_PRIVATE_KEY", ""),
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "Alumlink"),
			OrgName:   getEnvOrDefault("ORG_NAME", "Alumlink"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
		},
		Cache: CacheConfig{
			Enabled:         getEnvAsBool("CACHE_ENABLED", true),
			Backend:         getEnvOrDefault("CACHE_BACKEND", "memory"),
			Prefix:          getEnvOrDefault("CACHE_PREFIX", "alumlink:"),
			TTL:             getEnvAsDuration("CACHE_TTL", 1*time.Hour),
			MaxMemory:       getEnvAsInt64("CACHE_MAX_MEMORY", 100*1024*1024),
			CleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
			Redis: RedisConfig{
				Address:      getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
				Database:     getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
				MaxConnAge:   time.Duration(getEnvAsInt("REDIS_MAX_CONN_AGE", 300)) * time.Second,
			},
		},
		Engagement: EngagementConfig{
			MaxReplyDepth:    getEnvAsInt("ENGAGEMENT_MAX_REPLY_DEPTH", 5),
			DefaultTreeDepth: getEnvAsInt("ENGAGEMENT_DEFAULT_TREE_DEPTH", 3),
			MaxTreeDepth:     getEnvAsInt("ENGAGEMENT_MAX_TREE_DEPTH", 10),
			DefaultPageSize:  getEnvAsInt("ENGAGEMENT_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:      getEnvAsInt("ENGAGEMENT_MAX_PAGE_SIZE", 100),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("invalid cache backend: %s", c.Cache.Backend)
	}
	if c.Engagement.MaxReplyDepth < 0 {
		return fmt.Errorf("max reply depth must not be negative")
	}
	if c.Engagement.DefaultTreeDepth < 1 {
		return fmt.Errorf("default tree depth must be at least 1")
	}
	if c.Engagement.MaxTreeDepth < c.Engagement.DefaultTreeDepth {
		return fmt.Errorf("max tree depth must not be below the default tree depth")
	}
	if c.Engagement.MaxPageSize < c.Engagement.DefaultPageSize {
		return fmt.Errorf("max page size must not be below the default page size")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
