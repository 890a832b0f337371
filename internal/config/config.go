package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverPQ       = "pq"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Auth   AuthConfig
	AI     AIConfig
	Clock  ClockConfig
}

type ServerConfig struct {
	Port     string
	LogLevel string
}

type StoreConfig struct {
	Driver     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
	MongoURI   string
	MongoDB    string
}

// RedisConfig is optional; an empty Host disables the cache and the rate
// limiter.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret         string
	Issuer            string
	OwnerPassword     string
	OwnerPasswordHash string
	TokenTTL          time.Duration
}

// AIConfig configures meal extraction and image generation. An empty
// GeminiKey disables both.
type AIConfig struct {
	GeminiKey  string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

type ClockConfig struct {
	Timezone string
}

// Load reads environment variables, optionally seeded from envFile, and
// validates the result.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverPostgres)),
			DBHost:     getenvWithDefault("DB_HOST", "localhost"),
			DBPort:     getenvWithDefault("DB_PORT", "5432"),
			DBUser:     os.Getenv("DB_USER"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBName:     os.Getenv("DB_NAME"),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "kanso-diet.db"),
			MongoURI:   getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDB:    getenvWithDefault("MONGODB_DB_NAME", "kanso_diet"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenvWithDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			Issuer:            getenvWithDefault("JWT_ISSUER", "kanso-diet"),
			OwnerPassword:     os.Getenv("OWNER_PASSWORD"),
			OwnerPasswordHash: os.Getenv("OWNER_PASSWORD_HASH"),
			TokenTTL:          getenvDuration("TOKEN_TTL", 24*time.Hour),
		},
		AI: AIConfig{
			GeminiKey:  os.Getenv("GEMINI_API_KEY"),
			BaseURL:    getenvWithDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			TextModel:  getenvWithDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
			ImageModel: getenvWithDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			Timeout:    getenvDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Clock: ClockConfig{
			Timezone: getenvWithDefault("TIMEZONE", "UTC"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres, DriverPQ:
		if c.Store.DBUser == "" || c.Store.DBName == "" {
			return errors.New("DB_USER and DB_NAME must be provided for SQL stores")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDB == "" {
			return errors.New("MONGODB_URI and MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.Auth.OwnerPassword == "" && c.Auth.OwnerPasswordHash == "" {
		return errors.New("OWNER_PASSWORD or OWNER_PASSWORD_HASH must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}

	if _, err := time.LoadLocation(c.Clock.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Clock.Timezone, err)
	}

	return nil
}

// Location resolves the configured timezone. Validate has already checked it.
func (c ClockConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s StoreConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		s.DBUser, s.DBPassword, s.DBHost, s.DBPort, s.DBName)
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func (a AIConfig) Enabled() bool {
	return a.GeminiKey != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
