package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database       DatabaseConfig
	JWT            JWTConfig
	App            AppConfig
	Redis          RedisConfig
	Monitor        MonitorConfig
	Recommendation RecommendationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
	SSEExpiration    time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// RedisConfig is optional. An empty Addr keeps violation cool-downs in
// process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MonitorConfig drives the attendance-violation monitor.
type MonitorConfig struct {
	Interval       time.Duration
	Timeout        time.Duration
	Concurrency    int
	NotifyCooldown time.Duration
	Token          string
}

type RecommendationConfig struct {
	SubmissionLookback int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	dbMinConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffing"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExp, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour)
	if err != nil {
		return nil, err
	}
	sseExp, err := getEnvDuration("JWT_SSE_EXPIRATION_TIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExp,
		SSEExpiration:    sseExp,
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Monitor configuration
	interval, err := getEnvDuration("MONITOR_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("MONITOR_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("MONITOR_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	cooldown, err := getEnvDuration("MONITOR_NOTIFY_COOLDOWN", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	config.Monitor = MonitorConfig{
		Interval:       interval,
		Timeout:        timeout,
		Concurrency:    concurrency,
		NotifyCooldown: cooldown,
		Token:          getEnv("MONITOR_TOKEN", ""),
	}

	// Recommendation configuration
	lookback, err := getEnvInt("RECOMMENDATION_SUBMISSION_LOOKBACK", 50)
	if err != nil {
		return nil, err
	}
	config.Recommendation = RecommendationConfig{SubmissionLookback: lookback}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return errors.New("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Monitor.Concurrency < 1 {
		return errors.New("MONITOR_CONCURRENCY must be at least 1")
	}
	if c.Monitor.Interval < 0 {
		return errors.New("MONITOR_INTERVAL must not be negative")
	}
	if c.Monitor.NotifyCooldown <= 0 {
		return errors.New("MONITOR_NOTIFY_COOLDOWN must be positive")
	}
	if c.Recommendation.SubmissionLookback < 1 {
		return errors.New("RECOMMENDATION_SUBMISSION_LOOKBACK must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
