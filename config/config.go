package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port            string
	HTTPBindAddr    string
	Environment     string
	LoggingConfig   LoggingConfig
	RedisConfig     RedisConfig
	DataConfig      DataConfig
	SyncConfig      SyncConfig
	AdminAuthConfig AdminAuthConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig holds Redis cache connection configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
	StatsTTL time.Duration
}

// DataConfig holds the locations of the flight dataset files
type DataConfig struct {
	AirportsPath string
	FlightsPath  string
}

// SyncConfig holds flight-log sheet sync configuration
type SyncConfig struct {
	Enabled      bool
	SheetCSVURL  string
	CronSchedule string
	FetchTimeout time.Duration
	MaxRetries   int
}

// AdminAuthConfig holds admin endpoint authentication configuration
type AdminAuthConfig struct {
	Enabled bool
	Token   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "8080")
	httpBindAddr := getEnv("HTTP_BIND_ADDR", "")
	environment := getEnv("ENVIRONMENT", "development")

	loggingConfig := LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	redisEnabled, _ := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	statsTTL, err := time.ParseDuration(getEnv("REDIS_STATS_TTL", "1h"))
	if err != nil {
		statsTTL = time.Hour
	}
	redisConfig := RedisConfig{
		Enabled:  redisEnabled,
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		Prefix:   getEnv("REDIS_PREFIX", "rsmb"),
		StatsTTL: statsTTL,
	}

	dataConfig := DataConfig{
		AirportsPath: getEnv("AIRPORTS_PATH", "data/airports.geojson"),
		FlightsPath:  getEnv("FLIGHTS_PATH", "data/flights.json"),
	}

	syncEnabled, _ := strconv.ParseBool(getEnv("SYNC_ENABLED", "false"))
	fetchTimeout, err := time.ParseDuration(getEnv("SYNC_FETCH_TIMEOUT", "30s"))
	if err != nil {
		fetchTimeout = 30 * time.Second
	}
	maxRetries, _ := strconv.Atoi(getEnv("SYNC_MAX_RETRIES", "3"))
	syncConfig := SyncConfig{
		Enabled:      syncEnabled,
		SheetCSVURL:  getEnv("SYNC_SHEET_CSV_URL", ""),
		CronSchedule: getEnv("SYNC_CRON_SCHEDULE", "0 6 * * *"),
		FetchTimeout: fetchTimeout,
		MaxRetries:   maxRetries,
	}

	adminAuthEnabled, _ := strconv.ParseBool(getEnv("ADMIN_AUTH_ENABLED", "false"))
	adminAuthConfig := AdminAuthConfig{
		Enabled: adminAuthEnabled,
		Token:   getEnv("ADMIN_AUTH_TOKEN", ""),
	}

	return &Config{
		Port:            port,
		HTTPBindAddr:    httpBindAddr,
		Environment:     environment,
		LoggingConfig:   loggingConfig,
		RedisConfig:     redisConfig,
		DataConfig:      dataConfig,
		SyncConfig:      syncConfig,
		AdminAuthConfig: adminAuthConfig,
	}, nil
}

// TestConfig returns a default test configuration
func TestConfig() *Config {
	return &Config{
		Port:        "8080",
		Environment: "test",
		LoggingConfig: LoggingConfig{
			Level:  "error",
			Format: "text",
		},
		RedisConfig: RedisConfig{
			Enabled:  false,
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Prefix:   "rsmb_test",
			StatsTTL: time.Minute,
		},
		DataConfig: DataConfig{
			AirportsPath: "testdata/airports.geojson",
			FlightsPath:  "testdata/flights.json",
		},
		SyncConfig: SyncConfig{
			Enabled:      false,
			CronSchedule: "0 6 * * *",
			FetchTimeout: 5 * time.Second,
			MaxRetries:   1,
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if len(strings.TrimSpace(value)) == 0 {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
