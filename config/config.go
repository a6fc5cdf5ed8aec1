package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Sources   SourcesConfig
	Recompute RecomputeConfig
	App       AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	// DSN feeds the pgx pool used for canvas versions.
	DSN string
	// Host..Name feed the database/sql connection used for presets.
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SourcesConfig struct {
	BlueRoutes  string
	RedRoutes   string
	Models      string
	Relations   string
	ErrorList   string
	Timeout     time.Duration
	RefreshCron string
	AWSRegion   string
}

type RecomputeConfig struct {
	// Rate is recomputes per second; 0 disables limiting.
	Rate  float64
	Burst int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "routeview"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sources: SourcesConfig{
			BlueRoutes:  getEnv("ROUTES_BLUE_URL", "data/cmd_kiki_none.yaml"),
			RedRoutes:   getEnv("ROUTES_RED_URL", "data/cmd_kiki_cf4_int.yaml"),
			Models:      getEnv("INVENTORY_MODEL_URL", "data/networkmodel.json"),
			Relations:   getEnv("INVENTORY_RELATION_URL", "data/networkmodelkanren.json"),
			ErrorList:   getEnv("INVENTORY_ERRORS_URL", "data/check.json"),
			Timeout:     getEnvAsDuration("SOURCE_TIMEOUT", 30*time.Second),
			RefreshCron: getEnv("ROUTES_REFRESH_CRON", ""),
			AWSRegion:   getEnv("AWS_REGION", ""),
		},
		Recompute: RecomputeConfig{
			Rate:  getEnvAsFloat("RECOMPUTE_RATE", 10),
			Burst: getEnvAsInt("RECOMPUTE_BURST", 20),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Sources.BlueRoutes == "" || c.Sources.RedRoutes == "" {
		return fmt.Errorf("ROUTES_BLUE_URL and ROUTES_RED_URL are required")
	}

	if c.Recompute.Rate < 0 {
		return fmt.Errorf("RECOMPUTE_RATE must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
