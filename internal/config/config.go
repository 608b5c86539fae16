package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	DBMaxConns     int    `env:"DB_MAX_CONNS" envDefault:"10"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Domain Config
	CapacityPerStaff      int      `env:"COVERAGE_CAPACITY_PER_STAFF" envDefault:"8"`
	IssueSLAHours         float64  `env:"ISSUE_SLA_HOURS" envDefault:"24"`
	TaskDefaultSLAMinutes int      `env:"TASK_DEFAULT_SLA_MINUTES" envDefault:"60"`
	ShiftTypes            []string `env:"SHIFT_TYPES" envDefault:"red,orange,green"`

	// Telemetry Config
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		DBMaxConns:            getEnvAsInt("DB_MAX_CONNS", 10),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		CapacityPerStaff:      getEnvAsInt("COVERAGE_CAPACITY_PER_STAFF", 8),
		IssueSLAHours:         getEnvAsFloat("ISSUE_SLA_HOURS", 24),
		TaskDefaultSLAMinutes: getEnvAsInt("TASK_DEFAULT_SLA_MINUTES", 60),
		ShiftTypes:            getEnvAsList("SHIFT_TYPES", []string{"red", "orange", "green"}),
		OTLPEndpoint:          os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:          os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
		APIKeys:               getEnvAsList("API_KEYS", nil),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет доменные константы
func (c *Config) Validate() error {
	if c.CapacityPerStaff <= 0 {
		return fmt.Errorf("COVERAGE_CAPACITY_PER_STAFF must be positive, got %d", c.CapacityPerStaff)
	}
	if c.IssueSLAHours <= 0 {
		return fmt.Errorf("ISSUE_SLA_HOURS must be positive, got %v", c.IssueSLAHours)
	}
	if c.TaskDefaultSLAMinutes <= 0 {
		return fmt.Errorf("TASK_DEFAULT_SLA_MINUTES must be positive, got %d", c.TaskDefaultSLAMinutes)
	}
	if len(c.ShiftTypes) == 0 {
		return fmt.Errorf("SHIFT_TYPES must list at least one shift type")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
