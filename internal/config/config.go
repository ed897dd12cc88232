package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// LevelForEnvironment maps APP_ENV to the log level used by every logger of the service
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string   `json:"environment"`
	Port        int      `json:"port"`
	Host        string   `json:"host"`
	CORSOrigins []string `json:"cors_origins"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`
	DBPath      string `json:"db_path"`
	SeedCatalog bool   `json:"seed_catalog"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret     string `json:"jwt_secret"`
	SessionSecret string `json:"session_secret"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, CORSOrigins: %v, DBDriver: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBSSLMode: %s, DBPath: %s, SeedCatalog: %t, LogLevel: %s, JWTSecret: [REDACTED], SessionSecret: [REDACTED]}",
		c.Environment, c.Port, c.Host, c.CORSOrigins, c.DBDriver, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBSSLMode, c.DBPath, c.SeedCatalog, c.LogLevel)
}

// Database returns the connection parameters handed to database.InitDatabase
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if a variable is present but invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbPort := GetEnvWithDefault("DB_PORT", "5432")
	if _, err := strconv.Atoi(dbPort); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: postgres, sqlite)", driver)
	}

	config := &Config{
		Environment:   GetEnvWithDefault("APP_ENV", "development"),
		Port:          port,
		Host:          GetEnvWithDefault("APP_HOST", "localhost"),
		CORSOrigins:   splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		DBDriver:      driver,
		DBHost:        GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:        dbPort,
		DBName:        GetEnvWithDefault("DB_NAME", "pizzeria"),
		DBUser:        GetEnvWithDefault("DB_USER", "pizzeria"),
		DBPassword:    GetEnvWithDefault("DB_PASSWORD", ""),
		DBSSLMode:     GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:        GetEnvWithDefault("DB_PATH", "pizzeria.sqlite"),
		SeedCatalog:   GetEnvAsType("DB_SEED_CATALOG", true),
		LogLevel:      GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:     GetEnvWithDefault("JWT_SECRET", "secret"),
		SessionSecret: GetEnvWithDefault("SESSION_SECRET", "session-secret"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
