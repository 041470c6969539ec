package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultJWTSecret     = "change-me"
	defaultAdminPassword = "admin123"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	FrontendURL   string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "5000"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/cms_db?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

// Warnings reports insecure defaults in the loaded configuration. It only
// detects; the caller decides whether to log, abort, or ignore.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.JWTSecret == defaultJWTSecret {
		warnings = append(warnings, "using default JWT_SECRET, change this in production")
	}
	if c.AdminPassword == defaultAdminPassword {
		warnings = append(warnings, "using default ADMIN_PASSWORD, change this in production")
	}
	if os.Getenv("MYSQL_DSN") == "" {
		warnings = append(warnings, fmt.Sprintf("MYSQL_DSN not set, using default %q", c.MySQLDSN))
	}
	return warnings
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
