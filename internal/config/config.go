package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string
	Env  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AdminUser     string
	AdminPass     string
	SessionSecret string

	UploadDir   string
	MaxUploadMB int
}

func Load() Config {
	return Config{
		Port: getenv("APP_PORT", "5000"),
		Env:  getenv("APP_ENV", "development"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "employees"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPass:     getenv("ADMIN_PASS", "admin123"),
		SessionSecret: getenv("SECRET_KEY", "dev-secret-change-me"),

		UploadDir:   getenv("UPLOAD_FOLDER", "uploads"),
		MaxUploadMB: getenvInt("MAX_CONTENT_LENGTH_MB", 20),
	}
}

func (c Config) IsProd() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
