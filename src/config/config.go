package config

import (
	"fmt"
	"os"
)

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// GetDSN builds the postgres connection string. Only used when
// DATABASE_DRIVER=postgres; the default store is an in-memory sqlite
// database (see GetSqliteDSN).
func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func GetDatabaseDriver() string {
	return getEnv("DATABASE_DRIVER", "sqlite")
}

func GetSqliteDSN() string {
	return getEnv("SQLITE_DSN", "file::memory:?cache=shared")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetRedisHost() string {
	return getEnv("REDIS_HOST", "redis://localhost:6379")
}

func GetTempDir() string {
	return getEnv("TEMP_DIR", os.TempDir())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
