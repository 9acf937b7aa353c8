package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	ResetTokenTTL  time.Duration
	UploadDir      string
	UploadMaxBytes int64
	PublicOrigin   string
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/loopline"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:       getDuration("TOKEN_TTL", 72*time.Hour),
		ResetTokenTTL:  getDuration("RESET_TOKEN_TTL", 15*time.Minute),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes: getInt64("UPLOAD_MAX_BYTES", 5<<20),
		PublicOrigin:   getEnv("PUBLIC_ORIGIN", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
