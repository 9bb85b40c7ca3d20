package config

import (
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	AppHost     string
	AppPort     string
	FrontendURL string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	JWTSecret    string
	PublicKeyURL string

	RedisAddr    string
	RedisPass    string
	RedisDB      int
	RedisChannel string

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel string
	LogDir   string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() AppConfig {
	return AppConfig{
		AppHost:     getEnv("APP_HOST", "0.0.0.0"),
		AppPort:     getEnv("APP_PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBDatabase: getEnv("DB_DATABASE", "parcel_tracking"),
		DBUsername: getEnv("DB_USERNAME", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		PublicKeyURL: getEnv("PUBLIC_KEY_URL", ""),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisPass:    getEnv("REDIS_PASS", ""),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisChannel: getEnv("REDIS_CHANNEL", "parcel_notifications"),

		KafkaBrokers: parseCSVEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "parcel-status-events"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "log/app"),
	}
}

// ListenAddr is the host:port pair handed to fiber.
func (c AppConfig) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseCSVEnv(key, fallback string) []string {
	val := getEnv(key, fallback)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
