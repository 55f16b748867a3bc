package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

const DefaultDatabaseURL = "sqlite:blog.db?_foreign_keys=on&_busy_timeout=5000"

type DB struct {
	URL          string
	MaxOpenConns int
	AutoMigrate  bool
}

type Session struct {
	CookieName   string
	Lifetime     time.Duration
	IdleTimeout  time.Duration
	CookieSecure bool
}

type Config struct {
	ServerPort        int
	DB                DB
	Session           Session
	SecretKey         string
	CSRFTokenDuration time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		URL:          getEnv("DATABASE_URL", DefaultDatabaseURL),
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		AutoMigrate:  getEnvBool("AUTO_MIGRATE", false),
	}
}

func LoadSession() Session {
	return Session{
		CookieName:   getEnv("SESSION_COOKIE_NAME", "blog_session"),
		Lifetime:     parseDuration(getEnv("SESSION_LIFETIME", "720h"), 720*time.Hour),
		IdleTimeout:  parseDuration(getEnv("SESSION_IDLE_TIMEOUT", "12h"), 12*time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:        getEnvAsInt("SERVER_PORT", 8080),
		DB:                LoadDB(),
		Session:           LoadSession(),
		SecretKey:         getEnv("SECRET_KEY", ""),
		CSRFTokenDuration: parseDuration(getEnv("CSRF_TOKEN_DURATION", "2h"), 2*time.Hour),
	}
}
