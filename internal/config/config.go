package config

import (
	"crypto/sha256"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecret = "default-secret-key-change-in-production"

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	DataDir     string
	StoreDriver string
	DBUrl       string
	SecretKey   string
	SessionTTL  time.Duration
	RateLimit   float64
	RateBurst   int
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using defaults")
	}

	return Config{
		Port:        getEnv("PORT", "8888"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DataDir:     getEnv("DATA_DIR", "data"),
		StoreDriver: getEnv("STORE_DRIVER", "json"),
		DBUrl:       os.Getenv("DB_URL"),
		SecretKey:   getEnv("SECRET_KEY", defaultSecret),
		SessionTTL:  getDuration("SESSION_TTL", 24*time.Hour),
		RateLimit:   getFloat("RATE_LIMIT", 10),
		RateBurst:   getInt("RATE_BURST", 20),
	}
}

// UsesDefaultSecret reports whether SECRET_KEY was left unset.
func (c Config) UsesDefaultSecret() bool {
	return c.SecretKey == defaultSecret
}

// CSRFKey derives the 32-byte form token key from SECRET_KEY.
func (c Config) CSRFKey() []byte {
	sum := sha256.Sum256([]byte("csrf:" + c.SecretKey))
	return sum[:]
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
