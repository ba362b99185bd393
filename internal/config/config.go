package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, read once from the environment at startup.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	JWTExpiry time.Duration

	FloorBandMin float64
	FloorBandMax float64
	FloorMinimum float64

	ClampNegativeNet    bool
	LoyaltyRedeemPoints int

	LogLevel string
}

func Load() Config {
	port := os.Getenv("CARWASH_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CARWASH_DB_PATH")
	if dbPath == "" {
		dbPath = "data/carwash.db"
	}

	secret := os.Getenv("CARWASH_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	logLevel := os.Getenv("CARWASH_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Port:                port,
		DBPath:              dbPath,
		JWTSecret:           secret,
		JWTExpiry:           readDurationHours("CARWASH_JWT_EXPIRY_HOURS", 24),
		FloorBandMin:        readFloat("CARWASH_FLOOR_BAND_MIN", 35),
		FloorBandMax:        readFloat("CARWASH_FLOOR_BAND_MAX", 55),
		FloorMinimum:        readFloat("CARWASH_FLOOR_MINIMUM", 12),
		ClampNegativeNet:    readBool("CARWASH_CLAMP_NEGATIVE_NET", false),
		LoyaltyRedeemPoints: readInt("CARWASH_LOYALTY_REDEEM_POINTS", 10),
		LogLevel:            logLevel,
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDurationHours(key string, fallback int) time.Duration {
	return time.Duration(readInt(key, fallback)) * time.Hour
}
