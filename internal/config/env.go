package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	JWTSecret   string
	TokenTTLHrs int

	// FarePerTicket drives the suggested payment amount on approval
	// (approved count times fare). Staff still set the final amount.
	FarePerTicket float64

	RedisAddr string
	AmqpURL   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "yatrasathi"),

		JWTSecret:   getenv("JWT_SECRET", "change-me-in-prod"),
		TokenTTLHrs: getenvInt("TOKEN_TTL_HOURS", 24),

		FarePerTicket: getenvFloat("FARE_PER_TICKET", 500),

		RedisAddr: getenv("REDIS_ADDR", ""),
		AmqpURL:   getenv("RABBITMQ_URL", ""),

		SMTPHost: getenv("SMTP_HOST", ""),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: getenv("SMTP_USERNAME", ""),
		SMTPPass: getenv("SMTP_PASSWORD", ""),
		SMTPFrom: getenv("SMTP_FROM", ""),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
