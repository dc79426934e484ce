package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config carries everything both binaries need. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	HTTPAddr  string
	DBURL     string
	RedisURL  string
	JWTSecret string
	ClientURL string

	LogLevel  string
	LogFormat string

	WorkerConcurrency int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; containers set real env vars.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("SMTP_PORT", 587)

	cfg := &Config{
		HTTPAddr:          viper.GetString("HTTP_ADDR"),
		DBURL:             viper.GetString("DB_URL"),
		RedisURL:          viper.GetString("REDIS_URL"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		ClientURL:         viper.GetString("CLIENT_URL"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
		LogFormat:         viper.GetString("LOG_FORMAT"),
		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),
		SMTPHost:          viper.GetString("EMAIL_HOST"),
		SMTPPort:          viper.GetInt("SMTP_PORT"),
		SMTPUser:          viper.GetString("EMAIL_USER"),
		SMTPPassword:      viper.GetString("EMAIL_PASSWORD"),
		EmailFrom:         viper.GetString("EMAIL_FROM"),
	}

	if cfg.DBURL == "" {
		return nil, errors.New("config: DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	return cfg, nil
}

// NewLogger builds the shared logger from the configured level and format.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	return logger
}
