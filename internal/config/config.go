package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	APIBaseURL    string
	APIBotID      int
	APITimeout    time.Duration
	APIMaxRetries int
	DBPath        string
	OpsPort       string
	Env           string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		APIBaseURL:    os.Getenv("API_URL"),
		APIBotID:      envInt("API_BOT_ID", 25590),
		APITimeout:    time.Duration(envInt("API_TIMEOUT", 30)) * time.Second,
		APIMaxRetries: envInt("API_MAX_RETRIES", 3),
		DBPath:        os.Getenv("DB_PATH"),
		OpsPort:       os.Getenv("OPS_PORT"),
		Env:           os.Getenv("ENV"),
	}

	// Default values
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.pro-talk.ru/api/v1.0/ask"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "companies.db"
	}
	if cfg.OpsPort == "" {
		cfg.OpsPort = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}
