package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort          string
	MaxFileSize         int64
	MinTextLength       int
	RawTextPreviewLimit int
}

func LoadConfig() *Config {
	// A missing .env is fine; environment variables still apply.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:          envString("SERVER_PORT", "8080"),
		MaxFileSize:         envInt64("MAX_FILE_SIZE", 10*1024*1024),
		MinTextLength:       envInt("MIN_TEXT_LENGTH", 40),
		RawTextPreviewLimit: envInt("RAW_TEXT_PREVIEW_LIMIT", 2000),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
	}
	return fallback
}
