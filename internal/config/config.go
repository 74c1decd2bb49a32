package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once at startup. Cloud mode
// is selected purely by the presence of DATABASE_URL.
type Config struct {
	Port          string
	GinMode       string
	LocalDBPath   string
	DatabaseURL   string // empty means local-only mode
	GeminiAPIKey  string
	GeminiModel   string
	JWTSecret     string
	TelegramToken string // empty disables study reminders
	ReminderHour  int
	AllowOrigins  []string
}

// Load reads .env (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	reminderHour := 19
	if raw := os.Getenv("REMINDER_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			reminderHour = h
		}
	}

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if raw := os.Getenv("ALLOW_ORIGIN"); raw != "" {
		origins = []string{raw}
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		LocalDBPath:   getEnvOrDefault("LOCAL_DB_PATH", "data/mindmentor.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "mind-mentor-dev-secret"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ReminderHour:  reminderHour,
		AllowOrigins:  origins,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
