package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string

	// Chat endpoint rate limiting (requests/sec per IP; 0 disables)
	ChatRateLimit float64
	ChatRateBurst int

	// Clinic schedule settings
	ClinicTimezone     string
	WorkDayStart       string
	WorkDayEnd         string
	ScanStepMinutes    int
	GranularityMinutes int
	MaxSlotsPerDay     int
	MaxRangeDays       int

	// Sliding-fee estimator
	ProcedureMatchThreshold float64

	// Conversation sessions
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	// Google Calendar
	GoogleCalendarID          string
	GoogleCalendarCredentials string
	GoogleOAuthTokenPath      string

	// Gemini
	GeminiAPIKey  string
	GeminiModelID string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	StaffNotifyEmail  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),

		ChatRateLimit: getEnvAsFloat("CHAT_RATE_LIMIT", 0),
		ChatRateBurst: getEnvAsInt("CHAT_RATE_BURST", 5),

		ClinicTimezone:     getEnv("CLINIC_TIMEZONE", "America/Denver"),
		WorkDayStart:       getEnv("WORK_DAY_START", "08:00"),
		WorkDayEnd:         getEnv("WORK_DAY_END", "17:30"),
		ScanStepMinutes:    getEnvAsInt("SCAN_STEP_MINUTES", 15),
		GranularityMinutes: getEnvAsInt("SLOT_GRANULARITY_MINUTES", 30),
		MaxSlotsPerDay:     getEnvAsInt("MAX_SLOTS_PER_DAY", 10),
		MaxRangeDays:       getEnvAsInt("MAX_RANGE_DAYS", 30),

		ProcedureMatchThreshold: getEnvAsFloat("PROCEDURE_MATCH_THRESHOLD", 0.72),

		SessionTTL:           getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 15*time.Minute),

		GoogleCalendarID:          getEnv("GOOGLE_CALENDAR_ID", "primary"),
		GoogleCalendarCredentials: getEnv("GOOGLE_CALENDAR_CREDENTIALS", ""),
		GoogleOAuthTokenPath:      getEnv("GOOGLE_OAUTH_TOKEN", ""),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Utah Partners for Health"),
		StaffNotifyEmail:  getEnv("STAFF_NOTIFY_EMAIL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
