package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	EmailProvider string

	// AWS / SES Configuration
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	SESFromEmail        string
	SESFromName         string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Notification channel APIs
	WhatsAppAPIURL string
	WhatsAppAPIKey string
	SMSAPIURL      string
	SMSAPIKey      string
	EmailAPIURL    string
	EmailAPIKey    string
	ChannelTimeout time.Duration

	// Gemini insight generation
	GeminiAPIKey  string
	GeminiModelID string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitPerSec    int
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		EmailProvider: getEnv("EMAIL_PROVIDER", "sendgrid"),

		AWSRegion:           getEnv("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		SESFromEmail:        getEnv("SES_FROM_EMAIL", "hey@hospiagent.in"),
		SESFromName:         getEnv("SES_FROM_NAME", "HospiAgent"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "HospiAgent"),

		WhatsAppAPIURL: getEnv("WHATSAPP_API_URL", ""),
		WhatsAppAPIKey: getEnv("WHATSAPP_API_KEY", ""),
		SMSAPIURL:      getEnv("SMS_API_URL", ""),
		SMSAPIKey:      getEnv("SMS_API_KEY", ""),
		EmailAPIURL:    getEnv("EMAIL_API_URL", ""),
		EmailAPIKey:    getEnv("EMAIL_API_KEY", ""),
		ChannelTimeout: getEnvAsDuration("CHANNEL_TIMEOUT", 10*time.Second),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),
		RateLimitPerSec:    getEnvAsInt("RATE_LIMIT_PER_SEC", 0),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnvAsSlice splits a comma-separated environment variable into values
func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
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
