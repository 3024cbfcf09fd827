package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEmailAPIURL is the EmailJS REST send endpoint
const DefaultEmailAPIURL = "https://api.emailjs.com/api/v1.0/email/send"

type Config struct {
	Port     string
	SiteName string
	// Email provider (EmailJS) configuration
	Email EmailConfig
	// Return lower-level error text in the "details" field of 500 responses
	ExposeErrorDetails bool
	// Comma separated list, "*" allows any origin
	CORSAllowedOrigins []string
	// Serve the embedded contact page at "/"
	ServeForm bool
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// Logging Configuration
	Log LogConfig
}

// EmailConfig holds everything needed to authenticate to the email-delivery API
type EmailConfig struct {
	APIURL              string
	ServiceID           string
	NotifyTemplateID    string
	AutoReplyTemplateID string
	PublicKey           string
	PrivateKey          string
	Timeout             time.Duration
}

// LogConfig controls application log output
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func LoadConfig() (*Config, error) {
	// Load .env file (local development only, ignored when missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		SiteName: getEnv("SITE_NAME", "Our Team"),
		Email: EmailConfig{
			APIURL:              getEnv("EMAIL_API_URL", DefaultEmailAPIURL),
			ServiceID:           strings.TrimSpace(getEnv("EMAILJS_SERVICE_ID", "")),
			NotifyTemplateID:    strings.TrimSpace(getEnv("EMAILJS_TEMPLATE_ID", "")),
			AutoReplyTemplateID: strings.TrimSpace(getEnv("EMAILJS_AUTOREPLY_TEMPLATE_ID", "")),
			PublicKey:           strings.TrimSpace(getEnv("EMAILJS_PUBLIC_KEY", "")),
			PrivateKey:          strings.TrimSpace(getEnv("EMAILJS_PRIVATE_KEY", "")),
			Timeout:             time.Duration(getEnvInt("EMAIL_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		ExposeErrorDetails: getEnvBool("EXPOSE_ERROR_DETAILS", false),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ServeForm:          getEnvBool("SERVE_FORM", true),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Logging Configuration
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
		},
	}

	if missing := cfg.Email.Missing(); len(missing) > 0 {
		log.Printf("WARNING: %s not set. Contact submissions will be rejected.", strings.Join(missing, ", "))
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Missing returns the names of the environment variables whose values are absent
func (c EmailConfig) Missing() []string {
	var missing []string
	if c.ServiceID == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.NotifyTemplateID == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.AutoReplyTemplateID == "" {
		missing = append(missing, "EMAILJS_AUTOREPLY_TEMPLATE_ID")
	}
	if c.PublicKey == "" {
		missing = append(missing, "EMAILJS_PUBLIC_KEY")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "EMAILJS_PRIVATE_KEY")
	}
	return missing
}

// IsConfigured reports whether every identifier and key is present
func (c EmailConfig) IsConfigured() bool {
	return len(c.Missing()) == 0
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
