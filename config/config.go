package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	SiteURL     string
	FrontendURL string
	// Extra CORS origins, comma separated
	AllowedOrigins []string
	// Content backend: "sanity", "postgres" or "file"
	ContentBackend string
	ContentFile    string
	DBUrl          string
	// Sanity content API
	SanityProjectID     string
	SanityDataset       string
	SanityAPIVersion    string
	SanityUseCDN        bool
	SanityAPIToken      string
	SanityWebhookSecret string
	// Max age of a webhook signature timestamp, 0 disables the check
	WebhookToleranceSeconds int
	ContentCacheTTLSeconds  int
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Notification channel: "log", "smtp" or "kafka"
	NotifyBackend string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Kafka Configuration
	KafkaBrokers      []string
	KafkaContactTopic string
	// HS256 secret for admin bearer tokens
	AdminJWTSecret string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    environment(),
		SiteURL:        strings.TrimRight(getEnv("SITE_URL", "https://bettercalljon.com"), "/"),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		ContentBackend: strings.ToLower(getEnv("CONTENT_BACKEND", "sanity")),
		ContentFile:    getEnv("CONTENT_FILE", "content/services.yaml"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		// Sanity
		SanityProjectID:         getEnv("SANITY_PROJECT_ID", getEnv("NEXT_PUBLIC_SANITY_PROJECT_ID", "")),
		SanityDataset:           getEnv("SANITY_DATASET", getEnv("NEXT_PUBLIC_SANITY_DATASET", "production")),
		SanityAPIVersion:        getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityUseCDN:            getEnvBool("SANITY_USE_CDN", environment() == "production"),
		SanityAPIToken:          getEnv("SANITY_API_TOKEN", ""),
		SanityWebhookSecret:     getEnv("SANITY_WEBHOOK_SECRET", ""),
		WebhookToleranceSeconds: getEnvInt("WEBHOOK_TOLERANCE_SECONDS", 300),
		ContentCacheTTLSeconds:  getEnvInt("CONTENT_CACHE_TTL_SECONDS", 3600),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Notifications
		NotifyBackend:     strings.ToLower(getEnv("NOTIFY_BACKEND", "log")),
		SMTPHost:          getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:     getEnv("SMTP_FROM_EMAIL", "noreply@bettercalljon.com"),
		ContactEmailTo:    getEnv("CONTACT_EMAIL_TO", "info@bettercalljon.com"),
		KafkaBrokers:      getEnvList("KAFKA_BROKERS"),
		KafkaContactTopic: getEnv("KAFKA_CONTACT_TOPIC", "contact-submissions"),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
	}

	if cfg.ContentBackend == "sanity" && cfg.SanityProjectID == "" {
		log.Println("WARNING: SANITY_PROJECT_ID is missing. Service catalogue will be empty.")
	}
	if cfg.ContentBackend == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Service catalogue will be empty.")
	}
	if cfg.SanityWebhookSecret == "" {
		log.Println("WARNING: SANITY_WEBHOOK_SECRET not configured. Revalidation webhooks will be rejected.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Cache and rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
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

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
