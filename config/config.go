package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// PublicBaseURL is the externally reachable base URL of this service,
	// used to build logo URLs embedded into the offer email.
	PublicBaseURL string
	// AllowedOrigins is a comma-separated whitelist for CORS.
	AllowedOrigins []string
	StaticDir      string
	UploadDir      string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Offer mail dispatch
	OfferEmailTo      string
	OfferEmailSubject string
	// Pricing parameters, injected so deployments can reprice without a
	// code change.
	PricePerSqm           float64
	SpecialShapeSurcharge float64
	MaxLogoSizeBytes      int64
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitOfferThreshold  int
	RateLimitGlobalThreshold int
	// Redis/Upstash Configuration (optional, in-memory fallback otherwise)
	UpstashRedisURL      string
	UpstashRedisPassword string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		StaticDir:      getEnv("STATIC_DIR", "web/static"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "no-reply@localhost"),
		// Offer mail dispatch
		OfferEmailTo:      getEnv("OFFER_EMAIL_TO", ""),
		OfferEmailSubject: getEnv("OFFER_EMAIL_SUBJECT", "Neue Fußmatten-Anfrage"),
		// Pricing parameters
		PricePerSqm:           getEnvFloat("PRICE_PER_SQM", 55),
		SpecialShapeSurcharge: getEnvFloat("SPECIAL_SHAPE_SURCHARGE", 0.2),
		MaxLogoSizeBytes:      getEnvInt64("MAX_LOGO_SIZE_BYTES", 5*1024*1024),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitOfferThreshold:  getEnvInt("RATE_LIMIT_OFFER_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
	}

	if cfg.OfferEmailTo == "" {
		log.Println("WARNING: OFFER_EMAIL_TO is missing. Offer submissions cannot be dispatched.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
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

// getEnvInt64 returns an int64 environment variable or fallback if not set/invalid
func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
