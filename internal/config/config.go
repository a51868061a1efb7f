package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config is loaded once at startup and passed explicitly to whatever
// needs it. Handlers never read the environment per request.
type Config struct {
	Port        string
	DatabaseURL string

	// CalendlySecret empty means signature verification is skipped.
	// That is a deliberate local/dev convenience, not a default to run
	// in production; Load warns loudly when it is unset.
	CalendlySecret string

	StripeAPIKey     string
	StripeSuccessURL string
	StripeCancelURL  string

	// RabbitURL empty disables lead notifications entirely.
	RabbitURL      string
	MailHost       string
	MailPort       int
	MailUser       string
	MailPassword   string
	OpsNotifyEmail string

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CalendlySecret:   os.Getenv("CALENDLY_WEBHOOK_SECRET"),
		StripeAPIKey:     os.Getenv("STRIPE_API_KEY"),
		StripeSuccessURL: getEnv("STRIPE_SUCCESS_URL", "https://console.tutorhub.app/invoices?paid=1"),
		StripeCancelURL:  getEnv("STRIPE_CANCEL_URL", "https://console.tutorhub.app/invoices"),
		RabbitURL:        os.Getenv("RABBITMQ_URL"),
		MailHost:         os.Getenv("MAIL_HOST"),
		MailPort:         getEnvInt("MAIL_PORT", 587),
		MailUser:         os.Getenv("MAIL_USER"),
		MailPassword:     os.Getenv("MAIL_PASS"),
		OpsNotifyEmail:   os.Getenv("OPS_NOTIFY_EMAIL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	if cfg.CalendlySecret == "" {
		log.Printf("WARNING: CALENDLY_WEBHOOK_SECRET not set, webhook signature verification is DISABLED")
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("WARNING: %s=%q is not a number, using %d", key, v, fallback)
	}
	return fallback
}
