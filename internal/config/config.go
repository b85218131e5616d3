package config

import (
	"os"
	"time"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string

	JWT struct {
		Secret     string
		AccessTTL  time.Duration
		RefreshTTL time.Duration
	}

	Stripe struct {
		SecretKey     string
		WebhookSecret string
		SuccessURL    string
		CancelURL     string
	}

	R2 struct {
		AccountID       string
		AccessKeyID     string
		SecretAccessKey string
		Bucket          string
		PublicURL       string
	}

	Email struct {
		ResendAPIKey string
		FromAddress  string
		FromName     string
	}

	ShareBaseURL string

	// AllowAnonymousEvents: açıksa POST /events anonim isteklere de izin verir,
	// event sahipsiz (created_by NULL) kaydedilir. Deployment'a göre değişir.
	AllowAnonymousEvents bool
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "development")
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.AccessTTL = getDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	cfg.JWT.RefreshTTL = getDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour)

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.SuccessURL = getEnv("STRIPE_SUCCESS_URL", "https://whtzup.app/premium/success?session_id={CHECKOUT_SESSION_ID}")
	cfg.Stripe.CancelURL = getEnv("STRIPE_CANCEL_URL", "https://whtzup.app/premium/cancel")

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "WhtzUp")

	cfg.ShareBaseURL = getEnv("SHARE_BASE_URL", "https://whtzup.app/e/")

	cfg.AllowAnonymousEvents = os.Getenv("ALLOW_ANONYMOUS_EVENTS") == "true"

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
