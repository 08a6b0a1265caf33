package session

import (
	"os"
	"strconv"
	"time"

	"github.com/schoolerp/session/emailjs"
)

// Config holds the environment-driven settings for the session core.
type Config struct {
	SessionTimeout time.Duration
	CheckInterval  time.Duration
	FrontendURL    string
	LoginPath      string
	DefaultPath    string
	EmailJS        emailjs.Config
}

// LoadConfig reads configuration from environment variables, falling
// back to defaults.
func LoadConfig() Config {
	return Config{
		SessionTimeout: time.Duration(envInt("SESSION_TIMEOUT_MIN", 30)) * time.Minute,
		CheckInterval:  time.Duration(envInt("SESSION_CHECK_INTERVAL_SEC", 10)) * time.Second,
		FrontendURL:    os.Getenv("FRONTEND_URL"),
		LoginPath:      envOr("LOGIN_PATH", defaultLoginPath),
		DefaultPath:    envOr("DEFAULT_PATH", defaultLandingPath),
		EmailJS: emailjs.Config{
			ServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
			TemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
			PublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
