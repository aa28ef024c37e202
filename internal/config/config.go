// README: Config loader with env defaults for HTTP, DB, Redis, pricing, admin, handoff and viewer settings.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ViewersConfig struct {
	Tick  time.Duration
	Start int
	Min   int
	Max   int
}

type Config struct {
	HTTP struct {
		Addr        string
		GinMode     string
		CORSOrigins []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Pricing struct {
		RatesFile    string
		SurgeDefault bool
	}
	Session struct {
		TTL time.Duration
	}
	Admin struct {
		PasswordHash string
		Password     string
	}
	Handoff struct {
		WhatsAppNumber string
		FormURL        string
	}
	Maps struct {
		APIKey string
	}
	Viewers ViewersConfig
}

// Load reads an optional .env file and then the environment. Empty DB DSN or Redis address
// switch the corresponding stores off (ledger/handoff log) or to memory (prefs/sessions).
func Load() (Config, error) {
	if envFile := envOrDefault("WR_ENV_FILE", ".env"); envFile != "" {
		// Missing file is fine; real deployments set variables directly.
		_ = godotenv.Load(envFile)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WR_HTTP_ADDR", ":8080")
	cfg.HTTP.GinMode = envOrDefault("GIN_MODE", "release")
	cfg.HTTP.CORSOrigins = envOrDefaultList("WR_CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	cfg.DB.DSN = envOrDefault("WR_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("WR_REDIS_ADDR", "")
	cfg.Pricing.RatesFile = envOrDefault("WR_RATES_FILE", "")
	cfg.Pricing.SurgeDefault = envOrDefaultBool("WR_SURGE_DEFAULT", false)
	cfg.Session.TTL = envOrDefaultDuration("WR_SESSION_TTL", 24*time.Hour)
	cfg.Admin.PasswordHash = envOrDefault("WR_ADMIN_PASSWORD_HASH", "")
	cfg.Admin.Password = envOrDefault("WR_ADMIN_PASSWORD", "")
	cfg.Handoff.WhatsAppNumber = envOrDefault("WR_WHATSAPP_NUMBER", "919876543210")
	cfg.Handoff.FormURL = envOrDefault("WR_FORM_URL", "https://forms.gle/CL69KrpyP1LojWxa8")
	cfg.Maps.APIKey = envOrDefault("WR_MAPS_API_KEY", "")
	cfg.Viewers = ViewersConfig{
		Tick:  envOrDefaultDuration("WR_VIEWERS_TICK", 5*time.Second),
		Start: envOrDefaultInt("WR_VIEWERS_START", 3),
		Min:   envOrDefaultInt("WR_VIEWERS_MIN", 2),
		Max:   envOrDefaultInt("WR_VIEWERS_MAX", 8),
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
