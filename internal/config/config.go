package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"` // postgres | sqlite
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (optional: empty disables queue, pub/sub and cron)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// Reports
	ReportRecipient string `mapstructure:"REPORT_RECIPIENT"`
	ReportHour      int    `mapstructure:"REPORT_HOUR"`
	PDFStoragePath  string `mapstructure:"PDF_STORAGE_PATH"`

	// LAN
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	PublicURL      string `mapstructure:"PUBLIC_URL"`
	MDNSEnabled    bool   `mapstructure:"MDNS_ENABLED"`

	// Business
	SeedOnStart          bool            `mapstructure:"SEED_ON_START"`
	DefaultCommissionPct decimal.Decimal `mapstructure:"-"`
	ReposicionManicura   decimal.Decimal `mapstructure:"-"`
	ReposicionPedicura   decimal.Decimal `mapstructure:"-"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real env vars win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Sensible defaults for development
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 3)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "salonpos.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 12)
	v.SetDefault("JWT_REFRESH_HOURS", 72)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("REPORT_RECIPIENT", "")
	v.SetDefault("REPORT_HOUR", 8)
	v.SetDefault("PDF_STORAGE_PATH", "/tmp/salonpos/pdfs")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("PUBLIC_URL", "http://localhost:8000")
	v.SetDefault("MDNS_ENABLED", false)
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("DEFAULT_COMMISSION_PCT", "35")
	v.SetDefault("REPOSICION_MANICURA", "0.33")
	v.SetDefault("REPOSICION_PEDICURA", "0.50")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	var err error
	if cfg.DefaultCommissionPct, err = decimal.NewFromString(v.GetString("DEFAULT_COMMISSION_PCT")); err != nil {
		return nil, err
	}
	if cfg.ReposicionManicura, err = decimal.NewFromString(v.GetString("REPOSICION_MANICURA")); err != nil {
		return nil, err
	}
	if cfg.ReposicionPedicura, err = decimal.NewFromString(v.GetString("REPOSICION_PEDICURA")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
