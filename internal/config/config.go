package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host          string `yaml:"host"`
		Port          int    `yaml:"port"`
		Env           string `yaml:"env"`
		AllowedOrigin string `yaml:"allowed_origin"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	Cookie struct {
		Name   string `yaml:"name"`
		Secure bool   `yaml:"secure"`
		MaxAge int    `yaml:"max_age"` // seconds
	} `yaml:"cookie"`

	Email struct {
		SMTPHost       string `yaml:"smtp_host"`
		SMTPPort       int    `yaml:"smtp_port"`
		SMTPUsername   string `yaml:"smtp_user"`
		SMTPPassword   string `yaml:"smtp_password"`
		FromEmail      string `yaml:"from_email"`
		FromName       string `yaml:"from_name"`
		SendTimeoutSec int    `yaml:"send_timeout"` // seconds
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// TokenTTL returns the session token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

// EmailSendTimeout returns the bound on a single outbound email send
func (c *Config) EmailSendTimeout() time.Duration {
	return time.Duration(c.Email.SendTimeoutSec) * time.Second
}

// Load builds the configuration object. When DATABASE_URL is set (tests, CI)
// everything comes from environment variables; otherwise the yaml file at
// CONFIG_PATH (default config/config.yaml) is parsed. The result is passed
// explicitly to the components that need it; there is no ambient config
// global.
func Load() (*Config, error) {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}

		cfg.applyDefaults()
		return &cfg, nil
	}

	// Environment mode (tests)
	cfg.Database.DSN = dbURL
	cfg.Database.Driver = getEnv("DATABASE_DRIVER", "postgres")
	cfg.Server.Env = getEnv("SERVER_ENV", "test")
	cfg.Server.Port, _ = strconv.Atoi(getEnv("SERVER_PORT", "4000"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLMinutes = 60

	cfg.Email.FromEmail = "noreply@carpicks.test"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploadImage"

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = "http://localhost:3000"
	}
	if c.JWT.TTLMinutes <= 0 {
		c.JWT.TTLMinutes = 60
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = "jwt"
	}
	if c.Cookie.MaxAge <= 0 {
		c.Cookie.MaxAge = 3600 // 1 hour
	}
	if c.Email.SendTimeoutSec <= 0 {
		c.Email.SendTimeoutSec = 10
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "./uploads"
	}
	if c.Storage.BaseURL == "" {
		c.Storage.BaseURL = "/uploadImage"
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
