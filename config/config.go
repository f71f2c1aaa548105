package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Daraja   DarajaConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8099"`
	Env          string        `envconfig:"ENV" default:"development"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	DSN             string        `envconfig:"DATABASE_DSN" default:"homehub:homehub@tcp(localhost:3306)/homehub?charset=utf8mb4&parseTime=True&loc=Local"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"change-me-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"homehub"`
}

// DarajaConfig holds the M-Pesa STK push credentials. It is injected into the
// gateway provider at construction and never read from ambient state.
type DarajaConfig struct {
	BaseURL           string        `envconfig:"DARAJA_BASE_URL" default:"https://sandbox.safaricom.co.ke"`
	ConsumerKey       string        `envconfig:"DARAJA_CONSUMER_KEY"`
	ConsumerSecret    string        `envconfig:"DARAJA_CONSUMER_SECRET"`
	BusinessShortcode string        `envconfig:"DARAJA_SHORTCODE" default:"174379"`
	Passkey           string        `envconfig:"DARAJA_PASSKEY"`
	CallbackBaseURL   string        `envconfig:"DARAJA_CALLBACK_BASE_URL"` // e.g. https://yourdomain.com - callback will be CallbackBaseURL + /api/v1/webhooks/mpesa
	Timeout           time.Duration `envconfig:"DARAJA_TIMEOUT" default:"30s"`
}

// Load reads .env (if present) then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[CONFIG] no .env file found, relying on system env")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.JWT); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Daraja); err != nil {
		return nil, err
	}
	return &cfg, nil
}
