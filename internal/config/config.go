package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Backend   BackendConfig
	Terminal  TerminalConfig
	Session   SessionConfig
	Worker    WorkerConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// BackendConfig points at the document-store backend the service submits
// orders and payments to.
type BackendConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// TerminalConfig carries the credentials POS terminals authenticate with.
// SecretHash is a bcrypt hash of the shared terminal secret.
type TerminalConfig struct {
	SecretHash string
}

// SessionConfig bounds the in-memory session store. Sessions idle for
// longer than MaxIdle are pruned every PruneInterval.
type SessionConfig struct {
	MaxIdle       time.Duration
	PruneInterval time.Duration
}

// WorkerConfig controls the pending-submission reconciliation worker.
type WorkerConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
}

// PrinterConfig selects the receipt printer. Type is "usb", "network", or
// "none".
type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_API_KEY", "")
	viper.SetDefault("BACKEND_API_SECRET", "")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("TERMINAL_SECRET_HASH", "")
	viper.SetDefault("SESSION_MAX_IDLE_SECONDS", 3600)
	viper.SetDefault("SESSION_PRUNE_INTERVAL_SECONDS", 300)
	viper.SetDefault("WORKER_POLL_INTERVAL_SECONDS", 30)
	viper.SetDefault("WORKER_MAX_ATTEMPTS", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Backend: BackendConfig{
			BaseURL:   viper.GetString("BACKEND_BASE_URL"),
			APIKey:    viper.GetString("BACKEND_API_KEY"),
			APISecret: viper.GetString("BACKEND_API_SECRET"),
			Timeout:   time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Terminal: TerminalConfig{
			SecretHash: viper.GetString("TERMINAL_SECRET_HASH"),
		},
		Session: SessionConfig{
			MaxIdle:       time.Duration(viper.GetInt("SESSION_MAX_IDLE_SECONDS")) * time.Second,
			PruneInterval: time.Duration(viper.GetInt("SESSION_PRUNE_INTERVAL_SECONDS")) * time.Second,
		},
		Worker: WorkerConfig{
			PollInterval: time.Duration(viper.GetInt("WORKER_POLL_INTERVAL_SECONDS")) * time.Second,
			MaxAttempts:  viper.GetInt("WORKER_MAX_ATTEMPTS"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
