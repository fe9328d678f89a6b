package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Docstore drivers selectable through DOCSTORE_DRIVER.
const (
	DriverPostgres  = "postgres"
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	DocstoreDriver string    `env:"DOCSTORE_DRIVER" envDefault:"postgres"`
	DBUrl          string    `env:"DATABASE_URL"`
	Mongo          Mongo     `envPrefix:"MONGO_"`
	Firebase       Firebase  `envPrefix:"FIREBASE_"`
	Redis          Redis     `envPrefix:"UPSTASH_REDIS_"`
	RateLimit      RateLimit `envPrefix:"RATE_LIMIT_"`
	FailedLogin    FailedLogin

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type Mongo struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"jobboard"`
}

// Firebase mirrors the service-account key fields.
type Firebase struct {
	ProjectID    string `env:"PROJECT_ID"`
	PrivateKeyID string `env:"PRIVATE_KEY_ID"`
	PrivateKey   string `env:"PRIVATE_KEY"`
	ClientEmail  string `env:"CLIENT_EMAIL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientCert   string `env:"CLIENT_X509_CERT_URL"`
}

type Redis struct {
	URL      string `env:"URL"`
	Password string `env:"PASSWORD"`
}

type RateLimit struct {
	WindowSeconds   int `env:"WINDOW_SECONDS" envDefault:"60"`
	LoginThreshold  int `env:"LOGIN_THRESHOLD" envDefault:"10"`
	GlobalThreshold int `env:"GLOBAL_THRESHOLD" envDefault:"100"`
}

type FailedLogin struct {
	BlockMinutes  int `env:"FAILED_LOGIN_BLOCK_MINUTES" envDefault:"15"`
	WindowMinutes int `env:"FAILED_LOGIN_WINDOW_MINUTES" envDefault:"15"`
	MaxAttempts   int `env:"FAILED_LOGIN_MAX_ATTEMPTS" envDefault:"5"`
}

func (r RateLimit) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func (f FailedLogin) BlockDuration() time.Duration {
	return time.Duration(f.BlockMinutes) * time.Minute
}

// AttemptWindow is how long failed attempts keep counting toward a block.
func (f FailedLogin) AttemptWindow() time.Duration {
	return time.Duration(f.WindowMinutes) * time.Minute
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.DocstoreDriver = strings.ToLower(strings.TrimSpace(cfg.DocstoreDriver))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DocstoreDriver {
	case DriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.DocstoreDriver)
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s driver", c.DocstoreDriver)
		}
	case DriverFirestore:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the %s driver", c.DocstoreDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.DocstoreDriver)
	}

	if c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	return nil
}
