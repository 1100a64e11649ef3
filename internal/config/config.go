package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env            string     `yaml:"env" env:"ENV" env-default:"local"`
	Database       Database   `yaml:"database"`
	HTTPServer     HTTPServer `yaml:"http_server"`
	Auth           Auth       `yaml:"auth"`
	CORS           CORS       `yaml:"cors"`
	SeedSampleData Switch     `yaml:"seed_sample_data" env:"SEED_SAMPLE_DATA" env-default:"true"`
}

type Database struct {
	Host        string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port        int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User        string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password    string `yaml:"password" env:"DB_PASSWORD"`
	DBName      string `yaml:"dbname" env:"DB_NAME" env-default:"event_management"`
	SSLMode     string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	AutoMigrate Switch `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// Switch is a boolean setting that tells an explicit false apart from an
// unset value, so env-default only fills in the latter.
type Switch string

func (s *Switch) UnmarshalText(text []byte) error {
	b, err := strconv.ParseBool(string(text))
	if err != nil {
		return fmt.Errorf("invalid boolean %q", text)
	}

	*s = Switch(strconv.FormatBool(b))

	return nil
}

func (s Switch) On() bool {
	return s == "true"
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8000"`
	Timeout         time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"30m"`
	Issuer     string        `yaml:"issuer" env:"TOKEN_ISSUER" env-default:"event-manager"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}

	return nil
}

// DSN is the lib/pq key/value connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}
