package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage modes.
const (
	StoragePostgres = "postgres"
	StorageLocal    = "local"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Quotedesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"quotedesk"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Storage struct {
		Mode      string `envconfig:"STORAGE_MODE" default:"postgres"`
		CachePath string `envconfig:"CACHE_PATH" default:"data/quotedesk.db"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"INFO"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
		File   string `envconfig:"LOG_FILE" default:"quotedesk.log"`
	}

	Export struct {
		Header string `envconfig:"QUOTE_HEADER"`
		Dir    string `envconfig:"QUOTE_DIR" default:"quotes"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Mode {
	case StoragePostgres, StorageLocal:
	default:
		return nil, fmt.Errorf("invalid STORAGE_MODE %q: want %s or %s", cfg.Storage.Mode, StoragePostgres, StorageLocal)
	}

	return &cfg, nil
}
