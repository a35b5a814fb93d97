package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Environment       string        `mapstructure:"ENV"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR"`
	StorageDriver     string        `mapstructure:"STORAGE_DRIVER"`
	DBDSN             string        `mapstructure:"DB_DSN"`
	MongoURI          string        `mapstructure:"MONGO_URI"`
	MongoDB           string        `mapstructure:"MONGO_DB"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	TelegramToken     string        `mapstructure:"TELEGRAM_TOKEN"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	RateLimit         float64       `mapstructure:"RATE_LIMIT"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	MigrationsPath    string        `mapstructure:"MIGRATIONS_PATH"`
	SyncTimeout       time.Duration `mapstructure:"SYNC_TIMEOUT"`
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`
}

func Load() (*Config, error) {
	// .env необязателен, в контейнере всё приходит через окружение
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из переменных окружения, подставляя значения по умолчанию
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:    getenv("ENV"),
		HTTPAddr:       getenv("HTTP_ADDR"),
		StorageDriver:  getenv("STORAGE_DRIVER"),
		DBDSN:          getenv("DB_DSN"),
		MongoURI:       getenv("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB"),
		RedisAddr:      getenv("REDIS_ADDR"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		JWTSecret:      getenv("JWT_SECRET"),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "artist_booking"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	var err error
	if cfg.RateLimit, err = parseFloat(getenv("RATE_LIMIT"), 20); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.SyncTimeout, err = parseDuration(getenv("SYNC_TIMEOUT"), 5*time.Second); err != nil {
		return nil, fmt.Errorf("SYNC_TIMEOUT: %w", err)
	}
	if cfg.ReconcileInterval, err = parseDuration(getenv("RECONCILE_INTERVAL"), 0); err != nil {
		return nil, fmt.Errorf("RECONCILE_INTERVAL: %w", err)
	}
	cfg.CORSOrigins = splitList(getenv("CORS_ORIGINS"))

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded (storage: %s)\n", cfg.StorageDriver)

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required but not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseFloat(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}

func splitList(raw string) []string {
	var res []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
