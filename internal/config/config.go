package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Log      Log      `yaml:"log"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Mongo    Mongo    `yaml:"mongo"`
	Temporal Temporal `yaml:"temporal"`
	Auth     Auth     `yaml:"auth"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"airline-booking"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"API_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	AllowedOrigin   string        `yaml:"allowed_origin" env:"HTTP_ALLOWED_ORIGIN" env-default:"*"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"airline"`
	SSLMode  string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
	MaxConns int32  `yaml:"max_conns" env:"POSTGRES_MAX_CONNS" env-default:"20"`
	// URL overrides the individual fields when set
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// DSN returns the connection string for pgx and gorm
func (p Postgres) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type Redis struct {
	Addr           string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password       string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env:"IDEMPOTENCY_TTL" env-default:"24h"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"orders-events"`
}

type Mongo struct {
	URI        string `yaml:"uri" env:"MONGODB_DSN" env-default:"mongodb://localhost:27017"`
	Database   string `yaml:"database" env:"MONGO_DB" env-default:"airline"`
	Collection string `yaml:"collection" env:"MONGO_AUDIT_COLLECTION" env-default:"order_audit"`
}

type Temporal struct {
	Host      string `yaml:"host" env:"TEMPORAL_HOST" env-default:"localhost:7233"`
	Namespace string `yaml:"namespace" env:"TEMPORAL_NAMESPACE" env-default:"default"`
	TaskQueue string `yaml:"task_queue" env:"TEMPORAL_TASK_QUEUE" env-default:"order-events"`
}

type Auth struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET" env-default:"change-me"`
	Issuer   string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"airline-booking"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"24h"`

	// Staff account ensured at server start when AdminEmail is set
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// New reads config.yaml when present, then the environment. A .env file in
// the working directory is loaded into the environment first.
func New() (*Config, error) {
	return Load("config.yaml")
}

// Load reads the given yaml file when it exists and applies env overrides
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}
