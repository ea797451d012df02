package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	BackendPinata = "pinata"
	BackendS3     = "s3"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	ResetTTL   time.Duration `env:"RESET_TTL,   default=15m"`
	DBDriver   string        `env:"DB_DRIVER,   default=mongo"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Mail    MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=deliverynotes"`
}

// RedisConfig is optional: an empty Addr disables the upload cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,         default=0"`
	CacheTTL time.Duration `env:"UPLOAD_CACHE_TTL, default=24h"`
}

type StorageConfig struct {
	Backend       string        `env:"STORAGE_BACKEND,      default=pinata"`
	GatewayHost   string        `env:"STORAGE_GATEWAY_HOST, default=gateway.pinata.cloud"`
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT,       default=30s"`

	PinataJWT    string `env:"PINATA_JWT"`
	PinataAPIURL string `env:"PINATA_API_URL, default=https://api.pinata.cloud"`

	S3Region          string `env:"S3_REGION, default=eu-west-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
}

type MailConfig struct {
	Workers int    `env:"MAIL_WORKERS, default=2"`
	From    string `env:"MAIL_FROM,    default=no-reply@albaranes.local"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads .env.<ENV> (or .env) when present and then the process
// environment. Variables already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}
	if err := godotenv.Load(".env." + env); err != nil {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.Storage.Backend {
	case BackendPinata:
		if c.Storage.PinataJWT == "" && !c.IsDevelopment() {
			return errors.New("config: PINATA_JWT is required for the pinata backend")
		}
	case BackendS3:
		if c.Storage.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}
