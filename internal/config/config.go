package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Minio    MinioConfig
	Link     LinkConfig
	Upload   UploadConfig
	Sweep    SweepConfig
	NATS     NATSConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// StorageConfig selects the blob storage variant once at process start
type StorageConfig struct {
	Provider  string `envconfig:"STORAGE_PROVIDER" default:"minio"` // minio | local
	LocalPath string `envconfig:"STORAGE_LOCAL_PATH" default:"/var/lib/share-safely/files"`
}

type MinioConfig struct {
	Endpoint                  string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName                string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey                 string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey                 string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	DownloadSignedURLDuration time.Duration `envconfig:"MINIO_DOWNLOAD_SIGNED_URL_DURATION" default:"15m"`
	UseSSL                    bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type LinkConfig struct {
	MaxTTLMinutes int    `envconfig:"LINK_MAX_TTL_MINUTES" default:"1440"`
	BaseURL       string `envconfig:"LINK_BASE_URL" default:"http://localhost:8080"`
}

type UploadConfig struct {
	MaxSizeBytes      int64    `envconfig:"UPLOAD_MAX_SIZE_BYTES" default:"104857600"` // 100MB
	AllowedExtensions []string `envconfig:"UPLOAD_ALLOWED_EXTENSIONS" default:".pdf,.docx,.xlsx,.pptx,.txt,.csv,.jpg,.jpeg,.png,.gif,.zip"`
}

type SweepConfig struct {
	Every time.Duration `envconfig:"SWEEP_EVERY" default:"1h"`
}

type NATSConfig struct {
	Enabled    bool   `envconfig:"NATS_ENABLED" default:"false"`
	URL        string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	StreamName string `envconfig:"NATS_STREAM_NAME" default:"ACCESS_EVENTS"`
	Subject    string `envconfig:"NATS_SUBJECT" default:"access.events"`
	ClientName string `envconfig:"NATS_CLIENT_NAME" default:"share-safely-api"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
