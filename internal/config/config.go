package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Режимы запуска.
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

// Драйверы хранилища.
const (
	StorageSQLX   = "sqlx"
	StorageGorm   = "gorm"
	StorageMemory = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"sqlx"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/migrations"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"3000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Токены доступа
	JWT struct {
		Secret string        `env:"JWT_SECRET"`
		TTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`
		Issuer string        `env:"JWT_ISSUER" envDefault:"movies-api"`
	}

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Redis для отозванных токенов; пусто — храним в памяти процесса
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
	}

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LoginRateLimit     int      `env:"LOGIN_RATE_LIMIT" envDefault:"10"` // запросов в минуту с одного IP

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"movie_events"`
	}

	// Настройки для MinIO (архив событий, нужен только воркеру)
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"movie-events"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`
}

// LoadConfig загружает конфигурацию из переменных окружения и проверяет её для режима mode.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig(mode string) (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	validate := cfg.Validate
	if mode == ModeWorker {
		// воркеру не нужны ни бд, ни токены
		validate = cfg.ValidateWorker
	}
	if err := validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет правила, которые не выражаются тегами.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageSQLX, StorageGorm:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL обязателен для STORAGE_DRIVER=%s", c.StorageDriver)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER: %q", c.StorageDriver)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET не может быть пустым")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL должен быть больше нуля")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST вне диапазона 4..31: %d", c.BcryptCost)
	}
	if c.LoginRateLimit < 0 {
		return errors.New("LOGIN_RATE_LIMIT не может быть отрицательным")
	}
	return nil
}

// ValidateWorker проверяет настройки, без которых воркер не запустится.
func (c *Config) ValidateWorker() error {
	if c.RabbitMQ.RabbitMQURL == "" {
		return errors.New("RABBITMQ_URL обязателен в режиме worker")
	}
	if c.MinioEndpoint == "" || c.MinioAccessKeyID == "" || c.MinioSecretAccessKey == "" {
		return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY обязательны в режиме worker")
	}
	return nil
}
