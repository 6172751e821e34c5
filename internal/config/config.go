package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	NotifierLog    = "log"
	NotifierMailer = "mailer"
	NotifierRedis  = "redis"

	// envMailerAPIKey переопределяет mailer.api_key, чтобы не хранить ключ в файле
	envMailerAPIKey = "RESEND_API_KEY"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Notifier NotifierConfig `toml:"notifier"`
	Mailer   MailerConfig   `toml:"mailer"`
	Redis    RedisConfig    `toml:"redis"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int    `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int    `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int    `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int    `toml:"shutdown_timeout" validate:"min=1"`
	AdminToken      string `toml:"admin_token" validate:"required,min=8"`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver      string `toml:"driver" validate:"oneof=memory postgres"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"` // пустой - только stdout
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	Path        string `toml:"path" validate:"omitempty,startswith=/"`
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	DefaultCapacity      int    `toml:"default_capacity" validate:"min=1"`
	IDRetryAttempts      int    `toml:"id_retry_attempts" validate:"min=1,max=10"`
	RecurringHorizonDays int    `toml:"recurring_horizon_days" validate:"min=1,max=366"`
	LockTimeout          int    `toml:"lock_timeout" validate:"min=1"` // секунды ожидания блокировки (район, дата)
	CatalogFile          string `toml:"catalog_file"`                  // пустой - встроенный справочник
}

// NotifierConfig выбор способа уведомления
type NotifierConfig struct {
	Driver string `toml:"driver" validate:"oneof=log mailer redis"`
}

// MailerConfig настройки почтового API
type MailerConfig struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from" validate:"omitempty,email"`
	Timeout int    `toml:"timeout" validate:"min=0"` // секунды
}

// RedisConfig настройки Redis stream
type RedisConfig struct {
	URL          string `toml:"url"`
	Stream       string `toml:"stream"`
	MaxLen       int64  `toml:"max_len" validate:"min=0"`
	DialTimeout  int    `toml:"dial_timeout" validate:"min=0"`  // секунды
	WriteTimeout int    `toml:"write_timeout" validate:"min=0"` // секунды
}

// Default конфигурация по умолчанию: хранилище в памяти, уведомления в лог
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "center-booking",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			DefaultCapacity:      25,
			IDRetryAttempts:      3,
			RecurringHorizonDays: 90,
			LockTimeout:          5,
		},
		Notifier: NotifierConfig{Driver: NotifierLog},
		Mailer: MailerConfig{
			BaseURL: "https://api.resend.com",
			From:    "onboarding@resend.dev",
			Timeout: 5,
		},
		Redis: RedisConfig{
			Stream:       "center-booking:events",
			MaxLen:       10000,
			DialTimeout:  5,
			WriteTimeout: 3,
		},
	}
}

// Load читает TOML поверх значений по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if key := os.Getenv(envMailerAPIKey); key != "" {
		cfg.Mailer.APIKey = key
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет теги и зависимости между секциями
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Storage.Driver == StoragePostgres {
		if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" || cfg.Database.Port <= 0 {
			return fmt.Errorf("%w: database host, port, user and dbname are required for postgres storage", ErrInvalidConfig)
		}
	}

	switch cfg.Notifier.Driver {
	case NotifierMailer:
		if cfg.Mailer.BaseURL == "" || cfg.Mailer.From == "" {
			return fmt.Errorf("%w: mailer base_url and from are required for mailer notifier", ErrInvalidConfig)
		}
	case NotifierRedis:
		if cfg.Redis.URL == "" {
			return fmt.Errorf("%w: redis url is required for redis notifier", ErrInvalidConfig)
		}
	}

	return nil
}

// Seconds переводит целое число секунд из конфигурации в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
