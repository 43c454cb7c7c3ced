package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// ErrInvalidConfig возвращается, когда значения конфигурации противоречивы
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	Clinic    ClinicConfig    `toml:"clinic"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Services  []ServiceConfig `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | mongo
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`      // применять схему при старте serve
	MaxTxAttempts   int    `toml:"max_tx_attempts"`   // попыток сериализуемой транзакции
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"` // секунды
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled  bool   `toml:"enabled"`
	Requests int    `toml:"requests"` // запросов за окно
	Window   int    `toml:"window"`   // секунды
	FailOpen bool   `toml:"fail_open"`
	Prefix   string `toml:"prefix"`
	// IdleTTL через сколько секунд без запросов клиент забывается лимитером в памяти
	IdleTTL int `toml:"idle_ttl"`
	// TrustForwardedFor брать адрес клиента из X-Forwarded-For (только за доверенным прокси)
	TrustForwardedFor bool `toml:"trust_forwarded_for"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// ClinicConfig календарная политика клиники
type ClinicConfig struct {
	Timezone         string   `toml:"timezone"`
	StartHour        int      `toml:"start_hour"`
	EndHour          int      `toml:"end_hour"`
	SlotStepMinutes  int      `toml:"slot_step_minutes"`
	ExcludedWeekdays []string `toml:"excluded_weekdays"` // "sunday", "saturday", ...
	Holidays         []string `toml:"holidays"`          // YYYY-MM-DD
	MinAdvanceHours  int      `toml:"min_advance_hours"`
	MaxAdvanceDays   int      `toml:"max_advance_days"`
}

// Location часовой пояс клиники
func (c ClinicConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

type CatalogConfig struct {
	FromDatabase bool `toml:"from_database"`
}

// ServiceConfig услуга каталога
type ServiceConfig struct {
	Key             string `toml:"key"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
	Description     string `toml:"description"`
}

// Load читает .env (если есть), затем TOML файл, затем переопределения из окружения
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию, поверх которых декодируется файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Storage: StorageConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MaxTxAttempts:   3,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "dentallab",
			ConnectTimeout: 10,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   60,
			FailOpen: true,
			Prefix:   "dentallab:rl",
			IdleTTL:  600,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "dentallab_booking",
		},
		Clinic: ClinicConfig{
			StartHour:        8,
			EndHour:          18,
			SlotStepMinutes:  30,
			ExcludedWeekdays: []string{"sunday"},
			MinAdvanceHours:  24,
			MaxAdvanceDays:   90,
		},
	}
}

// Validate проверяет значения, без которых сервис не может стартовать
func (c *Config) Validate() error {
	if c.Storage.Driver != DriverPostgres && c.Storage.Driver != DriverMongo {
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Clinic.StartHour < 0 || c.Clinic.EndHour > 23 || c.Clinic.StartHour >= c.Clinic.EndHour {
		return fmt.Errorf("%w: clinic hours must satisfy 0 <= start_hour < end_hour <= 23", ErrInvalidConfig)
	}
	if c.Clinic.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Clinic.MinAdvanceHours < 0 || c.Clinic.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: booking window must satisfy min_advance_hours >= 0, max_advance_days > 0", ErrInvalidConfig)
	}
	if _, err := c.Clinic.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Clinic.Timezone, err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("%w: rate_limit requests and window must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.IdleTTL < 0 {
		return fmt.Errorf("%w: rate_limit idle_ttl must not be negative", ErrInvalidConfig)
	}
	if c.Database.MaxTxAttempts <= 0 {
		return fmt.Errorf("%w: database max_tx_attempts must be positive", ErrInvalidConfig)
	}
	if c.Catalog.FromDatabase && c.Storage.Driver != DriverPostgres {
		return fmt.Errorf("%w: catalog.from_database requires the postgres driver", ErrInvalidConfig)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Admin.Token = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}
