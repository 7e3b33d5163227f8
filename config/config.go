package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Orders   OrdersConfig   `yaml:"orders"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
	MediaDir   string `yaml:"media_dir"`
	MediaURL   string `yaml:"media_url"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	OrdersTopic        string   `yaml:"orders_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
	PublishTimeoutMS   int      `yaml:"publish_timeout_ms"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	Issuer           string `yaml:"issuer"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
	RefreshTTLHours  int    `yaml:"refresh_ttl_hours"`
	BcryptCost       int    `yaml:"bcrypt_cost"`
}

type OrdersConfig struct {
	PageSize           int `yaml:"page_size"`
	MaxPageSize        int `yaml:"max_page_size"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `yaml:"rate_limit_burst"`
}

type CacheConfig struct {
	ReferenceTTLSeconds int `yaml:"reference_ttl_seconds"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// LoadConfig loads an optional .env file, reads the YAML config at path and
// applies environment overrides for secrets.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret (or JWT_SECRET) is required")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.MediaDir == "" {
		cfg.HTTP.MediaDir = "media"
	}
	if cfg.HTTP.MediaURL == "" {
		cfg.HTTP.MediaURL = "/media"
	}
	if cfg.GRPC.Address == "" {
		cfg.GRPC.Address = ":9090"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "airport-service"
	}
	if cfg.Auth.AccessTTLMinutes == 0 {
		cfg.Auth.AccessTTLMinutes = 30
	}
	if cfg.Auth.RefreshTTLHours == 0 {
		cfg.Auth.RefreshTTLHours = 24
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
	if cfg.Kafka.PublishTimeoutMS == 0 {
		cfg.Kafka.PublishTimeoutMS = 2000
	}
	if cfg.Orders.PageSize == 0 {
		cfg.Orders.PageSize = 10
	}
	if cfg.Orders.MaxPageSize == 0 {
		cfg.Orders.MaxPageSize = 100
	}
	if cfg.Orders.RateLimitBurst == 0 {
		cfg.Orders.RateLimitBurst = 5
	}
	if cfg.Cache.ReferenceTTLSeconds == 0 {
		cfg.Cache.ReferenceTTLSeconds = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
