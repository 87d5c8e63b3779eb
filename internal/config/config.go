package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"PORT"             env-default:"8080"`
	Timezone        string        `yaml:"timezone"         env:"TZ"               env-default:"UTC"`
	AllowedOrigins  string        `yaml:"allowed_origins"  env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects and configures the record backend.
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"STORAGE_DRIVER"      env-default:"sqlite"`
	DBPath        string `yaml:"db_path"        env:"DB_PATH"             env-default:"data/lunara.db"`
	RedisAddr     string `yaml:"redis_addr"     env:"REDIS_ADDR"          env-default:"127.0.0.1:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"REDIS_DB"            env-default:"0"`
	RedisPrefix   string `yaml:"redis_prefix"   env:"REDIS_PREFIX"        env-default:"lunara:"`
	QuotaBytes    int    `yaml:"quota_bytes"    env:"STORAGE_QUOTA_BYTES" env-default:"5242880"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

func (cfg ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

func (cfg *Config) Validate() error {
	var errs []error

	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)) {
	case StorageSQLite:
		if strings.TrimSpace(cfg.Storage.DBPath) == "" {
			errs = append(errs, errors.New("storage.db_path is required for the sqlite driver"))
		}
	case StorageRedis:
		if strings.TrimSpace(cfg.Storage.RedisAddr) == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for the redis driver"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, redis, memory", cfg.Storage.Driver))
	}

	if cfg.Storage.QuotaBytes < 0 {
		errs = append(errs, errors.New("storage.quota_bytes must not be negative"))
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", cfg.Server.Port))
	}
	if _, err := time.LoadLocation(cfg.Server.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("server.timezone %q: %w", cfg.Server.Timezone, err))
	}

	return errors.Join(errs...)
}
