package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	User     UserConfig     `yaml:"user"`
	Fields   FieldsConfig   `yaml:"fields"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	URL             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type UserConfig struct {
	ServiceURL     string `yaml:"service_url"`
	InternalAPIKey string `yaml:"internal_api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type FieldsConfig struct {
	MaxFreeFields   int    `yaml:"max_free_fields"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	CleanupSchedule string `yaml:"cleanup_schedule"` // cron expression
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           8004,
			Env:            "dev",
			LogLevel:       "debug",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		User: UserConfig{
			TimeoutSeconds: 5,
		},
		Fields: FieldsConfig{
			MaxFreeFields:   3,
			CacheTTLSeconds: 300,
			CleanupSchedule: "0 3 * * *",
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.Redis.Host = redisHost
	}
	if redisPort := os.Getenv("REDIS_PORT"); redisPort != "" {
		if p, err := strconv.Atoi(redisPort); err == nil {
			cfg.Redis.Port = p
		}
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.Auth.SecretKey = secretKey
	}
	if userURL := os.Getenv("USER_SERVICE_URL"); userURL != "" {
		cfg.User.ServiceURL = userURL
	}
	if apiKey := os.Getenv("INTERNAL_API_KEY"); apiKey != "" {
		cfg.User.InternalAPIKey = apiKey
	}
	if maxFields := os.Getenv("MAX_FREE_FIELDS"); maxFields != "" {
		if n, err := strconv.Atoi(maxFields); err == nil {
			cfg.Fields.MaxFreeFields = n
		}
	}

	return cfg, nil
}
