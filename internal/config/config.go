package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Pipe    PipeConfig    `mapstructure:"pipe"`
	Backend BackendConfig `mapstructure:"backend"`
	Store   StoreConfig   `mapstructure:"store"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// PipeConfig carries the filter valves the host pipeline reads
type PipeConfig struct {
	Priority int `mapstructure:"priority"`
}

type BackendConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	StopPath    string        `mapstructure:"stop_path" validate:"required,startswith=/"`
	StopTimeout time.Duration `mapstructure:"stop_timeout" validate:"min=0"`
}

// StopURL returns the full stop endpoint address
func (c BackendConfig) StopURL() string {
	return c.BaseURL + c.StopPath
}

type StoreConfig struct {
	MaxConversations int `mapstructure:"max_conversations" validate:"min=1"`
	MaxSessions      int `mapstructure:"max_sessions" validate:"min=1"`
}

type AuthConfig struct {
	// JWTSecret enables the identity-passthrough middleware when set.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LoggingConfig struct {
	Level        string        `mapstructure:"level"`
	Format       string        `mapstructure:"format" validate:"oneof=json console"`
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.middleware_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Pipe
	v.SetDefault("pipe.priority", 0)

	// Backend
	v.SetDefault("backend.base_url", "http://host.docker.internal:8081")
	v.SetDefault("backend.stop_path", "/stop")
	v.SetDefault("backend.stop_timeout", "5s")

	// Store
	v.SetDefault("store.max_conversations", 4096)
	v.SetDefault("store.max_sessions", 4096)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_age", "168h") // 7 days
	v.SetDefault("logging.rotation_time", "24h")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")

	// Backend
	v.BindEnv("backend.base_url", "BACKEND_BASE_URL")
	v.BindEnv("backend.stop_path", "BACKEND_STOP_PATH")

	// Auth
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.file", "LOG_FILE")
}
