package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxFieldBytes   int64         `yaml:"max_field_bytes"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"` // debug, info, warn, error
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"` // 0 - без лимита
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxFieldBytes:   1 << 20,
		},
		Logging: LoggingConfig{
			Development: true,
			Level:       "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 100,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "task-tracker",
		},
	}
}

// Load читает yaml поверх значений по умолчанию и применяет переменные окружения TASKS_*.
// Отсутствующий файл не ошибка
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var envBindings = map[string]string{
	"server.host":                    "TASKS_SERVER_HOST",
	"server.port":                    "TASKS_SERVER_PORT",
	"server.read_timeout":            "TASKS_SERVER_READ_TIMEOUT",
	"server.write_timeout":           "TASKS_SERVER_WRITE_TIMEOUT",
	"server.request_timeout":         "TASKS_SERVER_REQUEST_TIMEOUT",
	"server.shutdown_timeout":        "TASKS_SERVER_SHUTDOWN_TIMEOUT",
	"server.max_field_bytes":         "TASKS_SERVER_MAX_FIELD_BYTES",
	"logging.development":            "TASKS_LOGGING_DEVELOPMENT",
	"logging.level":                  "TASKS_LOGGING_LEVEL",
	"rate_limit.requests_per_minute": "TASKS_RATE_LIMIT_RPM",
	"cors.allowed_origins":           "TASKS_CORS_ALLOWED_ORIGINS",
	"tracing.enabled":                "TASKS_TRACING_ENABLED",
	"tracing.service_name":           "TASKS_TRACING_SERVICE_NAME",
}

func applyEnv(cfg *Config) error {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("привязка переменной %s: %w", env, err)
		}
	}

	if v.IsSet("server.host") {
		cfg.Server.Host = v.GetString("server.host")
	}
	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetString("server.port")
	}
	if v.IsSet("server.read_timeout") {
		cfg.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.request_timeout") {
		cfg.Server.RequestTimeout = v.GetDuration("server.request_timeout")
	}
	if v.IsSet("server.shutdown_timeout") {
		cfg.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	}
	if v.IsSet("server.max_field_bytes") {
		cfg.Server.MaxFieldBytes = v.GetInt64("server.max_field_bytes")
	}
	if v.IsSet("logging.development") {
		cfg.Logging.Development = v.GetBool("logging.development")
	}
	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("rate_limit.requests_per_minute") {
		cfg.RateLimit.RequestsPerMinute = v.GetInt("rate_limit.requests_per_minute")
	}
	if v.IsSet("cors.allowed_origins") {
		cfg.CORS.AllowedOrigins = splitList(v.GetString("cors.allowed_origins"))
	}
	if v.IsSet("tracing.enabled") {
		cfg.Tracing.Enabled = v.GetBool("tracing.enabled")
	}
	if v.IsSet("tracing.service_name") {
		cfg.Tracing.ServiceName = v.GetString("tracing.service_name")
	}

	return nil
}

func splitList(value string) []string {
	res := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
