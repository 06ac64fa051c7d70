package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Backend BackendConfig
	JWT     JWTConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Confirm ConfirmConfig
	Session SessionConfig
	CORS    CORSConfig
	I18n    I18nConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
	GRPCPort string
	// ShutdownTimeout bounds the graceful drain of both servers.
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
	FilePath          string
	MaxSizeMB         int
	MaxBackups        int
	MaxAgeDays        int
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	SecretKey string
	// TokenTTL is used when the BFF issues tokens itself (dev login).
	TokenTTL time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type AuditConfig struct {
	DSN string
}

type ConfirmConfig struct {
	TTL time.Duration
}

type SessionConfig struct {
	// IdleTTL drops a session's list and tree views after this long unused.
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

type I18nConfig struct {
	DefaultLanguage string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			HTTPPort:        getEnv("HTTP_PORT", ":8080"),
			GRPCPort:        getEnv("GRPC_PORT", ":8082"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
			FilePath:          getEnv("LOGGER_FILE", ""),
			MaxSizeMB:         getEnvInt("LOGGER_FILE_MAX_SIZE_MB", 100),
			MaxBackups:        getEnvInt("LOGGER_FILE_MAX_BACKUPS", 5),
			MaxAgeDays:        getEnvInt("LOGGER_FILE_MAX_AGE_DAYS", 14),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api/v1"),
			Timeout: getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Audit: AuditConfig{
			DSN: getEnv("AUDIT_DSN", "file:backoffice-audit.db?_busy_timeout=5000"),
		},
		Confirm: ConfirmConfig{
			TTL: getEnvDuration("CONFIRM_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			IdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		I18n: I18nConfig{
			DefaultLanguage: getEnv("I18N_DEFAULT_LANGUAGE", "en"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
