package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	CORS   CORSConfig   `yaml:"cors"`
	Rate   RateConfig   `yaml:"rate"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig selects and configures the record store backend.
// Driver is one of "memory", "sqlite" or "postgres".
type StoreConfig struct {
	Driver   string `yaml:"driver"    env:"STORE_DRIVER"    env-default:"memory"`
	Path     string `yaml:"path"      env:"STORE_PATH"      env-default:"aspirasi.db"`
	DSN      string `yaml:"dsn"       env:"STORE_DSN"`
	MaxConns int32  `yaml:"max_conns" env:"STORE_MAX_CONNS" env-default:"25"`
	MinConns int32  `yaml:"min_conns" env:"STORE_MIN_CONNS" env-default:"5"`
}

// AccountConfig describes one staff login. When PasswordHash is empty the
// account accepts any password, which is how the demo deployment runs.
type AccountConfig struct {
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	PasswordHash string `yaml:"password_hash"`
}

// AuthConfig holds token settings and the staff account table.
type AuthConfig struct {
	JWTSecret      string          `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string          `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"aspirasi"`
	AccessTokenTTL time.Duration   `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
	Accounts       []AccountConfig `yaml:"accounts"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateConfig holds per-client request throttling settings.
type RateConfig struct {
	Enabled bool          `yaml:"enabled" env:"RATE_ENABLED" env-default:"true"`
	Limit   int           `yaml:"limit"   env:"RATE_LIMIT"   env-default:"60"`
	Window  time.Duration `yaml:"window"  env:"RATE_WINDOW"  env-default:"1m"`
}

// Addr returns the host:port the HTTP server should bind to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
