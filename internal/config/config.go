// Package config provides configuration management for canvaspilot.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like DATABASE_URL, SERVER_PORT)
// 3. Default values
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	River     RiverConfig     `mapstructure:"river"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Retention RetentionConfig `mapstructure:"retention"`
	WS        WSConfig        `mapstructure:"ws"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection settings. A single pgx pool
// is shared by GORM and River.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`

	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
// Priority: DATABASE_URL > constructed from individual fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode,
	)
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// RiverConfig contains River queue settings.
type RiverConfig struct {
	MaxWorkers int `mapstructure:"max_workers"`
}

// JWTConfig contains token signing settings. SigningKey is auto-generated
// on first boot when missing; set JWT_SIGNING_KEY for persistence.
type JWTConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	Issuer     string        `mapstructure:"issuer"`
	ExpiresIn  time.Duration `mapstructure:"expires_in"`
}

// RetentionConfig controls the soft-delete purge job.
type RetentionConfig struct {
	// Window is how long a soft-deleted row survives before becoming
	// eligible for permanent removal.
	Window time.Duration `mapstructure:"window"`

	// BatchSize bounds the number of rows hard-deleted per statement.
	BatchSize int `mapstructure:"batch_size"`

	// SweepInterval is the period between sweep runs.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// WSConfig contains websocket settings.
type WSConfig struct {
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	SendQueueSize   int           `mapstructure:"send_queue_size"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	GeneralPoolSize   int `mapstructure:"general_pool_size"`
	BroadcastPoolSize int `mapstructure:"broadcast_pool_size"`
}

var (
	bootstrapLoggerOnce sync.Once
	bootstrapLogger     *zap.Logger
)

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/canvaspilot")

	// Environment variable override without prefix: database.max_conns
	// becomes DATABASE_MAX_CONNS, jwt.signing_key becomes JWT_SIGNING_KEY.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.ensureSecrets(); err != nil {
		return nil, fmt.Errorf("ensure secrets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if len(c.JWT.SigningKey) < 32 {
		return fmt.Errorf("jwt.signing_key must be at least 32 characters")
	}
	if c.Retention.Window <= 0 {
		return fmt.Errorf("retention.window must be positive")
	}
	if c.Retention.BatchSize <= 0 {
		return fmt.Errorf("retention.batch_size must be positive")
	}
	return nil
}

// ensureSecrets auto-generates missing secrets on first boot.
func (c *Config) ensureSecrets() error {
	if c.JWT.SigningKey == "" {
		key, err := generateSecureRandomHex(32)
		if err != nil {
			return fmt.Errorf("auto-generate jwt signing key: %w", err)
		}
		c.JWT.SigningKey = key
		logBootstrapWarn(
			"auto-generated jwt signing key; set JWT_SIGNING_KEY env var for persistence across restarts",
			zap.Int("length", len(key)),
		)
	}
	return nil
}

func logBootstrapWarn(msg string, fields ...zap.Field) {
	bootstrapLoggerOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

		l, err := cfg.Build()
		if err != nil {
			bootstrapLogger = zap.NewNop()
			return
		}
		bootstrapLogger = l
	})

	bootstrapLogger.Warn(msg, fields...)
}

// generateSecureRandomHex produces a hex-encoded string of n random bytes.
func generateSecureRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("crypto/rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database. The empty url default registers the key so DATABASE_URL is
	// visible to AutomaticEnv.
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "canvaspilot")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "canvaspilot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "15m")
	v.SetDefault("database.auto_migrate", false)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// River
	v.SetDefault("river.max_workers", 10)

	// JWT. Same for JWT_SIGNING_KEY.
	v.SetDefault("jwt.signing_key", "")
	v.SetDefault("jwt.issuer", "canvaspilot")
	v.SetDefault("jwt.expires_in", "24h")

	// Retention
	v.SetDefault("retention.window", "720h")         // 30 days
	v.SetDefault("retention.batch_size", 500)
	v.SetDefault("retention.sweep_interval", "720h") // monthly

	// WebSocket
	v.SetDefault("ws.read_buffer_size", 4096)
	v.SetDefault("ws.write_buffer_size", 4096)
	v.SetDefault("ws.write_timeout", "10s")
	v.SetDefault("ws.pong_timeout", "60s")
	v.SetDefault("ws.send_queue_size", 64)

	// Worker pools
	v.SetDefault("worker.general_pool_size", 100)
	v.SetDefault("worker.broadcast_pool_size", 200)
}
