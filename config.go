package ioc

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by ConfigFromEnv and LoadConfig.
const (
	EnvLogLevel       = "IOC_LOG_LEVEL"
	EnvLogDevelopment = "IOC_LOG_DEVELOPMENT"
)

// Config controls how a container reports what it does.
type Config struct {
	// LogLevel is a zap level name (debug, info, warn, error).
	// Empty disables logging.
	LogLevel string
	// Development selects zap's console development encoder.
	Development bool
}

// ConfigFromEnv reads Config from the process environment.
func ConfigFromEnv() Config {
	return configFrom(os.LookupEnv)
}

// LoadConfig reads Config from the given .env files, with variables already
// present in the process environment taking precedence.
// With no files it is equivalent to ConfigFromEnv.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		return ConfigFromEnv(), nil
	}
	values, err := godotenv.Read(envFiles...)
	if err != nil {
		return Config{}, fmt.Errorf("ioc: read env files: %w", err)
	}
	return configFrom(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}), nil
}

func configFrom(lookup func(string) (string, bool)) Config {
	cfg := Config{}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogDevelopment); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Development = b
		}
	}
	return cfg
}

// NewLogger builds the zap logger described by cfg.
func (cfg Config) NewLogger() (*zap.Logger, error) {
	if cfg.LogLevel == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("ioc: invalid %s %q: %w", EnvLogLevel, cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFatalHandler replaces the handler that receives unrecoverable
// injection failures. Tests use it to capture the message instead of
// exiting.
func WithFatalHandler(h FatalHandler) Option {
	return func(c *Container) {
		if h != nil {
			c.fatal = h
		}
	}
}

// WithConfig builds the container logger from cfg. An invalid level is
// reported once on stderr and the container logs warnings and errors there.
func WithConfig(cfg Config) Option {
	return func(c *Container) {
		logger, err := cfg.NewLogger()
		if err != nil {
			logger = stderrLogger(zapcore.WarnLevel)
			logger.Warn("invalid logging configuration, falling back to stderr", zap.Error(err))
		}
		c.logger = logger
	}
}
