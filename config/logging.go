package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-costtables/log"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = log.ConsoleEncoder
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = log.JSONEncoder
)

// LoggerConfig holds the logging level and the encoder.
type LoggerConfig struct {
	Level   string     `mapstructure:"level"`
	Encoder LogEncoder `mapstructure:"encoder"`
}

func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Level:   defaultLoggingLevel.String(),
		Encoder: ConsoleLogEncoder,
	}
}

func (c LoggerConfig) validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	switch c.Encoder {
	case ConsoleLogEncoder, JSONLogEncoder:
	default:
		return fmt.Errorf("unknown log encoder %q", c.Encoder)
	}
	return nil
}
