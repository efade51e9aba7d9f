// Package log builds zap loggers for cost table tooling.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encoder defines a log encoder kind.
type Encoder = string

const (
	// ConsoleEncoder represents logging with plain text.
	ConsoleEncoder Encoder = "console"
	// JSONEncoder represents logging with JSON.
	JSONEncoder Encoder = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// New creates a logger named module that writes entries at level or above using encoder.
func New(module, level string, encoder Encoder) (*zap.Logger, error) {
	return NewWithWriter(logWriter, module, level, encoder)
}

// NewWithWriter is the same as New but writes to w.
func NewWithWriter(w io.Writer, module, level string, encoder Encoder) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	enc, err := newEncoder(encoder)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core).Named(module), nil
}

func newEncoder(encoder Encoder) (zapcore.Encoder, error) {
	switch encoder {
	case ConsoleEncoder, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", encoder)
}

// Err returns an error field with the "errmsg" key.
func Err(err error) zap.Field {
	return zap.NamedError("errmsg", err)
}
