// Package logtest builds loggers for tests.
package logtest

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// LevelEnv enables test logs at the given level for every test.
const LevelEnv = "TEST_LOG_LEVEL"

// New returns a logger writing to tb at the first of levels, or at the level from LevelEnv.
// Without either the logger is silent.
func New(tb testing.TB, levels ...zapcore.Level) *zap.Logger {
	level, enabled := testLevel(tb, levels)
	if !enabled {
		return zap.NewNop()
	}
	return zaptest.NewLogger(tb, zaptest.Level(level), zaptest.WrapOptions(zap.AddCaller()))
}

func testLevel(tb testing.TB, levels []zapcore.Level) (zapcore.Level, bool) {
	if len(levels) > 0 {
		return levels[0], true
	}
	env, ok := os.LookupEnv(LevelEnv)
	if !ok || env == "" {
		return zapcore.InvalidLevel, false
	}
	level, err := zapcore.ParseLevel(env)
	if err != nil {
		tb.Fatalf("%s: %v", LevelEnv, err)
	}
	return level, true
}
