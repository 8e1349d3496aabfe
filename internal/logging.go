package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LevelSet map[zapcore.Level]bool

func (ls LevelSet) Enabled(l zapcore.Level) bool {
	return ls[l]
}

// LevelsFrom returns the info and debug levels enabled by name: "debug"
// enables both, "info" only info, anything else neither. Warnings and errors
// are always logged.
func LevelsFrom(name string) (LevelSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelSet{zapcore.DebugLevel: true, zapcore.InfoLevel: true}, nil
	case "info", "":
		return LevelSet{zapcore.InfoLevel: true}, nil
	case "warn", "error", "quiet":
		return LevelSet{}, nil
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds the console logger for level and installs it as the
// global logger.
func NewLogger(level string) (*zap.Logger, error) {
	levels, err := LevelsFrom(level)
	if err != nil {
		return nil, err
	}

	logger := newLogger(levels, os.Stdout, os.Stderr)
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newLogger(levels LevelSet, stdout, stderr io.Writer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "",
		LevelKey:      "level",
		CallerKey:     "",
		FunctionKey:   "",
		StacktraceKey: "",
		MessageKey:    "msg",
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	// INFO & (optionally) DEBUG logs → stdout
	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && levels.Enabled(l)
	}))

	// WARN, ERROR, and FATAL logs → stderr (always enabled)
	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	return zap.New(zapcore.NewTee(stdoutCore, stderrCore))
}
