// Package logging is the central logging package of spawn-mocha. It holds our custom log formatters for zap.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewProductionLogger returns a logger that prints Info messages to stdout and Warn messages and above to stderr.
// Debug messages are discarded.
func NewProductionLogger() *zap.SugaredLogger {
	return NewProductionLoggerTo(os.Stdout, os.Stderr)
}

// NewProductionLoggerTo is like NewProductionLogger but writes to the given destinations.
func NewProductionLoggerTo(stdout, stderr io.Writer) *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		// These strings are meaningless - they just need to be non-empty for the console encoder.
		MessageKey: "M",
		LevelKey:   "L",
		EncodeLevel: func(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			// Anything other than "info" logs will have a capitalized level prefix.
			if lvl != zapcore.InfoLevel {
				zapcore.CapitalColorLevelEncoder(lvl, enc)
			}
		},
	})

	errorLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level > zapcore.InfoLevel
	})

	return zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout)), infoLevels),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stderr)), errorLevels),
	)).Sugar()
}

// NewDebugLogger is similar to our production logger, however it also includes debug output, timestamps & stacktraces.
// Debug output goes to stderr so it never interleaves with the test runner's own stdout.
func NewDebugLogger() *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		// These strings are meaningless - they just need to be non-empty for the console encoder.
		LevelKey:      "L",
		MessageKey:    "M",
		NameKey:       "N",
		StacktraceKey: "S",
		TimeKey:       "T",
		EncodeLevel:   zapcore.CapitalColorLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
	})

	otherLevels := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return !infoLevels(level)
	})

	return zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), infoLevels),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), otherLevels),
	)).WithOptions(
		zap.Development(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).Sugar()
}

var infoLevels = zap.LevelEnablerFunc(func(level zapcore.Level) bool {
	return level == zapcore.InfoLevel
})
