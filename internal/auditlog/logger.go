// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package auditlog appends one record per classified entry and per error to
// the run's action log.
package auditlog

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/permsweep/permsweep/internal/domain"
)

// Logger is a zap-backed domain.ActionLogger. With a log file configured it
// writes JSON records there (down to debug, so action=none entries are kept
// for audit); without one, human-readable lines go to stdout at info level,
// except error records, which belong on stderr.
// A write failure never aborts the run; zap reports it to stderr.
type Logger struct {
	zl   *zap.Logger
	file *os.File
}

// New opens the action log. path may be empty, which selects the standard
// streams. An unopenable path is fatal for the run.
func New(path string) (*Logger, error) {
	if path == "" {
		return NewWithWriters(os.Stdout, os.Stderr), nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		zap.DebugLevel,
	)

	return &Logger{
		zl:   zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))),
		file: file,
	}, nil
}

// NewWithWriters builds a stream logger with explicit destinations, mainly
// for testing. Info-level records go to stdout, error records to stderr.
func NewWithWriters(stdout, stderr io.Writer) *Logger {
	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(consoleCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(
			encoder,
			zapcore.Lock(zapcore.AddSync(stdout)),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zapcore.InfoLevel && l < zapcore.ErrorLevel
			}),
		),
		zapcore.NewCore(
			encoder,
			zapcore.Lock(zapcore.AddSync(stderr)),
			zap.ErrorLevel,
		),
	)

	return &Logger{zl: zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))}
}

// Record implements domain.ActionLogger.
func (l *Logger) Record(rec domain.ActionRecord) {
	fields := []zap.Field{
		zap.String("run_id", rec.RunID),
		zap.String("path", rec.Path),
		zap.String("action", string(rec.Action)),
		zap.String("outcome", string(rec.Outcome)),
	}

	if rec.Identity != "" {
		fields = append(fields, zap.String("identity", rec.Identity))
	}

	if rec.Kind != "" {
		fields = append(fields, zap.String("kind", string(rec.Kind)))
	}

	if rec.Detail != "" {
		fields = append(fields, zap.String("detail", rec.Detail))
	}

	switch {
	case rec.Outcome == domain.OutcomeError:
		l.zl.Error("permission sweep", fields...)
	case rec.Action == domain.ActionNone:
		l.zl.Debug("permission sweep", fields...)
	default:
		l.zl.Info("permission sweep", fields...)
	}
}

// Close flushes and releases the log destination. Safe on all exit paths.
func (l *Logger) Close() error {
	// Sync on stdout returns EINVAL on some platforms; the file close below
	// is the part that matters.
	_ = l.zl.Sync()

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}
