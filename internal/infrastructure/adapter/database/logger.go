package database

import (
	"context"
	"errors"
	"time"

	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning
const slowQueryThreshold = 200 * time.Millisecond

// GormDatabaseLogger bridges GORM's logger interface onto the domain Logger
// so all database logging flows through the same structured sink
type GormDatabaseLogger struct {
	logger coreport.Logger
}

// NewGormDatabaseLogger creates a new GORM logger adapter
func NewGormDatabaseLogger(logger coreport.Logger) *GormDatabaseLogger {
	return &GormDatabaseLogger{logger: logger}
}

// LogMode implements gorm logger.Interface; the level is governed by the
// domain logger, so the requested mode is ignored
func (l *GormDatabaseLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

// Info logs informational messages from GORM
func (l *GormDatabaseLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.logger.Info(msg, map[string]any{"args": args})
}

// Warn logs warnings from GORM
func (l *GormDatabaseLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.logger.Warn(msg, map[string]any{"args": args})
}

// Error logs errors from GORM
func (l *GormDatabaseLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.logger.Error(msg, map[string]any{"args": args})
}

// Trace logs SQL execution with timing. Not-found results are expected
// control flow and stay at debug level.
func (l *GormDatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		fields["error"] = err.Error()
		l.logger.Error("Query failed", fields)
	case elapsed > slowQueryThreshold:
		l.logger.Warn("Slow query", fields)
	default:
		l.logger.Debug("Query executed", fields)
	}
}
