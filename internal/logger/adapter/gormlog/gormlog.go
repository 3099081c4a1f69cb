// Package gormlog routes gorm's logging to the global zerolog logger.
package gormlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
)

// DefaultSlowThreshold is used when no slow query threshold is configured.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface on top of zerolog.
type Logger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	logQueries    bool
}

// New returns a Logger configured from cfg.
// Errors and slow queries are always logged, every query only with LogQueries.
func New(cfg logger.Log) *Logger {
	slow := DefaultSlowThreshold
	if cfg.SlowQueryMS > 0 {
		slow = time.Duration(cfg.SlowQueryMS) * time.Millisecond
	}

	return &Logger{
		level:         gormlogger.Warn,
		slowThreshold: slow,
		logQueries:    cfg.LogQueries,
	}
}

// LogMode implements gormlogger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

// Info implements gormlogger.Interface.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		from(ctx).Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Warn implements gormlogger.Interface.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		from(ctx).Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Error implements gormlogger.Interface.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		from(ctx).Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace implements gormlogger.Interface.
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		event = from(ctx).Error().Err(err)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event = from(ctx).Warn().Dur("threshold", l.slowThreshold)
	case l.logQueries:
		event = from(ctx).Debug()
	default:
		return
	}

	sql, rows := fc()

	event.Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("query")
}

// from returns the logger stored in ctx, the global logger if there is none.
func from(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}

	return &log.Logger
}
