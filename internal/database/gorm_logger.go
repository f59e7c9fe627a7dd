package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogGormLogger routes GORM's log output through slog. SQL statements show
// up as debug messages; slog's configured level decides whether the SQL
// formatting callback runs at all.
type slogGormLogger struct{}

// LogMode is a no-op; level filtering is handled by slog.
func (l slogGormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

func (l slogGormLogger) print(ctx context.Context, level slog.Level, msg string, args ...any) {
	slog.Default().Log(ctx, level, fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.print(ctx, slog.LevelInfo, msg, args...)
}

func (l slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.print(ctx, slog.LevelWarn, msg, args...)
}

func (l slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.print(ctx, slog.LevelError, msg, args...)
}

// maxSQLLength caps SQL strings in debug logs. Vector-row inserts carry JSON
// embeddings that would otherwise fill the log with numbers.
const maxSQLLength = 200

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace runs after every SQL operation. ErrRecordNotFound is the normal
// "no rows" outcome of a lookup and is treated like success.
func (l slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		slog.ErrorContext(ctx, "sql query failed",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return
	}

	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}

	sql, rows := fc()
	slog.DebugContext(ctx, "sql query",
		"sql", truncateSQL(sql),
		"rows", rows,
		"duration_ms", elapsed.Milliseconds(),
	)
}
