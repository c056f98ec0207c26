package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor общий интерфейс чтения для *sql.DB и *DB
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Recorder приемник метрик запросов к БД
type Recorder interface {
	ObserveDBQuery(operation, status string, d time.Duration)
	RegisterDBStats(stats func() sql.DBStats)
}

type operationKey struct{}

// WithOperation помечает контекст именем операции для метрик
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

func operationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return "unknown"
}

// DB обертка над *sql.DB, замеряющая длительность запросов
type DB struct {
	db       *sql.DB
	recorder Recorder
}

// Wrap оборачивает соединение и регистрирует метрики пула
func Wrap(db *sql.DB, recorder Recorder) *DB {
	if recorder != nil {
		recorder.RegisterDBStats(db.Stats)
	}
	return &DB{db: db, recorder: recorder}
}

// QueryContext выполняет запрос и учитывает его в метриках
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)

	if d.recorder != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		d.recorder.ObserveDBQuery(operationFrom(ctx), status, time.Since(start))
	}
	return rows, err
}
