package partition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPartitionCanceled возвращается для партиций, не начатых до отмены контекста
	ErrPartitionCanceled = errors.New("partition: canceled before start")

	// ErrPartitionPanicked возвращается, если обработчик партиции запаниковал
	ErrPartitionPanicked = errors.New("partition: handler panicked")
)

// Partition outcomes для метрик
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик партиций
type Metrics interface {
	ObservePartition(mode, outcome string, d time.Duration)
}

// Failure партиция, результат которой не попал в итог
type Failure struct {
	Partition Partition
	Err       error
}

// Orchestrator параллельная обработка партиций одного запроса
type Orchestrator struct {
	Name    string // режим, для логов и метрик
	Workers int
	Logger  Logger
	Metrics Metrics
}

// HandlerFunc загружает интервалы партиции и вычисляет доступность ее дат
type HandlerFunc[R any] func(ctx context.Context, part Partition) (map[string]R, error)

// Run обрабатывает партиции не более чем в o.Workers горутинах и объединяет результаты
// в порядке партиций. Ошибка партиции не прерывает остальные: ее даты отсутствуют в итоге,
// а сама ошибка возвращается в списке Failure
func Run[R any](ctx context.Context, o *Orchestrator, parts []Partition, fn HandlerFunc[R]) (map[string]R, []Failure) {
	outcomes := make([]mo.Result[map[string]R], len(parts))

	var g errgroup.Group
	g.SetLimit(max(o.Workers, 1))

	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			outcomes[i] = runOne(ctx, o, part, fn)
			return nil
		})
	}
	_ = g.Wait()

	merged := make(map[string]R)
	var failures []Failure

	for i, outcome := range outcomes {
		values, err := outcome.Get()
		if err != nil {
			failures = append(failures, Failure{Partition: parts[i], Err: err})
			continue
		}
		for key, value := range values {
			merged[key] = value
		}
	}

	return merged, failures
}

func runOne[R any](ctx context.Context, o *Orchestrator, part Partition, fn HandlerFunc[R]) (result mo.Result[map[string]R]) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		o.observe(OutcomeCanceled, start)
		return mo.Err[map[string]R](fmt.Errorf("%w: %v", ErrPartitionCanceled, err))
	}

	defer func() {
		if r := recover(); r != nil {
			o.logError("%s: partition %d panicked: %v", o.Name, part.Index, r)
			o.observe(OutcomeFailed, start)
			result = mo.Err[map[string]R](fmt.Errorf("%w: %v", ErrPartitionPanicked, r))
		}
	}()

	values, err := fn(ctx, part)
	if err != nil {
		o.logWarn("%s: partition %d (%s..%s) failed: %v", o.Name, part.Index, part.First(), part.Last(), err)
		o.observe(OutcomeFailed, start)
		return mo.Err[map[string]R](err)
	}

	o.observe(OutcomeOK, start)
	return mo.Ok(values)
}

func (o *Orchestrator) observe(outcome string, start time.Time) {
	if o.Metrics != nil {
		o.Metrics.ObservePartition(o.Name, outcome, time.Since(start))
	}
}

func (o *Orchestrator) logWarn(format string, v ...interface{}) {
	if o.Logger != nil {
		o.Logger.Warn(format, v...)
	}
}

func (o *Orchestrator) logError(format string, v ...interface{}) {
	if o.Logger != nil {
		o.Logger.Error(format, v...)
	}
}
