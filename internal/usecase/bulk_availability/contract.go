package bulk_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UpstreamClient источник данных о каталоге, резервациях и блокировках
type UpstreamClient interface {
	// FetchCatalog получает категории ресурсов указанных сервисов
	FetchCatalog(ctx context.Context, serviceIDs []string) ([]domain.ResourceCategory, error)
	// FetchBookedIntervals получает активные резервации сервисов, пересекающиеся с интервалом
	FetchBookedIntervals(ctx context.Context, rng domain.TimeRange, serviceIDs []string) ([]domain.BookedInterval, error)
	// FetchBlockIntervals получает блокировки ресурсов, пересекающиеся с интервалом
	FetchBlockIntervals(ctx context.Context, rng domain.TimeRange) ([]domain.BlockInterval, error)
}

// SlotGenerator генератор кандидатных окон дневного режима
type SlotGenerator interface {
	Windows(date domain.Date, policy domain.DurationPolicy) []domain.CandidateWindow
	Horizon(date domain.Date) domain.TimeRange
}

// Metrics интерфейс метрик обработки партиций
type Metrics interface {
	ObservePartition(mode, outcome string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
