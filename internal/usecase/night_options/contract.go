package night_options

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UpstreamClient источник данных о каталоге, резервациях и блокировках
type UpstreamClient interface {
	FetchCatalog(ctx context.Context, serviceIDs []string) ([]domain.ResourceCategory, error)
	FetchBookedIntervals(ctx context.Context, rng domain.TimeRange, serviceIDs []string) ([]domain.BookedInterval, error)
	FetchBlockIntervals(ctx context.Context, rng domain.TimeRange) ([]domain.BlockInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
