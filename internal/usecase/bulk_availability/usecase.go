package bulk_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
)

// UseCase use case для пакетной проверки доступности сюитов на набор дат
type UseCase struct {
	upstream  UpstreamClient
	generator SlotGenerator
	resolver  *conflict.Resolver
	mapping   *pairing.Mapping
	zone      *localtime.Zone
	cfg       Config
	logger    Logger
	metrics   Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	upstream UpstreamClient,
	generator SlotGenerator,
	resolver *conflict.Resolver,
	mapping *pairing.Mapping,
	zone *localtime.Zone,
	cfg Config,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		upstream:  upstream,
		generator: generator,
		resolver:  resolver,
		mapping:   mapping,
		zone:      zone,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
	}
}

// Execute выполняет use case пакетной проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	vr, err := validateRequest(req, uc.cfg)
	if err != nil {
		uc.logger.Warn("BulkAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BulkAvailability: mode=%s, service=%s, dates=%d, category=%q",
		vr.mode, vr.serviceID, len(vr.dates), vr.categoryID)

	// 2. Каталог: для дневного режима нужны оба сервиса, чтобы учесть парные категории
	catalogServices := []string{uc.cfg.NightServiceID}
	if vr.mode == domain.ModeDay {
		catalogServices = uc.cfg.serviceIDs()
	}

	catalog, err := uc.upstream.FetchCatalog(ctx, catalogServices)
	if err != nil {
		uc.logger.Error("BulkAvailability: failed to fetch catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch catalog: %v", ErrUpstreamUnavailable, err)
	}

	// 3. Фильтруем категории
	categories, err := selectCategories(catalog, uc.cfg.CategoryTypes, vr.categoryID)
	if err != nil {
		uc.logger.Warn("BulkAvailability: category %s not found in active catalog", vr.categoryID)
		return nil, err
	}
	uc.logger.Info("BulkAvailability: found %d active categories", len(categories))

	// 4. Блокировки загружаются один раз на весь запрос с запасом по дням
	blockRange := partition.BlockRange(vr.dates, uc.zone, uc.cfg.BlockBufferDays)
	blocks, err := uc.upstream.FetchBlockIntervals(ctx, blockRange)
	if err != nil {
		uc.logger.Error("BulkAvailability: failed to fetch blocks for %s: %v", blockRange, err)
		return nil, fmt.Errorf("%w: failed to fetch blocks: %v", ErrUpstreamUnavailable, err)
	}

	// 5. Разбиваем даты на партиции и обрабатываем параллельно
	resp := &Response{Mode: vr.mode}
	var failures []partition.Failure

	switch vr.mode {
	case domain.ModeDay:
		resp.Day, failures = uc.runDay(ctx, vr, categories, blocks)
	case domain.ModeNight:
		resp.Night, failures = uc.runNight(ctx, vr, categories, blocks)
	default:
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrInternal, vr.mode)
	}

	// 6. Ошибки партиций не прерывают запрос
	for _, f := range failures {
		resp.Failures = append(resp.Failures, PartitionFailure{
			Dates: f.Partition.Dates,
			Err:   fmt.Errorf("%w: %w", ErrPartitionFetchFailed, f.Err),
		})
	}

	computed := len(resp.Day) + len(resp.Night)
	if len(resp.Failures) > 0 {
		uc.logger.Warn("BulkAvailability: mode=%s completed with %d failed partitions, processed %d of %d dates",
			vr.mode, len(resp.Failures), computed, len(vr.dates))
	} else {
		uc.logger.Info("BulkAvailability: mode=%s completed, processed %d dates", vr.mode, computed)
	}

	return resp, nil
}

// split делит даты на партиции и предупреждает о партициях, превышающих лимит upstream
func (uc *UseCase) split(p partition.Partitioner, dates []domain.Date, horizon partition.HorizonFunc) []partition.Partition {
	parts := p.Split(dates, horizon)
	for _, part := range parts {
		if p.ExceedsHours(part) {
			uc.logger.Warn("BulkAvailability: partition %d (%s) exceeds %d hours: %.1f",
				part.Index, part.First(), p.MaxHours, part.Range.Hours())
		}
	}
	return parts
}

func (uc *UseCase) orchestrator(mode domain.Mode, workers int) *partition.Orchestrator {
	o := &partition.Orchestrator{
		Name:    string(mode),
		Workers: workers,
		Logger:  uc.logger,
	}
	if uc.metrics != nil {
		o.Metrics = uc.metrics
	}
	return o
}

// fetchBooked загружает резервации обоих сервисов за интервал партиции
func (uc *UseCase) fetchBooked(ctx context.Context, part partition.Partition) ([]domain.BookedInterval, error) {
	booked, err := uc.upstream.FetchBookedIntervals(ctx, part.Range, uc.cfg.serviceIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for %s: %w", part.Range, err)
	}
	return booked, nil
}
