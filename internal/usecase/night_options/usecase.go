package night_options

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
)

// UseCase use case проверки раннего заезда и позднего выезда для ночного бронирования
type UseCase struct {
	upstream UpstreamClient
	resolver *conflict.Resolver
	mapping  *pairing.Mapping
	zone     *localtime.Zone
	cfg      Config
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	upstream UpstreamClient,
	resolver *conflict.Resolver,
	mapping *pairing.Mapping,
	zone *localtime.Zone,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		upstream: upstream,
		resolver: resolver,
		mapping:  mapping,
		zone:     zone,
		cfg:      cfg,
		logger:   logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	arrival, nights, err := validateRequest(req, uc.cfg.MaxNights)
	if err != nil {
		uc.logger.Warn("NightOptions: validation failed: %v", err)
		return nil, err
	}
	departure := arrival.AddDays(nights)

	uc.logger.Info("NightOptions: category=%s, arrival=%s, nights=%d", req.CategoryID, arrival, nights)

	// 2. Категория должна быть активна в ночном каталоге
	catalog, err := uc.upstream.FetchCatalog(ctx, []string{uc.cfg.NightServiceID})
	if err != nil {
		uc.logger.Error("NightOptions: failed to fetch catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch catalog: %v", ErrUpstreamUnavailable, err)
	}
	if !containsCategory(domain.FilterBookable(catalog, uc.cfg.CategoryTypes), req.CategoryID) {
		uc.logger.Warn("NightOptions: category %s not found in night catalog", req.CategoryID)
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.CategoryID)
	}

	// 3. Окна проживания и опций
	stay := domain.TimeRange{
		Start: uc.zone.At(arrival, uc.cfg.CheckIn).UTC(),
		End:   uc.zone.At(departure, uc.cfg.CheckOut).UTC(),
	}
	early := uc.optionRange(arrival, uc.cfg.EarlyCheckIn)
	late := uc.optionRange(departure, uc.cfg.LateCheckOut)

	// 4. Один интервал загрузки покрывает проживание и обе опции с буфером
	buffer := uc.resolver.Buffer()
	rng := domain.TimeRange{
		Start: earliest(stay.Start, early.Start).Add(-buffer),
		End:   latest(stay.End, late.End).Add(buffer),
	}

	booked, err := uc.upstream.FetchBookedIntervals(ctx, rng, []string{uc.cfg.DayServiceID, uc.cfg.NightServiceID})
	if err != nil {
		uc.logger.Error("NightOptions: failed to fetch reservations for %s: %v", rng, err)
		return nil, fmt.Errorf("%w: failed to fetch reservations: %v", ErrUpstreamUnavailable, err)
	}

	blocks, err := uc.upstream.FetchBlockIntervals(ctx, rng)
	if err != nil {
		uc.logger.Error("NightOptions: failed to fetch blocks for %s: %v", rng, err)
		return nil, fmt.Errorf("%w: failed to fetch blocks: %v", ErrUpstreamUnavailable, err)
	}

	// 5. Проверка проживания и опций
	ix := uc.resolver.Index(booked, blocks)
	stayAvailable := !ix.Candidates(rng, uc.mapping.WithTwins(req.CategoryID)...).Conflicts(stay.Start, stay.End)

	targets := uc.targets(req.CategoryID)
	candidates := ix.Candidates(rng, targets...)

	resp := &Response{
		CategoryID:    req.CategoryID,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Nights:        nights,
		StayAvailable: stayAvailable,
		EarlyCheckIn: Option{
			Available:          stayAvailable && !candidates.Conflicts(early.Start, early.End),
			From:               uc.cfg.EarlyCheckIn.From,
			To:                 uc.cfg.EarlyCheckIn.To,
			Window:             early,
			CheckedCategoryIDs: targets,
		},
		LateCheckOut: Option{
			Available:          stayAvailable && !candidates.Conflicts(late.Start, late.End),
			From:               uc.cfg.LateCheckOut.From,
			To:                 uc.cfg.LateCheckOut.To,
			Window:             late,
			CheckedCategoryIDs: targets,
		},
	}

	uc.logger.Info("NightOptions: category=%s, arrival=%s, stay=%t, early=%t, late=%t",
		req.CategoryID, arrival, resp.StayAvailable, resp.EarlyCheckIn.Available, resp.LateCheckOut.Available)

	return resp, nil
}

func (uc *UseCase) optionRange(d domain.Date, w domain.OptionWindow) domain.TimeRange {
	return domain.TimeRange{
		Start: uc.zone.At(d, w.From).UTC(),
		End:   uc.zone.At(d, w.To).UTC(),
	}
}

// targets категории, чьи резервации проверяются для опций
// Если у категории нет пары, проверяется сама категория
func (uc *UseCase) targets(categoryID string) []string {
	twin, hasTwin := uc.mapping.Twin(categoryID)

	switch uc.cfg.Target {
	case domain.OptionTargetSelf:
		return []string{categoryID}
	case domain.OptionTargetBoth:
		return uc.mapping.WithTwins(categoryID)
	default:
		if !hasTwin {
			uc.logger.Warn("NightOptions: category %s has no paired day category, checking itself", categoryID)
			return []string{categoryID}
		}
		return []string{twin}
	}
}

func containsCategory(categories []domain.ResourceCategory, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
