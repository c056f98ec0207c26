package bulk_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
)

// nightWindows утреннее и ночное окна даты
type nightWindows struct {
	morning domain.TimeRange // [полночь, выезд)
	night   domain.TimeRange // [заезд, следующая полночь + часы выезда)
	day     domain.TimeRange // локальные сутки даты
}

func (uc *UseCase) nightWindowsOf(date domain.Date) nightWindows {
	return nightWindows{
		morning: domain.TimeRange{
			Start: uc.zone.Midnight(date).UTC(),
			End:   uc.zone.At(date, uc.cfg.CheckOut).UTC(),
		},
		night: domain.TimeRange{
			Start: uc.zone.At(date, uc.cfg.CheckIn).UTC(),
			End:   uc.nightEnd(date),
		},
		day: uc.zone.Day(date),
	}
}

// nightEnd конец ночного окна отсчитывается от следующей полуночи,
// поэтому в ночь перевода часов он сдвигается относительно настенного времени выезда
func (uc *UseCase) nightEnd(date domain.Date) time.Time {
	return uc.zone.AfterMidnight(date.AddDays(1), uc.cfg.CheckOut).UTC()
}

// nightHorizon покрывает оба окна и локальные сутки даты
func (uc *UseCase) nightHorizon(date domain.Date) domain.TimeRange {
	return domain.TimeRange{
		Start: uc.zone.Midnight(date).UTC(),
		End:   uc.nightEnd(date),
	}
}

func (uc *UseCase) runNight(
	ctx context.Context,
	vr *validatedRequest,
	categories []domain.ResourceCategory,
	blocks []domain.BlockInterval,
) (map[string]domain.NightAvailability, []partition.Failure) {
	parts := uc.split(uc.cfg.NightPartitioner, vr.dates, uc.nightHorizon)

	return partition.Run(ctx, uc.orchestrator(domain.ModeNight, uc.cfg.NightWorkers), parts,
		func(ctx context.Context, part partition.Partition) (map[string]domain.NightAvailability, error) {
			booked, err := uc.fetchBooked(ctx, part)
			if err != nil {
				return nil, err
			}

			ix := uc.resolver.Index(booked, blocks)
			result := make(map[string]domain.NightAvailability, len(part.Dates))
			for _, date := range part.Dates {
				result[date.String()] = uc.nightAvailability(ix, date, categories)
			}
			return result, nil
		})
}

// nightAvailability проверяет утреннее и ночное окна целиком, без перебора слотов
func (uc *UseCase) nightAvailability(
	ix *conflict.Index,
	date domain.Date,
	categories []domain.ResourceCategory,
) domain.NightAvailability {
	w := uc.nightWindowsOf(date)
	horizon := uc.nightHorizon(date)

	morningFree := make(map[string]bool, len(categories))
	nightFree := make(map[string]bool, len(categories))
	bookedIDs := make([]string, 0)

	for _, c := range categories {
		candidates := ix.Candidates(horizon, uc.mapping.WithTwins(c.ID)...)

		morningFree[c.ID] = !candidates.Conflicts(w.morning.Start, w.morning.End)
		nightFree[c.ID] = !candidates.Conflicts(w.night.Start, w.night.End)

		if candidates.Booked(w.day.Start, w.day.End) {
			bookedIDs = append(bookedIDs, c.ID)
		}
	}

	unavailable := func(free bool) bool { return !free }
	pairing.Propagate(morningFree, uc.mapping, unavailable, false)
	pairing.Propagate(nightFree, uc.mapping, unavailable, false)

	result := domain.NightAvailability{
		TotalCategories:   len(categories),
		BookedCategories:  len(bookedIDs),
		BookedCategoryIDs: bookedIDs,
	}
	for _, c := range categories {
		if morningFree[c.ID] {
			result.AvailableMorningCategories++
		}
		if nightFree[c.ID] {
			result.AvailableCategories++
		}
	}
	result.AvailableMorning = result.AvailableMorningCategories > 0
	result.AvailableNight = result.AvailableCategories > 0
	result.Available = result.AvailableNight

	return result
}
