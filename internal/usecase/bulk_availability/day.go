package bulk_availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
)

func (uc *UseCase) runDay(
	ctx context.Context,
	vr *validatedRequest,
	categories []domain.ResourceCategory,
	blocks []domain.BlockInterval,
) (map[string]domain.DayAvailability, []partition.Failure) {
	parts := uc.split(uc.cfg.DayPartitioner, vr.dates, uc.generator.Horizon)
	anyCategory := vr.categoryID == ""

	return partition.Run(ctx, uc.orchestrator(domain.ModeDay, uc.cfg.DayWorkers), parts,
		func(ctx context.Context, part partition.Partition) (map[string]domain.DayAvailability, error) {
			booked, err := uc.fetchBooked(ctx, part)
			if err != nil {
				return nil, err
			}

			ix := uc.resolver.Index(booked, blocks)
			result := make(map[string]domain.DayAvailability, len(part.Dates))
			for _, date := range part.Dates {
				result[date.String()] = uc.dayAvailability(ix, date, categories, anyCategory)
			}
			return result, nil
		})
}

// dayAvailability вычисляет свободные окна всех категорий на дату
func (uc *UseCase) dayAvailability(
	ix *conflict.Index,
	date domain.Date,
	categories []domain.ResourceCategory,
	anyCategory bool,
) domain.DayAvailability {
	horizon := uc.generator.Horizon(date)
	perCategory := make(map[string][]domain.CandidateWindow, len(categories))

	for _, c := range categories {
		windows := uc.generator.Windows(date, uc.cfg.Policies.For(c.ID, anyCategory))

		// Окно должно быть свободно и для парной категории: это тот же физический сюит
		candidates := ix.Candidates(horizon, uc.mapping.WithTwins(c.ID)...)

		free := make([]domain.CandidateWindow, 0, len(windows))
		if candidates.Empty() {
			perCategory[c.ID] = append(free, windows...)
			continue
		}
		for _, w := range windows {
			if !candidates.Conflicts(w.Start, w.End) {
				free = append(free, w)
			}
		}
		perCategory[c.ID] = free
	}

	pairing.Propagate(perCategory, uc.mapping, func(w []domain.CandidateWindow) bool {
		return len(w) == 0
	}, []domain.CandidateWindow{})

	result := domain.DayAvailability{
		TotalCategories: len(categories),
		Categories:      perCategory,
	}
	for _, windows := range perCategory {
		result.TotalAvailableSlots += len(windows)
	}
	result.Available = result.TotalAvailableSlots > 0

	return result
}
