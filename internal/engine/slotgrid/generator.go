// Package slotgrid генерирует кандидатные окна дневного бронирования.
//
// Окно это пара (время заезда, время выезда) из фиксированных сеток,
// длительность которой лежит в границах политики категории. Результат
// зависит только от даты и политики, поэтому кэшируется на весь процесс.
package slotgrid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrEmptyGrid возвращается, если сетка заездов или выездов пуста
	ErrEmptyGrid = errors.New("slotgrid: empty arrival or departure grid")

	// ErrInvalidGrid возвращается при некорректном времени в сетке
	ErrInvalidGrid = errors.New("slotgrid: invalid grid time")
)

// Generator генератор окон для одного часового пояса
type Generator struct {
	arrivals   []types.TimeString
	departures []types.TimeString
	zone       *localtime.Zone
	cache      *Cache
}

// NewGenerator создает генератор. Сетки сортируются и очищаются от дубликатов.
// cache может быть nil, тогда окна вычисляются при каждом вызове
func NewGenerator(arrivals, departures []types.TimeString, zone *localtime.Zone, cache *Cache) (*Generator, error) {
	if len(arrivals) == 0 || len(departures) == 0 {
		return nil, ErrEmptyGrid
	}
	if zone == nil {
		return nil, fmt.Errorf("%w: zone is required", ErrInvalidGrid)
	}

	a, err := normalizeGrid(arrivals)
	if err != nil {
		return nil, err
	}
	d, err := normalizeGrid(departures)
	if err != nil {
		return nil, err
	}

	return &Generator{
		arrivals:   a,
		departures: d,
		zone:       zone,
		cache:      cache,
	}, nil
}

func normalizeGrid(grid []types.TimeString) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{}, len(grid))
	result := make([]types.TimeString, 0, len(grid))
	for _, ts := range grid {
		if err := ts.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
		}
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		result = append(result, ts)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IsBefore(result[j])
	})
	return result, nil
}

// Windows возвращает все окна даты, допустимые политикой,
// отсортированные по времени заезда, затем по времени выезда.
// Возвращаемый срез общий для всех вызывающих и не должен изменяться
func (g *Generator) Windows(date domain.Date, policy domain.DurationPolicy) []domain.CandidateWindow {
	key := cacheKey{date: date, minHours: policy.MinHours, maxHours: policy.MaxHours}

	if g.cache != nil {
		if windows, ok := g.cache.get(key); ok {
			return windows
		}
	}

	windows := g.generate(date, policy)

	if g.cache != nil {
		g.cache.set(key, windows)
	}
	return windows
}

func (g *Generator) generate(date domain.Date, policy domain.DurationPolicy) []domain.CandidateWindow {
	windows := make([]domain.CandidateWindow, 0)

	for _, arrival := range g.arrivals {
		for _, departure := range g.departures {
			// Длительность по настенным часам: сетки лежат внутри одного дня
			minutes := arrival.MinutesUntil(departure)
			if minutes <= 0 || !policy.Allows(minutes) {
				continue
			}

			windows = append(windows, domain.CandidateWindow{
				Date:            date,
				Arrival:         arrival,
				Departure:       departure,
				Start:           g.zone.At(date, arrival),
				End:             g.zone.At(date, departure),
				DurationMinutes: minutes,
			})
		}
	}

	return windows
}

// Horizon возвращает интервал [самый ранний заезд, самый поздний выезд] даты в UTC
// Любое окно даты лежит внутри горизонта
func (g *Generator) Horizon(date domain.Date) domain.TimeRange {
	return domain.TimeRange{
		Start: g.zone.At(date, g.arrivals[0]).UTC(),
		End:   g.zone.At(date, g.departures[len(g.departures)-1]).UTC(),
	}
}

// Zone возвращает часовой пояс генератора
func (g *Generator) Zone() *localtime.Zone {
	return g.zone
}
