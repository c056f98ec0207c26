package slotgrid

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"

	_ "time/tzdata"
)

var (
	arrivals   = []types.TimeString{"12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	departures = []types.TimeString{"13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}

	defaultPolicy = domain.DurationPolicy{MinHours: 3, MaxHours: 6}
	reducedPolicy = domain.DurationPolicy{MinHours: 2, MaxHours: 6}
)

func newTestGenerator(t *testing.T, cache *Cache) *Generator {
	t.Helper()
	g, err := NewGenerator(arrivals, departures, localtime.MustLoad("Europe/Brussels"), cache)
	require.NoError(t, err)
	return g
}

func TestGenerator_Windows(t *testing.T) {
	g := newTestGenerator(t, nil)
	date := domain.NewDate(2025, time.June, 10)

	windows := g.Windows(date, defaultPolicy)
	require.Len(t, windows, 10)

	for _, w := range windows {
		assert.GreaterOrEqual(t, w.DurationMinutes, 180)
		assert.LessOrEqual(t, w.DurationMinutes, 360)
		assert.Equal(t, date, w.Date)
		assert.Equal(t, w.End.Sub(w.Start), time.Duration(w.DurationMinutes)*time.Minute)
	}

	// Сортировка по заезду, затем по выезду
	assert.Equal(t, types.TimeString("12:00"), windows[0].Arrival)
	assert.Equal(t, types.TimeString("15:00"), windows[0].Departure)
	assert.Equal(t, types.TimeString("15:00"), windows[9].Arrival)
	assert.Equal(t, types.TimeString("18:00"), windows[9].Departure)

	// 12:00 в Брюсселе летом это 10:00 UTC
	assert.Equal(t, time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC), windows[0].Start.UTC())

	assert.Len(t, g.Windows(date, reducedPolicy), 15)
}

func TestGenerator_NoWindowsWhenPolicyTooLong(t *testing.T) {
	g := newTestGenerator(t, nil)

	windows := g.Windows(domain.NewDate(2025, time.June, 10), domain.DurationPolicy{MinHours: 7, MaxHours: 9})
	assert.Empty(t, windows)
}

func TestGenerator_NormalizesGrid(t *testing.T) {
	g, err := NewGenerator(
		[]types.TimeString{"14:00", "12:00", "12:00"},
		[]types.TimeString{"18:00", "15:00"},
		localtime.MustLoad("Europe/Brussels"),
		nil,
	)
	require.NoError(t, err)

	windows := g.Windows(domain.NewDate(2025, time.June, 10), defaultPolicy)
	require.Len(t, windows, 3)
	assert.Equal(t, types.TimeString("12:00"), windows[0].Arrival)
	assert.Equal(t, types.TimeString("15:00"), windows[0].Departure)
	assert.Equal(t, types.TimeString("12:00"), windows[1].Arrival)
	assert.Equal(t, types.TimeString("18:00"), windows[1].Departure)
	assert.Equal(t, types.TimeString("14:00"), windows[2].Arrival)
}

func TestNewGenerator_Errors(t *testing.T) {
	zone := localtime.MustLoad("Europe/Brussels")

	_, err := NewGenerator(nil, departures, zone, nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGenerator(arrivals, []types.TimeString{}, zone, nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGenerator([]types.TimeString{"25:00"}, departures, zone, nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewGenerator(arrivals, departures, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestGenerator_Horizon(t *testing.T) {
	g := newTestGenerator(t, nil)

	h := g.Horizon(domain.NewDate(2025, time.January, 10))
	assert.Equal(t, time.Date(2025, time.January, 10, 11, 0, 0, 0, time.UTC), h.Start)
	assert.Equal(t, time.Date(2025, time.January, 10, 17, 0, 0, 0, time.UTC), h.End)
}

func TestGenerator_DSTTransitionDay(t *testing.T) {
	g := newTestGenerator(t, nil)

	// 30 марта 2025 часы переводятся в 02:00, окна днем остаются по настенному времени
	windows := g.Windows(domain.NewDate(2025, time.March, 30), defaultPolicy)
	require.NotEmpty(t, windows)
	assert.Equal(t, time.Date(2025, time.March, 30, 10, 0, 0, 0, time.UTC), windows[0].Start.UTC())
}

func TestCache_HitsAndMisses(t *testing.T) {
	cache := NewCache(0)
	g := newTestGenerator(t, cache)
	date := domain.NewDate(2025, time.June, 10)

	first := g.Windows(date, defaultPolicy)
	second := g.Windows(date, defaultPolicy)
	_ = g.Windows(date, reducedPolicy)

	assert.Equal(t, first, second)

	hits, misses, entries := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, 2, entries)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache(2)
	g := newTestGenerator(t, cache)

	d1 := domain.NewDate(2025, time.June, 1)
	d2 := domain.NewDate(2025, time.June, 2)
	d3 := domain.NewDate(2025, time.June, 3)

	g.Windows(d1, defaultPolicy)
	g.Windows(d2, defaultPolicy)
	g.Windows(d1, defaultPolicy) // d1 свежее d2
	g.Windows(d3, defaultPolicy) // вытесняет d2

	assert.Equal(t, 2, cache.Len())

	_, ok := cache.get(cacheKey{date: d1, minHours: 3, maxHours: 6})
	assert.True(t, ok)
	_, ok = cache.get(cacheKey{date: d2, minHours: 3, maxHours: 6})
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache(16)
	g := newTestGenerator(t, cache)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := domain.NewDate(2025, time.June, 1+i%20)
			windows := g.Windows(date, defaultPolicy)
			assert.Len(t, windows, 10, fmt.Sprintf("date %s", date))
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 16)
}

func TestCache_StaysBoundedUnderChurn(t *testing.T) {
	cache := NewCache(64)
	g := newTestGenerator(t, cache)
	start := domain.NewDate(2025, time.January, 1)

	for i := 0; i < 640; i++ {
		g.Windows(start.AddDays(i), defaultPolicy)
	}

	assert.Equal(t, 64, cache.Len())

	// Остаются только последние 64 даты
	_, ok := cache.get(cacheKey{date: start.AddDays(639), minHours: 3, maxHours: 6})
	assert.True(t, ok)
	_, ok = cache.get(cacheKey{date: start.AddDays(575), minHours: 3, maxHours: 6})
	assert.False(t, ok)
}

func TestCache_LookupReturnsStoredSlice(t *testing.T) {
	cache := NewCache(4)
	g := newTestGenerator(t, cache)
	date := domain.NewDate(2025, time.June, 10)

	first := g.Windows(date, defaultPolicy)
	snapshot := append([]domain.CandidateWindow(nil), first...)

	for i := 0; i < 10; i++ {
		again := g.Windows(date, defaultPolicy)
		require.Len(t, again, len(first))
		assert.Same(t, &first[0], &again[0])
	}
	assert.Equal(t, snapshot, first)

	hits, misses, _ := cache.Stats()
	assert.Equal(t, uint64(10), hits)
	assert.Equal(t, uint64(1), misses)
}
