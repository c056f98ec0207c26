package bulk_availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/slotgrid"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"

	_ "time/tzdata"
)

const (
	dayService   = "86fcc6a7-75ce-457a-a425-b3850108b6bf"
	nightService = "7ba0b732-93cc-477a-861d-b3850108b730"

	dayA   = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0a01" // пара nightA
	dayB   = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0a02" // сокращенный минимум
	nightA = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0b01"
	nightB = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0b02"

	inactive = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0c01"
	building = "0b6f2f37-1a4e-4d59-9a57-5a1c3b1f0c02"

	facilityBlock = "c390a691-e9a0-4aa0-860c-b3850108ab4c"
)

var (
	testZone = localtime.MustLoad("Europe/Brussels")

	june1 = domain.NewDate(2025, time.June, 1)

	hourlyArrivals   = []types.TimeString{"12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	hourlyDepartures = []types.TimeString{"13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}
)

func testCatalog() []domain.ResourceCategory {
	return []domain.ResourceCategory{
		{ID: dayA, ServiceID: dayService, Type: domain.CategorySuite, Active: true, Name: "Suite A"},
		{ID: dayB, ServiceID: dayService, Type: domain.CategoryRoom, Active: true, Name: "Suite B"},
		{ID: inactive, ServiceID: dayService, Type: domain.CategorySuite, Active: false, Name: "Closed"},
		{ID: building, ServiceID: dayService, Type: domain.CategoryType("Building"), Active: true, Name: "Building"},
		{ID: nightA, ServiceID: nightService, Type: domain.CategorySuite, Active: true, Name: "Suite A (night)"},
		{ID: nightB, ServiceID: nightService, Type: domain.CategorySuite, Active: true, Name: "Suite C (night)"},
	}
}

type serviceBooking struct {
	serviceID string
	interval  domain.BookedInterval
}

// fakeUpstream in-memory upstream с фильтрацией по сервису и интервалу, как у Mews
type fakeUpstream struct {
	mu sync.Mutex

	catalog []domain.ResourceCategory
	booked  []serviceBooking
	blocks  []domain.BlockInterval

	catalogErr error
	blocksErr  error
	bookedErr  func(rng domain.TimeRange) error

	catalogCalls [][]string
	bookedCalls  []domain.TimeRange
	blockCalls   []domain.TimeRange
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{catalog: testCatalog()}
}

func (f *fakeUpstream) book(serviceID, categoryID string, start, end time.Time) {
	f.booked = append(f.booked, serviceBooking{
		serviceID: serviceID,
		interval: domain.BookedInterval{
			ID:         categoryID + start.String(),
			CategoryID: categoryID,
			Start:      start.UTC(),
			End:        end.UTC(),
		},
	})
}

func (f *fakeUpstream) FetchCatalog(_ context.Context, serviceIDs []string) ([]domain.ResourceCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls = append(f.catalogCalls, serviceIDs)

	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	var result []domain.ResourceCategory
	for _, c := range f.catalog {
		if contains(serviceIDs, c.ServiceID) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeUpstream) FetchBookedIntervals(_ context.Context, rng domain.TimeRange, serviceIDs []string) ([]domain.BookedInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookedCalls = append(f.bookedCalls, rng)

	if f.bookedErr != nil {
		if err := f.bookedErr(rng); err != nil {
			return nil, err
		}
	}
	var result []domain.BookedInterval
	for _, b := range f.booked {
		if !contains(serviceIDs, b.serviceID) {
			continue
		}
		if rng.Overlaps(domain.TimeRange{Start: b.interval.Start, End: b.interval.End}) {
			result = append(result, b.interval)
		}
	}
	return result, nil
}

func (f *fakeUpstream) FetchBlockIntervals(_ context.Context, rng domain.TimeRange) ([]domain.BlockInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockCalls = append(f.blockCalls, rng)

	if f.blocksErr != nil {
		return nil, f.blocksErr
	}
	var result []domain.BlockInterval
	for _, b := range f.blocks {
		if rng.Overlaps(domain.TimeRange{Start: b.Start, End: b.End}) {
			result = append(result, b)
		}
	}
	return result, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var errUpstreamDown = errors.New("connection refused")

func testConfig() Config {
	return Config{
		DayServiceID:   dayService,
		NightServiceID: nightService,
		CategoryTypes:  []domain.CategoryType{domain.CategorySuite, domain.CategoryRoom},
		Policies: domain.Policies{
			Default:           domain.DurationPolicy{MinHours: 3, MaxHours: 6},
			Reduced:           domain.DurationPolicy{MinHours: 2, MaxHours: 6},
			ReducedCategories: map[string]struct{}{dayB: {}},
		},
		CheckIn:          "19:00",
		CheckOut:         "10:00",
		DayPartitioner:   partition.Partitioner{MaxDays: 4, MaxHours: 100, Buffer: time.Hour},
		NightPartitioner: partition.Partitioner{MaxDays: 4, MaxHours: 100, Buffer: time.Hour},
		DayWorkers:       4,
		NightWorkers:     4,
		BlockBufferDays:  2,
		MaxDates:         60,
	}
}

type fixture struct {
	upstream *fakeUpstream
	cfg      Config
	arrivals []types.TimeString
	departs  []types.TimeString
}

func newFixture() *fixture {
	return &fixture{
		upstream: newFakeUpstream(),
		cfg:      testConfig(),
		arrivals: hourlyArrivals,
		departs:  hourlyDepartures,
	}
}

func (f *fixture) useCase(t *testing.T) *UseCase {
	t.Helper()

	generator, err := slotgrid.NewGenerator(f.arrivals, f.departs, testZone, slotgrid.NewCache(0))
	require.NoError(t, err)

	mapping, err := pairing.NewMapping(map[string]string{dayA: nightA})
	require.NoError(t, err)

	resolver := conflict.NewResolver(time.Hour, facilityBlock, map[string][]string{
		dayA:   {"res-a"},
		nightA: {"res-a"},
		dayB:   {"res-b"},
		nightB: {"res-c"},
	})

	return NewUseCase(f.upstream, generator, resolver, mapping, testZone, f.cfg, logger.NewNop(), nil)
}

// local момент локального времени заведения
func local(d domain.Date, hour, minute int) time.Time {
	return testZone.AtClock(d, hour, minute)
}

func dateStrings(from domain.Date, n int) []string {
	result := make([]string, n)
	for i := range result {
		result[i] = from.AddDays(i).String()
	}
	return result
}
