package night_options

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"

	_ "time/tzdata"
)

const (
	dayService   = "86fcc6a7-75ce-457a-a425-b3850108b6bf"
	nightService = "7ba0b732-93cc-477a-861d-b3850108b730"

	dayIntense   = "e4706d3a-2a06-4cb7-a449-b3850108c66f"
	nightIntense = "f867b5c6-f62d-451c-96ec-b3850108c66f"
	nightSolo    = "2a1e0f55-3c1f-4d8e-9b1a-b3850108c66f"
)

var (
	zone    = localtime.MustLoad("Europe/Brussels")
	arrival = domain.NewDate(2025, time.September, 12)

	errDown = errors.New("connection reset")
)

type fakeUpstream struct {
	booked     []domain.BookedInterval
	blocks     []domain.BlockInterval
	catalogErr error
	bookedErr  error
	blocksErr  error

	bookedRanges []domain.TimeRange
}

func (f *fakeUpstream) FetchCatalog(_ context.Context, _ []string) ([]domain.ResourceCategory, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return []domain.ResourceCategory{
		{ID: nightIntense, ServiceID: nightService, Type: domain.CategorySuite, Active: true},
		{ID: nightSolo, ServiceID: nightService, Type: domain.CategorySuite, Active: true},
	}, nil
}

func (f *fakeUpstream) FetchBookedIntervals(_ context.Context, rng domain.TimeRange, _ []string) ([]domain.BookedInterval, error) {
	f.bookedRanges = append(f.bookedRanges, rng)
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	return f.booked, nil
}

func (f *fakeUpstream) FetchBlockIntervals(_ context.Context, _ domain.TimeRange) ([]domain.BlockInterval, error) {
	if f.blocksErr != nil {
		return nil, f.blocksErr
	}
	return f.blocks, nil
}

func (f *fakeUpstream) book(categoryID string, d domain.Date, fromHour, toHour int) {
	f.booked = append(f.booked, domain.BookedInterval{
		ID:         categoryID,
		CategoryID: categoryID,
		Start:      zone.AtClock(d, fromHour, 0).UTC(),
		End:        zone.AtClock(d, toHour, 0).UTC(),
	})
}

func testConfig() Config {
	return Config{
		DayServiceID:   dayService,
		NightServiceID: nightService,
		CategoryTypes:  []domain.CategoryType{domain.CategorySuite, domain.CategoryRoom},
		MaxNights:      2,
		CheckIn:        "19:00",
		CheckOut:       "10:00",
		EarlyCheckIn:   domain.OptionWindow{From: "18:00", To: "19:00"},
		LateCheckOut:   domain.OptionWindow{From: "10:00", To: "12:00"},
		Target:         domain.OptionTargetPairedDay,
	}
}

func newUseCase(t *testing.T, upstream *fakeUpstream, cfg Config) *UseCase {
	t.Helper()
	mapping, err := pairing.NewMapping(map[string]string{dayIntense: nightIntense})
	require.NoError(t, err)

	resolver := conflict.NewResolver(time.Hour, "facility", nil)
	return NewUseCase(upstream, resolver, mapping, zone, cfg, logger.NewNop())
}

func TestExecute_AllOptionsFree(t *testing.T) {
	upstream := &fakeUpstream{}

	resp, err := newUseCase(t, upstream, testConfig()).Execute(context.Background(), &Request{
		CategoryID:  nightIntense,
		ArrivalDate: arrival.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Nights)
	assert.Equal(t, arrival.AddDays(1), resp.DepartureDate)
	assert.True(t, resp.StayAvailable)
	assert.True(t, resp.EarlyCheckIn.Available)
	assert.True(t, resp.LateCheckOut.Available)
	assert.Equal(t, []string{dayIntense}, resp.EarlyCheckIn.CheckedCategoryIDs)

	// Один интервал загрузки: 17:00 в день заезда - 13:00 в день выезда
	require.Len(t, upstream.bookedRanges, 1)
	assert.Equal(t, zone.AtClock(arrival, 17, 0).UTC(), upstream.bookedRanges[0].Start)
	assert.Equal(t, zone.AtClock(arrival.AddDays(1), 13, 0).UTC(), upstream.bookedRanges[0].End)
}

func TestExecute_PairedDayBookings(t *testing.T) {
	tests := []struct {
		name  string
		book  func(f *fakeUpstream)
		stay  bool
		early bool
		late  bool
	}{
		{
			// Буфер заканчивается в 18:00, ранний заезд еще возможен
			name:  "afternoon day booking on arrival",
			book:  func(f *fakeUpstream) { f.book(dayIntense, arrival, 14, 17) },
			stay:  true,
			early: true,
			late:  true,
		},
		{
			name:  "evening day booking on arrival",
			book:  func(f *fakeUpstream) { f.book(dayIntense, arrival, 15, 18) },
			stay:  true,
			early: false,
			late:  true,
		},
		{
			name:  "midday day booking on departure",
			book:  func(f *fakeUpstream) { f.book(dayIntense, arrival.AddDays(1), 12, 15) },
			stay:  true,
			early: true,
			late:  false,
		},
		{
			// Буфер начинается в 12:00, поздний выезд до 12:00 не задет
			name:  "afternoon day booking on departure",
			book:  func(f *fakeUpstream) { f.book(dayIntense, arrival.AddDays(1), 13, 16) },
			stay:  true,
			early: true,
			late:  true,
		},
		{
			name:  "stay itself booked",
			book:  func(f *fakeUpstream) { f.book(nightIntense, arrival, 19, 23) },
			stay:  false,
			early: false,
			late:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := &fakeUpstream{}
			tt.book(upstream)

			resp, err := newUseCase(t, upstream, testConfig()).Execute(context.Background(), &Request{
				CategoryID:  nightIntense,
				ArrivalDate: arrival.String(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.stay, resp.StayAvailable, "stay")
			assert.Equal(t, tt.early, resp.EarlyCheckIn.Available, "early")
			assert.Equal(t, tt.late, resp.LateCheckOut.Available, "late")
		})
	}
}

func TestExecute_Targets(t *testing.T) {
	tests := []struct {
		name     string
		target   domain.OptionTarget
		category string
		want     []string
	}{
		{name: "paired day", target: domain.OptionTargetPairedDay, category: nightIntense, want: []string{dayIntense}},
		{name: "self", target: domain.OptionTargetSelf, category: nightIntense, want: []string{nightIntense}},
		{name: "both", target: domain.OptionTargetBoth, category: nightIntense, want: []string{nightIntense, dayIntense}},
		{name: "paired day without pair", target: domain.OptionTargetPairedDay, category: nightSolo, want: []string{nightSolo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Target = tt.target

			resp, err := newUseCase(t, &fakeUpstream{}, cfg).Execute(context.Background(), &Request{
				CategoryID:  tt.category,
				ArrivalDate: arrival.String(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.EarlyCheckIn.CheckedCategoryIDs)
		})
	}
}

func TestExecute_SelfTargetIgnoresDayBookings(t *testing.T) {
	upstream := &fakeUpstream{}
	upstream.book(dayIntense, arrival, 15, 18)

	cfg := testConfig()
	cfg.Target = domain.OptionTargetSelf

	resp, err := newUseCase(t, upstream, cfg).Execute(context.Background(), &Request{
		CategoryID:  nightIntense,
		ArrivalDate: arrival.String(),
	})
	require.NoError(t, err)
	assert.True(t, resp.EarlyCheckIn.Available)
}

func TestExecute_TwoNights(t *testing.T) {
	upstream := &fakeUpstream{}
	upstream.book(dayIntense, arrival.AddDays(2), 11, 14)

	resp, err := newUseCase(t, upstream, testConfig()).Execute(context.Background(), &Request{
		CategoryID:  nightIntense,
		ArrivalDate: arrival.String(),
		Nights:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, arrival.AddDays(2), resp.DepartureDate)
	assert.True(t, resp.StayAvailable)
	assert.False(t, resp.LateCheckOut.Available)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		upstream *fakeUpstream
		wantErr  error
	}{
		{name: "nil request", req: nil, wantErr: ErrInvalidRequest},
		{name: "missing category", req: &Request{ArrivalDate: "2025-09-12"}, wantErr: ErrInvalidRequest},
		{name: "invalid category", req: &Request{CategoryID: "intense", ArrivalDate: "2025-09-12"}, wantErr: ErrInvalidRequest},
		{name: "missing arrival", req: &Request{CategoryID: nightIntense}, wantErr: ErrInvalidRequest},
		{name: "bad arrival", req: &Request{CategoryID: nightIntense, ArrivalDate: "12.09.2025"}, wantErr: ErrInvalidRequest},
		{name: "too many nights", req: &Request{CategoryID: nightIntense, ArrivalDate: "2025-09-12", Nights: 3}, wantErr: ErrInvalidRequest},
		{name: "negative nights", req: &Request{CategoryID: nightIntense, ArrivalDate: "2025-09-12", Nights: -1}, wantErr: ErrInvalidRequest},
		{name: "day category", req: &Request{CategoryID: dayIntense, ArrivalDate: "2025-09-12"}, wantErr: ErrCategoryNotFound},
		{
			name:     "catalog down",
			req:      &Request{CategoryID: nightIntense, ArrivalDate: "2025-09-12"},
			upstream: &fakeUpstream{catalogErr: errDown},
			wantErr:  ErrUpstreamUnavailable,
		},
		{
			name:     "reservations down",
			req:      &Request{CategoryID: nightIntense, ArrivalDate: "2025-09-12"},
			upstream: &fakeUpstream{bookedErr: errDown},
			wantErr:  ErrUpstreamUnavailable,
		},
		{
			name:     "blocks down",
			req:      &Request{CategoryID: nightIntense, ArrivalDate: "2025-09-12"},
			upstream: &fakeUpstream{blocksErr: errDown},
			wantErr:  ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := tt.upstream
			if upstream == nil {
				upstream = &fakeUpstream{}
			}

			resp, err := newUseCase(t, upstream, testConfig()).Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
