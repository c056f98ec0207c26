package bulk_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bulkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/bulk_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	resp *bulkAvailability.Response
	err  error
	got  *bulkAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *bulkAvailability.Request) (*bulkAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Day(t *testing.T) {
	start := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &bulkAvailability.Response{
		Mode: domain.ModeDay,
		Day: map[string]domain.DayAvailability{
			"2025-06-01": {
				Available:       true,
				TotalCategories: 1,
				Categories: map[string][]domain.CandidateWindow{
					"suite": {{Arrival: "12:00", Departure: "15:00", Start: start, End: start.Add(3 * time.Hour), DurationMinutes: 180}},
				},
				TotalAvailableSlots: 1,
			},
		},
		Failures: []bulkAvailability.PartitionFailure{
			{Dates: []domain.Date{domain.NewDate(2025, time.June, 6), domain.NewDate(2025, time.June, 5)}},
		},
	}}

	rec := serve(t, uc, `{"serviceId":"day","dates":["2025-06-01","2025-06-05","2025-06-06"],"categoryId":"suite"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, &bulkAvailability.Request{
		ServiceID:  "day",
		Dates:      []string{"2025-06-01", "2025-06-05", "2025-06-06"},
		CategoryID: "suite",
	}, uc.got)

	assert.JSONEq(t, `{
		"mode": "day",
		"availability": {
			"2025-06-01": {
				"available": true,
				"totalCategories": 1,
				"categoryAvailability": {"suite": [{"arrival": "12:00", "departure": "15:00", "duration": 3}]},
				"totalAvailableSlots": 1
			}
		},
		"failedDates": ["2025-06-05", "2025-06-06"],
		"status": "success"
	}`, rec.Body.String())
}

func TestHandle_Night(t *testing.T) {
	uc := &fakeUseCase{resp: &bulkAvailability.Response{
		Mode: domain.ModeNight,
		Night: map[string]domain.NightAvailability{
			"2025-06-01": {TotalCategories: 2, AvailableMorning: true, AvailableMorningCategories: 2},
		},
	}}

	rec := serve(t, uc, `{"serviceId":"night","mode":"night","dates":["2025-06-01"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ModeNight, uc.got.Mode)

	var body struct {
		Availability map[string]NightAvailability `json:"availability"`
		FailedDates  []string                     `json:"failedDates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, NightAvailability{
		AvailableMorning:           true,
		TotalCategories:            2,
		AvailableMorningCategories: 2,
		BookedCategoryIDs:          []string{},
	}, body.Availability["2025-06-01"])
	assert.NotNil(t, body.FailedDates)
	assert.Empty(t, body.FailedDates)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"dates":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"dates":[],"suite_id":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid request", body: `{}`, err: bulkAvailability.ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "category not found", body: `{}`, err: bulkAvailability.ErrCategoryNotFound, wantStatus: http.StatusNotFound},
		{
			name:       "upstream unavailable",
			body:       `{}`,
			err:        fmt.Errorf("%w: catalog: timeout", bulkAvailability.ErrUpstreamUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{name: "internal", body: `{}`, err: bulkAvailability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}
