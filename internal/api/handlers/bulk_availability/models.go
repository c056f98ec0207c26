package bulk_availability

import (
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bulkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/bulk_availability"
)

// BulkAvailabilityRequest HTTP request model
type BulkAvailabilityRequest struct {
	ServiceID  string   `json:"serviceId"`
	Mode       string   `json:"mode,omitempty"`
	Dates      []string `json:"dates"`
	CategoryID string   `json:"categoryId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *BulkAvailabilityRequest) ToUseCaseRequest() *bulkAvailability.Request {
	return &bulkAvailability.Request{
		ServiceID:  r.ServiceID,
		Mode:       domain.Mode(r.Mode),
		Dates:      r.Dates,
		CategoryID: r.CategoryID,
	}
}

// BulkAvailabilityResponse HTTP response model
// Availability содержит map[string]DayAvailability или map[string]NightAvailability
type BulkAvailabilityResponse struct {
	Mode         string      `json:"mode"`
	Availability interface{} `json:"availability"`
	FailedDates  []string    `json:"failedDates"`
	Status       string      `json:"status"`
}

// DayAvailability доступность даты в дневном режиме
type DayAvailability struct {
	Available            bool              `json:"available"`
	TotalCategories      int               `json:"totalCategories"`
	CategoryAvailability map[string][]Slot `json:"categoryAvailability"`
	TotalAvailableSlots  int               `json:"totalAvailableSlots"`
}

// Slot свободное окно заезда и выезда
type Slot struct {
	Arrival   string  `json:"arrival"`
	Departure string  `json:"departure"`
	Duration  float64 `json:"duration"` // часы
}

// NightAvailability доступность даты в ночном режиме
type NightAvailability struct {
	Available                  bool     `json:"available"`
	AvailableMorning           bool     `json:"availableMorning"`
	AvailableNight             bool     `json:"availableNight"`
	TotalCategories            int      `json:"totalCategories"`
	BookedCategories           int      `json:"bookedCategories"`
	AvailableCategories        int      `json:"availableCategories"`
	AvailableMorningCategories int      `json:"availableMorningCategories"`
	BookedCategoryIDs          []string `json:"bookedCategoryIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkAvailability.Response) *BulkAvailabilityResponse {
	out := &BulkAvailabilityResponse{
		Mode:        string(resp.Mode),
		FailedDates: failedDates(resp.Failures),
		Status:      handlers.StatusSuccess,
	}

	if resp.Mode == domain.ModeNight {
		availability := make(map[string]NightAvailability, len(resp.Night))
		for date, a := range resp.Night {
			ids := a.BookedCategoryIDs
			if ids == nil {
				ids = []string{}
			}
			availability[date] = NightAvailability{
				Available:                  a.Available,
				AvailableMorning:           a.AvailableMorning,
				AvailableNight:             a.AvailableNight,
				TotalCategories:            a.TotalCategories,
				BookedCategories:           a.BookedCategories,
				AvailableCategories:        a.AvailableCategories,
				AvailableMorningCategories: a.AvailableMorningCategories,
				BookedCategoryIDs:          ids,
			}
		}
		out.Availability = availability
		return out
	}

	availability := make(map[string]DayAvailability, len(resp.Day))
	for date, a := range resp.Day {
		categories := make(map[string][]Slot, len(a.Categories))
		for id, windows := range a.Categories {
			slots := make([]Slot, len(windows))
			for i, w := range windows {
				slots[i] = Slot{
					Arrival:   w.Arrival.String(),
					Departure: w.Departure.String(),
					Duration:  w.DurationHours(),
				}
			}
			categories[id] = slots
		}
		availability[date] = DayAvailability{
			Available:            a.Available,
			TotalCategories:      a.TotalCategories,
			CategoryAvailability: categories,
			TotalAvailableSlots:  a.TotalAvailableSlots,
		}
	}
	out.Availability = availability
	return out
}

// failedDates даты неудачных партиций по возрастанию
func failedDates(failures []bulkAvailability.PartitionFailure) []string {
	dates := []string{}
	for _, f := range failures {
		for _, d := range f.Dates {
			dates = append(dates, d.String())
		}
	}
	sort.Strings(dates)
	return dates
}
