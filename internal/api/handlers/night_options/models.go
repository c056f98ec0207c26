package night_options

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	nightOptions "github.com/m04kA/SMC-AvailabilityService/internal/usecase/night_options"
)

// NightOptionsResponse HTTP response model
type NightOptionsResponse struct {
	CategoryID    string `json:"categoryId"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
	Nights        int    `json:"nights"`
	StayAvailable bool   `json:"stayAvailable"`
	EarlyCheckIn  Option `json:"earlyCheckIn"`
	LateCheckOut  Option `json:"lateCheckOut"`
	Status        string `json:"status"`
}

// Option модель опции раннего заезда или позднего выезда
type Option struct {
	Available          bool     `json:"available"`
	From               string   `json:"from"`
	To                 string   `json:"to"`
	StartUtc           string   `json:"startUtc"`
	EndUtc             string   `json:"endUtc"`
	CheckedCategoryIDs []string `json:"checkedCategoryIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *nightOptions.Response) *NightOptionsResponse {
	return &NightOptionsResponse{
		CategoryID:    resp.CategoryID,
		ArrivalDate:   resp.ArrivalDate.String(),
		DepartureDate: resp.DepartureDate.String(),
		Nights:        resp.Nights,
		StayAvailable: resp.StayAvailable,
		EarlyCheckIn:  fromOption(resp.EarlyCheckIn),
		LateCheckOut:  fromOption(resp.LateCheckOut),
		Status:        handlers.StatusSuccess,
	}
}

func fromOption(o nightOptions.Option) Option {
	ids := o.CheckedCategoryIDs
	if ids == nil {
		ids = []string{}
	}
	return Option{
		Available:          o.Available,
		From:               o.From.String(),
		To:                 o.To.String(),
		StartUtc:           o.Window.Start.UTC().Format(time.RFC3339),
		EndUtc:             o.Window.End.UTC().Format(time.RFC3339),
		CheckedCategoryIDs: ids,
	}
}
