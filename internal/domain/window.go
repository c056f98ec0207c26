package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CandidateWindow окно (заезд, выезд) на конкретную дату
// Чистая функция от даты и политики длительности, поэтому кэшируется
type CandidateWindow struct {
	Date            Date
	Arrival         types.TimeString
	Departure       types.TimeString
	Start           time.Time // локальное время заезда
	End             time.Time // локальное время выезда
	DurationMinutes int
}

// DurationHours возвращает длительность окна в часах
func (w CandidateWindow) DurationHours() float64 {
	return float64(w.DurationMinutes) / 60
}
