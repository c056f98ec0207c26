package night_options

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Config конфигурация опций ночного бронирования
type Config struct {
	DayServiceID   string
	NightServiceID string
	CategoryTypes  []domain.CategoryType

	MaxNights int
	CheckIn   types.TimeString
	CheckOut  types.TimeString

	EarlyCheckIn domain.OptionWindow // окно в день заезда
	LateCheckOut domain.OptionWindow // окно в день выезда
	Target       domain.OptionTarget
}

// Request модель запроса опций ночного бронирования
type Request struct {
	CategoryID  string // ID ночной категории
	ArrivalDate string // YYYY-MM-DD
	Nights      int    // 0 означает одну ночь
}

// Response модель ответа
type Response struct {
	CategoryID    string
	ArrivalDate   domain.Date
	DepartureDate domain.Date
	Nights        int
	StayAvailable bool // само проживание [заезд, выезд) свободно
	EarlyCheckIn  Option
	LateCheckOut  Option
}

// Option результат проверки одной опции
type Option struct {
	Available          bool // окно свободно и проживание доступно
	From               types.TimeString
	To                 types.TimeString
	Window             domain.TimeRange
	CheckedCategoryIDs []string
}
