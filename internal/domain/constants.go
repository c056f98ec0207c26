package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Mode режим бронирования
type Mode string

const (
	ModeDay   Mode = "day"   // бронирование на несколько часов днем (journée)
	ModeNight Mode = "night" // бронирование на ночь (nuitée)
)

// IsValid возвращает true для известных режимов
func (m Mode) IsValid() bool {
	return m == ModeDay || m == ModeNight
}

// Default configuration values
const (
	DefaultBufferHours     = 1
	DefaultDayMinHours     = 3
	DefaultDayMaxHours     = 6
	DefaultReducedMinHours = 2
	DefaultCheckInHour     = 19
	DefaultCheckOutHour    = 10
	DefaultNightMaxNights  = 2
	DefaultTimeZone        = "Europe/Brussels"

	// Ограничения upstream на размер окна запроса
	DefaultPartitionMaxDays  = 4
	DefaultPartitionMaxHours = 100

	DefaultDayWorkers      = 15
	DefaultNightWorkers    = 15
	DefaultBlockBufferDays = 2

	// Максимум различных дат в одном пакетном запросе
	DefaultMaxDates = 366
)

// ReservationStateCanceled состояние отмененной резервации в upstream
const ReservationStateCanceled = "Canceled"
