package bulk_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса доступности на набор дат
type Request struct {
	ServiceID  string      // ID сервиса (дневной или ночной); определяет режим
	Mode       domain.Mode // Необязательный режим; если задан, должен совпадать с режимом сервиса
	Dates      []string    // Даты в формате YYYY-MM-DD или RFC 3339
	CategoryID string      // Необязательный ID категории
}

// Response модель ответа
// Заполнено одно из полей Day или Night в зависимости от режима
type Response struct {
	Mode     domain.Mode
	Day      map[string]domain.DayAvailability
	Night    map[string]domain.NightAvailability
	Failures []PartitionFailure // партиции, даты которых отсутствуют в ответе
}

// PartitionFailure диагностика неудачной партиции
type PartitionFailure struct {
	Dates []domain.Date
	Err   error
}

// Config статическая конфигурация режимов
type Config struct {
	DayServiceID   string
	NightServiceID string
	CategoryTypes  []domain.CategoryType
	Policies       domain.Policies

	CheckIn  types.TimeString // начало ночного окна
	CheckOut types.TimeString // конец ночного окна на следующий день

	DayPartitioner   partition.Partitioner
	NightPartitioner partition.Partitioner
	DayWorkers       int
	NightWorkers     int
	BlockBufferDays  int
	MaxDates         int // 0 без ограничения
}

// serviceIDs оба сервиса: резервации одного сюита могут быть в любом из них
func (c Config) serviceIDs() []string {
	return []string{c.DayServiceID, c.NightServiceID}
}

// modeOf возвращает режим сервиса
func (c Config) modeOf(serviceID string) (domain.Mode, bool) {
	switch serviceID {
	case c.DayServiceID:
		return domain.ModeDay, true
	case c.NightServiceID:
		return domain.ModeNight, true
	default:
		return "", false
	}
}

// serviceOf возвращает сервис режима
func (c Config) serviceOf(mode domain.Mode) string {
	if mode == domain.ModeNight {
		return c.NightServiceID
	}
	return c.DayServiceID
}
