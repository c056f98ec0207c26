package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval возвращается, когда конец интервала не позже начала
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// TimeRange полуоткрытый интервал [Start, End) в UTC
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Hours возвращает длину интервала в часах
func (r TimeRange) Hours() float64 {
	return r.End.Sub(r.Start).Hours()
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// Граничащие интервалы ([10:00, 12:00) и [12:00, 14:00)) НЕ пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !(!r.End.After(other.Start) || !r.Start.Before(other.End))
}

// String для логов
func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.UTC().Format(time.RFC3339), r.End.UTC().Format(time.RFC3339))
}

// BookedInterval существующая резервация категории
// Read-only: движок никогда не изменяет резервации
type BookedInterval struct {
	ID         string
	CategoryID string
	Start      time.Time
	End        time.Time
}

// Validate проверяет инварианты интервала на границе с upstream
func (b BookedInterval) Validate() error {
	if b.CategoryID == "" {
		return fmt.Errorf("%w: reservation %s has no category", ErrInvalidInterval, b.ID)
	}
	if !b.End.After(b.Start) {
		return fmt.Errorf("%w: reservation %s", ErrInvalidInterval, b.ID)
	}
	return nil
}

// BlockInterval блокировка ресурса (обслуживание, закрытие)
// AssignedResourceID - физический ресурс или идентификатор всего заведения
type BlockInterval struct {
	ID                 string
	AssignedResourceID string
	Start              time.Time
	End                time.Time
	Active             bool
}

// Validate проверяет инварианты блокировки на границе с upstream
func (b BlockInterval) Validate() error {
	if b.AssignedResourceID == "" {
		return fmt.Errorf("%w: block %s has no assigned resource", ErrInvalidInterval, b.ID)
	}
	if !b.End.After(b.Start) {
		return fmt.Errorf("%w: block %s", ErrInvalidInterval, b.ID)
	}
	return nil
}
