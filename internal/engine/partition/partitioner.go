// Package partition делит запрошенные даты на партиции, укладывающиеся в лимиты upstream,
// и параллельно обрабатывает их с ограничением на число воркеров.
package partition

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
)

// HorizonFunc возвращает интервал, внутри которого лежат все проверяемые окна даты
type HorizonFunc func(domain.Date) domain.TimeRange

// Partition непрерывный поддиапазон дат с общим интервалом загрузки
type Partition struct {
	Index int
	Dates []domain.Date
	Range domain.TimeRange // интервал загрузки резерваций в UTC, включая буфер
}

// First возвращает первую дату партиции
func (p Partition) First() domain.Date {
	return p.Dates[0]
}

// Last возвращает последнюю дату партиции
func (p Partition) Last() domain.Date {
	return p.Dates[len(p.Dates)-1]
}

// Partitioner параметры разбиения
type Partitioner struct {
	MaxDays  int           // максимальный календарный размах партиции в днях
	MaxHours int           // максимальная длина интервала загрузки в часах
	Buffer   time.Duration // буфер уборки вокруг резерваций
}

// Split жадно разбивает отсортированные уникальные даты на партиции
// Интервал загрузки партиции [horizon(first).Start - Buffer, horizon(last).End + Buffer]
// покрывает все резервации, чей буфер может задеть окна ее дат.
// Дата, которая сама по себе превышает MaxHours, все равно образует отдельную партицию
func (p Partitioner) Split(dates []domain.Date, horizon HorizonFunc) []Partition {
	if len(dates) == 0 {
		return nil
	}

	parts := make([]Partition, 0, len(dates)/max(p.MaxDays, 1)+1)
	current := []domain.Date{dates[0]}

	for _, d := range dates[1:] {
		if p.fits(current[0], d, horizon) {
			current = append(current, d)
			continue
		}
		parts = append(parts, p.build(len(parts), current, horizon))
		current = []domain.Date{d}
	}
	parts = append(parts, p.build(len(parts), current, horizon))

	return parts
}

func (p Partitioner) fits(first, last domain.Date, horizon HorizonFunc) bool {
	if p.MaxDays > 0 && first.DaysUntil(last)+1 > p.MaxDays {
		return false
	}
	if p.MaxHours > 0 && p.fetchRange(first, last, horizon).Hours() > float64(p.MaxHours) {
		return false
	}
	return true
}

func (p Partitioner) build(index int, dates []domain.Date, horizon HorizonFunc) Partition {
	return Partition{
		Index: index,
		Dates: dates,
		Range: p.fetchRange(dates[0], dates[len(dates)-1], horizon),
	}
}

func (p Partitioner) fetchRange(first, last domain.Date, horizon HorizonFunc) domain.TimeRange {
	return domain.TimeRange{
		Start: horizon(first).Start.Add(-p.Buffer).UTC(),
		End:   horizon(last).End.Add(p.Buffer).UTC(),
	}
}

// ExceedsHours возвращает true, если интервал загрузки партиции больше лимита
// Возможно только для партиции из одной даты
func (p Partitioner) ExceedsHours(part Partition) bool {
	return p.MaxHours > 0 && part.Range.Hours() > float64(p.MaxHours)
}

// BlockRange возвращает интервал загрузки блокировок для всего запроса:
// от полуночи (first - bufferDays) до полуночи (last + 1 + bufferDays)
func BlockRange(dates []domain.Date, zone *localtime.Zone, bufferDays int) domain.TimeRange {
	if len(dates) == 0 {
		return domain.TimeRange{}
	}
	first, last := dates[0], dates[len(dates)-1]
	return domain.TimeRange{
		Start: zone.Midnight(first.AddDays(-bufferDays)).UTC(),
		End:   zone.Midnight(last.AddDays(1 + bufferDays)).UTC(),
	}
}
