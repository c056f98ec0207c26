package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidDate возвращается при некорректном формате даты
var ErrInvalidDate = errors.New("domain: invalid date")

// Date календарная дата без времени и часового пояса
// Привязка к часовому поясу выполняется только в engine/localtime
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate нормализует дату (например, 32 января -> 1 февраля)
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate разбирает дату в формате YYYY-MM-DD или RFC 3339
// Для RFC 3339 берется записанная календарная дата, без перевода в другой часовой пояс
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// String возвращает дату в формате YYYY-MM-DD (ключ итоговой карты доступности)
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays возвращает дату, сдвинутую на n дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	return d.utc().Before(other.utc())
}

// DaysUntil возвращает количество календарных дней от d до other
func (d Date) DaysUntil(other Date) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDates разбирает, удаляет дубликаты и сортирует даты запроса
func NormalizeDates(raw []string) ([]Date, error) {
	seen := make(map[Date]struct{}, len(raw))
	dates := make([]Date, 0, len(raw))

	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates, nil
}
