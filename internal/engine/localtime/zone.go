// Package localtime единственная граница между UTC и локальным временем заведения.
// Все сравнения интервалов выполняются в абсолютном времени, а локальные часы
// (заезд, выезд, полночь) переводятся в абсолютное время только здесь.
package localtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrUnknownZone возвращается, если часовой пояс не найден в базе tz
var ErrUnknownZone = errors.New("localtime: unknown time zone")

// Zone часовой пояс заведения
type Zone struct {
	loc *time.Location
}

// Load загружает именованный часовой пояс IANA (например, "Europe/Brussels")
func Load(name string) (*Zone, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownZone, name, err)
	}
	return &Zone{loc: loc}, nil
}

// MustLoad как Load, но паникует при ошибке. Для тестов и констант
func MustLoad(name string) *Zone {
	z, err := Load(name)
	if err != nil {
		panic(err)
	}
	return z
}

// Name возвращает имя часового пояса
func (z *Zone) Name() string {
	return z.loc.String()
}

// Midnight возвращает начало локальных суток даты
func (z *Zone) Midnight(d domain.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, z.loc)
}

// At возвращает момент, когда локальные часы показывают ts в дату d
// В дни перехода на летнее время длина суток отличается от 24 часов,
// поэтому момент строится из настенного времени, а не сложением с полночью
func (z *Zone) At(d domain.Date, ts types.TimeString) time.Time {
	return z.AtClock(d, ts.Hour(), ts.Minute())
}

// AtClock как At, но принимает часы и минуты
func (z *Zone) AtClock(d domain.Date, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, z.loc)
}

// AfterMidnight возвращает момент через ts.Hour() часов и ts.Minute() минут после полуночи даты.
// В отличие от At, в дни перехода на летнее время результат расходится с настенными часами на час
func (z *Zone) AfterMidnight(d domain.Date, ts types.TimeString) time.Time {
	offset := time.Duration(ts.Hour())*time.Hour + time.Duration(ts.Minute())*time.Minute
	return z.Midnight(d).Add(offset)
}

// Day возвращает локальные сутки даты [полночь, следующая полночь) в UTC
func (z *Zone) Day(d domain.Date) domain.TimeRange {
	return domain.TimeRange{
		Start: z.Midnight(d).UTC(),
		End:   z.Midnight(d.AddDays(1)).UTC(),
	}
}
