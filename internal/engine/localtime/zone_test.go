package localtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"

	_ "time/tzdata"
)

func TestLoad(t *testing.T) {
	z, err := Load("Europe/Brussels")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Brussels", z.Name())

	_, err = Load("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownZone)

	_, err = Load("")
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestZone_At(t *testing.T) {
	z := MustLoad("Europe/Brussels")

	// Зимнее время UTC+1
	winter := z.At(domain.NewDate(2025, time.January, 15), types.TimeString("12:00"))
	assert.Equal(t, time.Date(2025, time.January, 15, 11, 0, 0, 0, time.UTC), winter.UTC())

	// Летнее время UTC+2
	summer := z.At(domain.NewDate(2025, time.July, 15), types.TimeString("12:00"))
	assert.Equal(t, time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC), summer.UTC())
}

func TestZone_DSTDay(t *testing.T) {
	z := MustLoad("Europe/Brussels")

	// 30 марта 2025 сутки длятся 23 часа
	spring := z.Day(domain.NewDate(2025, time.March, 30))
	assert.Equal(t, 23.0, spring.Hours())

	// 26 октября 2025 сутки длятся 25 часов
	autumn := z.Day(domain.NewDate(2025, time.October, 26))
	assert.Equal(t, 25.0, autumn.Hours())

	// Настенные 13:00 в день перехода по-прежнему 13:00 локально
	at := z.At(domain.NewDate(2025, time.March, 30), types.TimeString("13:00"))
	assert.Equal(t, 13, at.In(z.loc).Hour())
	assert.Equal(t, time.Date(2025, time.March, 30, 11, 0, 0, 0, time.UTC), at.UTC())
}

func TestZone_AfterMidnight(t *testing.T) {
	z := MustLoad("Europe/Brussels")
	checkout := types.TimeString("10:00")

	// Обычный день совпадает с настенным временем
	june := domain.NewDate(2025, time.June, 2)
	assert.Equal(t, z.At(june, checkout), z.AfterMidnight(june, checkout))

	// 26 октября: десять часов после полуночи это 09:00 по зимнему времени
	autumn := z.AfterMidnight(domain.NewDate(2025, time.October, 26), checkout)
	assert.Equal(t, time.Date(2025, time.October, 26, 8, 0, 0, 0, time.UTC), autumn.UTC())
	assert.Equal(t, 9, autumn.In(z.loc).Hour())

	// 30 марта: это 11:00 по летнему времени
	spring := z.AfterMidnight(domain.NewDate(2025, time.March, 30), checkout)
	assert.Equal(t, time.Date(2025, time.March, 30, 9, 0, 0, 0, time.UTC), spring.UTC())
	assert.Equal(t, 11, spring.In(z.loc).Hour())
}
