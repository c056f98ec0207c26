package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени суток HH:MM
const timeLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате HH:MM (например, "12:00")
// Не привязано к дате и часовому поясу
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	// time.Parse принимает "9:00" для layout "15:04", поэтому сверяем каноническую форму
	if parsed.Format(timeLayout) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Hour возвращает часы (0-23)
func (t TimeString) Hour() int {
	return t.Minutes() / 60
}

// Minute возвращает минуты (0-59)
func (t TimeString) Minute() int {
	return t.Minutes() % 60
}

// Minutes возвращает количество минут от полуночи
// Для некорректного значения возвращает 0
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// MinutesUntil возвращает разницу other - t в минутах (может быть отрицательной)
func (t TimeString) MinutesUntil(other TimeString) int {
	return other.Minutes() - t.Minutes()
}

// UnmarshalText реализует encoding.TextUnmarshaler (используется при чтении TOML конфигурации)
func (t *TimeString) UnmarshalText(text []byte) error {
	ts, err := NewTimeStringFromString(string(text))
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
