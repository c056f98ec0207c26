// Package pairing связывает категории дневного и ночного каталогов,
// за которыми стоит один физический сюит.
package pairing

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidMapping возвращается при некорректной таблице пар
var ErrInvalidMapping = errors.New("pairing: invalid mapping")

// Mapping симметричная таблица пар категорий
type Mapping struct {
	twins map[string]string
}

// NewMapping строит симметричную таблицу из пар день -> ночь
// Категория не может входить в две пары и не может быть в паре сама с собой
func NewMapping(dayToNight map[string]string) (*Mapping, error) {
	twins := make(map[string]string, len(dayToNight)*2)

	// Детерминированный порядок, чтобы ошибка всегда указывала на одну и ту же пару
	days := make([]string, 0, len(dayToNight))
	for day := range dayToNight {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		night := dayToNight[day]
		if day == "" || night == "" {
			return nil, fmt.Errorf("%w: empty category id in pair %q -> %q", ErrInvalidMapping, day, night)
		}
		if day == night {
			return nil, fmt.Errorf("%w: category %s paired with itself", ErrInvalidMapping, day)
		}
		if _, ok := twins[day]; ok {
			return nil, fmt.Errorf("%w: category %s used in two pairs", ErrInvalidMapping, day)
		}
		if _, ok := twins[night]; ok {
			return nil, fmt.Errorf("%w: category %s used in two pairs", ErrInvalidMapping, night)
		}
		twins[day] = night
		twins[night] = day
	}

	return &Mapping{twins: twins}, nil
}

// Twin возвращает парную категорию
func (m *Mapping) Twin(categoryID string) (string, bool) {
	if m == nil {
		return "", false
	}
	twin, ok := m.twins[categoryID]
	return twin, ok
}

// WithTwins возвращает категории вместе с их парами без дубликатов, сохраняя порядок
func (m *Mapping) WithTwins(categoryIDs ...string) []string {
	seen := make(map[string]struct{}, len(categoryIDs)*2)
	result := make([]string, 0, len(categoryIDs)*2)
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	for _, id := range categoryIDs {
		add(id)
		if twin, ok := m.Twin(id); ok {
			add(twin)
		}
	}
	return result
}

// Len возвращает количество пар
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.twins) / 2
}

// Propagate делает пары совместно недоступными: если одна категория пары недоступна,
// вторая получает значение blocked. Решения принимаются по входному состоянию,
// поэтому повторный вызов ничего не меняет. Пары, где одной категории нет в карте, не трогаются
func Propagate[V any](perCategory map[string]V, m *Mapping, unavailable func(V) bool, blocked V) {
	if m == nil || len(perCategory) == 0 {
		return
	}

	toBlock := make([]string, 0)
	for id, value := range perCategory {
		twin, ok := m.Twin(id)
		if !ok {
			continue
		}
		twinValue, ok := perCategory[twin]
		if !ok {
			continue
		}
		if unavailable(value) || unavailable(twinValue) {
			toBlock = append(toBlock, id)
		}
	}

	for _, id := range toBlock {
		perCategory[id] = blocked
	}
}
