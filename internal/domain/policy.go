package domain

// DurationPolicy допустимая длительность дневного бронирования в часах
type DurationPolicy struct {
	MinHours int
	MaxHours int
}

// Allows проверяет, что длительность в минутах лежит в [MinHours, MaxHours]
func (p DurationPolicy) Allows(minutes int) bool {
	return minutes >= p.MinHours*60 && minutes <= p.MaxHours*60
}

// Policies политики длительности по категориям
// Для категорий из Reduced действует сокращенный минимум
type Policies struct {
	Default           DurationPolicy
	Reduced           DurationPolicy
	ReducedCategories map[string]struct{}
}

// For возвращает политику для категории
// Если в запросе категория не выбрана (anyCategory), всегда используется Default,
// иначе в сводном календаре появились бы слоты, доступные только сокращенным категориям
func (p Policies) For(categoryID string, anyCategory bool) DurationPolicy {
	if anyCategory {
		return p.Default
	}
	if _, ok := p.ReducedCategories[categoryID]; ok {
		return p.Reduced
	}
	return p.Default
}
