package domain

// DayAvailability доступность даты в дневном режиме
type DayAvailability struct {
	Available           bool                         // есть хотя бы одна категория со свободным окном
	TotalCategories     int                          // количество проверенных категорий
	Categories          map[string][]CandidateWindow // свободные окна по ID категории
	TotalAvailableSlots int
}

// NightAvailability доступность даты в ночном режиме
type NightAvailability struct {
	// Available совпадает с AvailableNight (заезд вечером) для обратной совместимости
	Available                  bool
	AvailableMorning           bool
	AvailableNight             bool
	TotalCategories            int
	BookedCategories           int
	AvailableCategories        int // свободны на ночь
	AvailableMorningCategories int // свободны утром
	BookedCategoryIDs          []string
}
