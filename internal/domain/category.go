package domain

// CategoryType тип категории ресурса в upstream каталоге
type CategoryType string

const (
	CategorySuite             CategoryType = "Suite"
	CategoryRoom              CategoryType = "Room"
	CategoryOther             CategoryType = "Other"
	CategoryPrivateSpaceOther CategoryType = "PrivateSpace-Other"
)

// ResourceCategory бронируемая категория ресурса (сюит)
// Загружается один раз на запрос и не изменяется в ходе вычисления
type ResourceCategory struct {
	ID        string
	ServiceID string
	Type      CategoryType
	Active    bool
	Name      string
}

// FilterBookable оставляет активные категории указанных типов, сохраняя порядок каталога
func FilterBookable(categories []ResourceCategory, types []CategoryType) []ResourceCategory {
	allowed := make(map[CategoryType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	result := make([]ResourceCategory, 0, len(categories))
	for _, c := range categories {
		if !c.Active {
			continue
		}
		if _, ok := allowed[c.Type]; !ok {
			continue
		}
		result = append(result, c)
	}
	return result
}
