package night_options

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректных входных данных
	ErrInvalidRequest = errors.New("invalid night options request")

	// ErrCategoryNotFound возвращается, когда категория отсутствует в активном ночном каталоге
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUpstreamUnavailable возвращается при ошибке загрузки каталога, резерваций или блокировок
	// Для одиночной проверки любая ошибка загрузки фатальна
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
