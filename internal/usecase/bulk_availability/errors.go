package bulk_availability

import "errors"

var (
	// ErrInvalidRequest возвращается при отсутствии дат, сервиса или некорректных входных данных
	ErrInvalidRequest = errors.New("invalid bulk availability request")

	// ErrUpstreamUnavailable возвращается, если не удалось загрузить каталог или блокировки
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCategoryNotFound возвращается, когда запрошенная категория отсутствует в активном каталоге
	ErrCategoryNotFound = errors.New("category not found")

	// ErrPartitionFetchFailed ошибка загрузки одной партиции
	// Не прерывает запрос: даты партиции отсутствуют в ответе, ошибка попадает в Response.Failures
	ErrPartitionFetchFailed = errors.New("partition fetch failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
