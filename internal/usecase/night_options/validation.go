package night_options

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует запрос и возвращает дату заезда и количество ночей
func validateRequest(req *Request, maxNights int) (domain.Date, int, error) {
	if req == nil {
		return domain.Date{}, 0, fmt.Errorf("%w: request is required", ErrInvalidRequest)
	}

	if req.CategoryID == "" {
		return domain.Date{}, 0, fmt.Errorf("%w: category id is required", ErrInvalidRequest)
	}
	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return domain.Date{}, 0, fmt.Errorf("%w: invalid category id %q", ErrInvalidRequest, req.CategoryID)
	}

	if req.ArrivalDate == "" {
		return domain.Date{}, 0, fmt.Errorf("%w: arrival date is required", ErrInvalidRequest)
	}
	arrival, err := domain.ParseDate(req.ArrivalDate)
	if err != nil {
		return domain.Date{}, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	nights := req.Nights
	if nights == 0 {
		nights = 1
	}
	if nights < 1 || nights > maxNights {
		return domain.Date{}, 0, fmt.Errorf("%w: nights must be between 1 and %d", ErrInvalidRequest, maxNights)
	}

	return arrival, nights, nil
}
