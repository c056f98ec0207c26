package bulk_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validatedRequest запрос после нормализации
type validatedRequest struct {
	mode       domain.Mode
	serviceID  string
	dates      []domain.Date
	categoryID string
}

// validateRequest валидирует входные данные и определяет режим
func validateRequest(req *Request, cfg Config) (*validatedRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidRequest)
	}

	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: dates are required", ErrInvalidRequest)
	}

	if req.ServiceID == "" && req.Mode == "" {
		return nil, fmt.Errorf("%w: service id or mode is required", ErrInvalidRequest)
	}

	if req.Mode != "" && !req.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}

	mode := req.Mode
	serviceID := req.ServiceID
	if serviceID != "" {
		serviceMode, ok := cfg.modeOf(serviceID)
		if !ok {
			return nil, fmt.Errorf("%w: bulk availability is not supported for service %s", ErrInvalidRequest, serviceID)
		}
		if mode != "" && mode != serviceMode {
			return nil, fmt.Errorf("%w: mode %s does not match service %s", ErrInvalidRequest, mode, serviceID)
		}
		mode = serviceMode
	} else {
		serviceID = cfg.serviceOf(mode)
	}

	if req.CategoryID != "" {
		if _, err := uuid.Parse(req.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: invalid category id %q", ErrInvalidRequest, req.CategoryID)
		}
	}

	dates, err := domain.NormalizeDates(req.Dates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if cfg.MaxDates > 0 && len(dates) > cfg.MaxDates {
		return nil, fmt.Errorf("%w: %d dates requested, at most %d allowed", ErrInvalidRequest, len(dates), cfg.MaxDates)
	}

	return &validatedRequest{
		mode:       mode,
		serviceID:  serviceID,
		dates:      dates,
		categoryID: req.CategoryID,
	}, nil
}

// selectCategories фильтрует каталог и при необходимости оставляет одну категорию
func selectCategories(catalog []domain.ResourceCategory, types []domain.CategoryType, categoryID string) ([]domain.ResourceCategory, error) {
	bookable := domain.FilterBookable(catalog, types)
	if categoryID == "" {
		return bookable, nil
	}

	for _, c := range bookable {
		if c.ID == categoryID {
			return []domain.ResourceCategory{c}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
}
