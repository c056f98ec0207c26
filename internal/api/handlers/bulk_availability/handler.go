package bulk_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	bulkAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/bulk_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры запроса: нужны serviceId и непустой список дат YYYY-MM-DD"
	msgCategoryNotFound   = "категория не найдена или неактивна"
)

type Handler struct {
	useCase BulkAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase BulkAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, bulkAvailability.ErrInvalidRequest):
			h.logger.Warn("POST /availability/bulk - Invalid request: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, bulkAvailability.ErrCategoryNotFound):
			h.logger.Warn("POST /availability/bulk - Category not found: category_id=%s", req.CategoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, bulkAvailability.ErrUpstreamUnavailable):
			h.logger.Error("POST /availability/bulk - Upstream unavailable: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /availability/bulk - Failed to check availability: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	if len(response.FailedDates) > 0 {
		h.logger.Warn("POST /availability/bulk - Partial result: service_id=%s, failed_dates=%v",
			req.ServiceID, response.FailedDates)
	}
	h.logger.Info("POST /availability/bulk - Availability checked: service_id=%s, mode=%s, dates=%d",
		req.ServiceID, result.Mode, len(req.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}
