package night_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	nightOptions "github.com/m04kA/SMC-AvailabilityService/internal/usecase/night_options"
)

const (
	msgMissingCategoryID = "ID категории обязателен"
	msgMissingArrival    = "дата заезда обязательна"
	msgInvalidNights     = "некорректное количество ночей"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgCategoryNotFound  = "ночная категория не найдена или неактивна"
)

type Handler struct {
	useCase NightOptionsUseCase
	logger  Logger
}

func NewHandler(useCase NightOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/night-options
// Query params: categoryId (required), arrival (required, YYYY-MM-DD), nights (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	categoryID := query.Get("categoryId")
	if categoryID == "" {
		h.logger.Warn("GET /availability/night-options - Missing category ID")
		handlers.RespondBadRequest(w, msgMissingCategoryID)
		return
	}

	arrival := query.Get("arrival")
	if arrival == "" {
		h.logger.Warn("GET /availability/night-options - Missing arrival date")
		handlers.RespondBadRequest(w, msgMissingArrival)
		return
	}

	nights := 0
	if raw := query.Get("nights"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /availability/night-options - Invalid nights: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNights)
			return
		}
		nights = n
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &nightOptions.Request{
		CategoryID:  categoryID,
		ArrivalDate: arrival,
		Nights:      nights,
	})
	if err != nil {
		switch {
		case errors.Is(err, nightOptions.ErrInvalidRequest):
			h.logger.Warn("GET /availability/night-options - Invalid request: category_id=%s, error=%v", categoryID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, nightOptions.ErrCategoryNotFound):
			h.logger.Warn("GET /availability/night-options - Category not found: category_id=%s", categoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, nightOptions.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/night-options - Upstream unavailable: category_id=%s, error=%v", categoryID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /availability/night-options - Failed to check options: category_id=%s, error=%v", categoryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/night-options - Options checked: category_id=%s, arrival=%s, early=%t, late=%t",
		categoryID, arrival, result.EarlyCheckIn.Available, result.LateCheckOut.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
