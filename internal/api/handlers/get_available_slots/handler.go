package get_available_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	getAvailableSlots "github.com/m04kA/servihogar-turnos/internal/usecase/get_available_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingServiceID      = "ID услуги обязателен"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgInvalidFrom           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays           = "некорректное количество дней"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/available-slots
// Query params: serviceId (обязательно), from (YYYY-MM-DD), days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/available-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &getAvailableSlots.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
	}

	if from := query.Get("from"); from != "" {
		req.FromDate, err = time.Parse(domain.DateFormat, from)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
	}

	if days := query.Get("days"); days != "" {
		req.HorizonDays, err = strconv.Atoi(days)
		if err != nil || req.HorizonDays <= 0 {
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("GET /professionals/{id}/available-slots - Failed: professional_id=%d, error=%v", professionalID, err)
		} else {
			h.logger.Warn("GET /professionals/{id}/available-slots - Rejected: professional_id=%d, error=%v", professionalID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /professionals/{id}/available-slots - Found %d slots: professional_id=%d, service_id=%d",
		len(response.Slots), professionalID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
