package list_professional_turnos

import (
	"errors"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingUser           = "отсутствует пользователь"
	msgInvalidParams         = "некорректные параметры запроса"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/turnos
// Query params: from, to (YYYY-MM-DD), status, serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/turnos - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := ToServiceRequest(actor, professionalID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/turnos - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByProfessional(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			h.logger.Warn("GET /professionals/{id}/turnos - Access denied: professional_id=%d, user_id=%d",
				professionalID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /professionals/{id}/turnos - Failed to list turnos: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/turnos - Turnos retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(result.Turnos))
	handlers.RespondJSON(w, http.StatusOK, result)
}
