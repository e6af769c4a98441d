package list_client_turnos

import (
	"errors"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUser     = "отсутствует пользователь"
	msgInvalidParams   = "некорректные параметры запроса"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/clients/{clientId}/turnos
// Query params: from, to (YYYY-MM-DD), status, serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id}/turnos - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := ToServiceRequest(actor, clientID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /clients/{id}/turnos - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByClient(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			h.logger.Warn("GET /clients/{id}/turnos - Access denied: client_id=%d, user_id=%d", clientID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /clients/{id}/turnos - Failed to list turnos: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/turnos - Turnos retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Turnos))
	handlers.RespondJSON(w, http.StatusOK, result)
}
