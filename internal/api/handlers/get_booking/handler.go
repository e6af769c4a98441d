package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
)

const (
	msgInvalidTurnoID = "некорректный ID бронирования"
	msgMissingUser    = "отсутствует пользователь"
	msgNotFound       = "бронирование не найдено"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/turnos/{turnoId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turnoID, err := handlers.PathInt64(r, "turnoId")
	if err != nil {
		h.logger.Warn("GET /turnos/{id} - Invalid turno ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnoID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /turnos/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// Сервис сам проверит права доступа
	turno, err := h.service.GetByID(r.Context(), turnoID, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /turnos/{id} - Turno not found: turno_id=%d", turnoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrPermissionDenied):
			h.logger.Warn("GET /turnos/{id} - Access denied: turno_id=%d, user_id=%d", turnoID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /turnos/{id} - Failed to get turno: turno_id=%d, error=%v", turnoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turnos/{id} - Turno retrieved successfully: turno_id=%d, user_id=%d", turnoID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, turno)
}
