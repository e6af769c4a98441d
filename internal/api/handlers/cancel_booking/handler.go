package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/validator"
)

const (
	msgInvalidTurnoID     = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
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

// Handle PATCH /api/v1/turnos/{turnoId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turnoID, err := handlers.PathInt64(r, "turnoId")
	if err != nil {
		h.logger.Warn("PATCH /turnos/{id}/cancel - Invalid turno ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnoID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// Тело с причиной отмены необязательно
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /turnos/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		handlers.RespondBadRequest(w, validator.Message(errs))
		return
	}

	turno, err := h.service.Cancel(r.Context(), turnoID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /turnos/{id}/cancel - Turno not found: turno_id=%d", turnoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrPermissionDenied):
			h.logger.Warn("PATCH /turnos/{id}/cancel - Access denied: turno_id=%d, user_id=%d", turnoID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /turnos/{id}/cancel - Cannot cancel: turno_id=%d, error=%v", turnoID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /turnos/{id}/cancel - Failed to cancel turno: turno_id=%d, error=%v", turnoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turnos/{id}/cancel - Turno cancelled successfully: turno_id=%d, user_id=%d", turnoID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, turno)
}
