package booking_transition

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// Action переход, выполняемый обработчиком
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionReject   Action = "reject"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
)

const (
	msgInvalidTurnoID     = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
)

// RejectRequest HTTP request model для отклонения, тело необязательно
type RejectRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type Handler struct {
	service BookingService
	action  Action
	logger  Logger
}

// NewHandler создает обработчик одного перехода статуса
func NewHandler(service BookingService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/turnos/{turnoId}/{confirm|reject|start|complete}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /turnos/{id}/%s", h.action)

	turnoID, err := handlers.PathInt64(r, "turnoId")
	if err != nil {
		h.logger.Warn("%s - Invalid turno ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTurnoID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var reason *string
	if h.action == ActionReject {
		var req RejectRequest
		if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("%s - Invalid request body: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		reason = req.Reason
	}

	turno, err := h.apply(r.Context(), turnoID, actor, reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("%s - Turno not found: turno_id=%d", route, turnoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrPermissionDenied):
			h.logger.Warn("%s - Access denied: turno_id=%d, user_id=%d", route, turnoID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrValidation):
			h.logger.Warn("%s - Rejected: turno_id=%d, error=%v", route, turnoID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("%s - Failed: turno_id=%d, error=%v", route, turnoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Turno updated successfully: turno_id=%d, status=%s", route, turnoID, turno.Status)
	handlers.RespondJSON(w, http.StatusOK, turno)
}

func (h *Handler) apply(ctx context.Context, id int64, actor domain.Actor, reason *string) (*models.TurnoResponse, error) {
	switch h.action {
	case ActionConfirm:
		return h.service.Confirm(ctx, id, actor)
	case ActionReject:
		return h.service.Reject(ctx, id, actor, reason)
	case ActionStart:
		return h.service.Start(ctx, id, actor)
	case ActionComplete:
		return h.service.Complete(ctx, id, actor)
	}
	return nil, fmt.Errorf("unknown action %q", h.action)
}
