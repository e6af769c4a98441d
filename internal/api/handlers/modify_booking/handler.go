package modify_booking

import (
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
	"github.com/m04kA/servihogar-turnos/pkg/validator"
)

const (
	msgInvalidTurnoID     = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/turnos/{turnoId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turnoID, err := handlers.PathInt64(r, "turnoId")
	if err != nil {
		h.logger.Warn("PATCH /turnos/{id} - Invalid turno ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnoID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turnos/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(req); errs != nil {
		handlers.RespondBadRequest(w, validator.Message(errs))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, turnoID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("PATCH /turnos/{id} - Failed to modify turno: turno_id=%d, error=%v", turnoID, err)
		} else {
			h.logger.Warn("PATCH /turnos/{id} - Rejected: turno_id=%d, error=%v", turnoID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /turnos/{id} - Turno modified successfully: turno_id=%d, user_id=%d", turnoID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTurno(result.Turno))
}
