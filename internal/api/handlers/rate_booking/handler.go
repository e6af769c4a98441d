package rate_booking

import (
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/pkg/validator"
)

const (
	msgInvalidTurnoID     = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
)

type Handler struct {
	useCase RateBookingUseCase
	logger  Logger
}

func NewHandler(useCase RateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/turnos/{turnoId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turnoID, err := handlers.PathInt64(r, "turnoId")
	if err != nil {
		h.logger.Warn("POST /turnos/{id}/rating - Invalid turno ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnoID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req RateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turnos/{id}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(req); errs != nil {
		handlers.RespondBadRequest(w, validator.Message(errs))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, turnoID))
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("POST /turnos/{id}/rating - Failed to rate turno: turno_id=%d, error=%v", turnoID, err)
		} else {
			h.logger.Warn("POST /turnos/{id}/rating - Rejected: turno_id=%d, error=%v", turnoID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /turnos/{id}/rating - Turno rated successfully: turno_id=%d, score=%d", turnoID, req.Score)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
