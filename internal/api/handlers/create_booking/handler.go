package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/api/middleware"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/turnos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turnos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(req); errs != nil {
		h.logger.Warn("POST /turnos - Validation failed: %v", errs)
		handlers.RespondBadRequest(w, validator.Message(errs))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /turnos - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /turnos - Slot unavailable: professional_id=%d, date=%s, time=%s",
				req.ProfessionalID, req.Date, req.Time)
		case errors.Is(err, domain.ErrServiceUnavailable):
			h.logger.Warn("POST /turnos - Service unavailable: professional_id=%d, service_id=%d",
				req.ProfessionalID, req.ServiceID)
		case handlers.StatusFor(err) == http.StatusInternalServerError:
			h.logger.Error("POST /turnos - Failed to create turno: client_id=%d, error=%v", req.ClientID, err)
		default:
			h.logger.Warn("POST /turnos - Rejected: client_id=%d, error=%v", req.ClientID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /turnos - Turno created successfully: turno_id=%d, client_id=%d, final_price=%s",
		result.Turno.ID, result.Turno.ClientID, result.Turno.FinalPrice.StringFixed(domain.MoneyPlaces))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
