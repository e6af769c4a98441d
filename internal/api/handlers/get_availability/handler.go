package get_availability

import (
	"net/http"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	windows, err := h.service.GetWeek(r.Context(), professionalID)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/availability - Failed to get week: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/availability - professional_id=%d, windows=%d", professionalID, len(windows))
	handlers.RespondJSON(w, http.StatusOK, FromDomainWindows(professionalID, windows))
}
