package preview_price

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	previewPrice "github.com/m04kA/servihogar-turnos/internal/usecase/preview_price"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidPromotionID = "некорректный ID промо-акции"
	msgInvalidAt          = "некорректный момент расчета, ожидается RFC3339"
)

type Handler struct {
	useCase PreviewPriceUseCase
	logger  Logger
}

func NewHandler(useCase PreviewPriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/price-preview
// Query params: promoCode, promotionId, at (RFC3339) - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/price-preview - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	req := &previewPrice.Request{ServiceID: serviceID}

	if code := query.Get("promoCode"); code != "" {
		req.PromoCode = &code
	}

	if idStr := query.Get("promotionId"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidPromotionID)
			return
		}
		req.PromotionID = &id
	}

	if atStr := query.Get("at"); atStr != "" {
		at, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		req.At = &at
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("GET /services/{id}/price-preview - Failed: service_id=%d, error=%v", serviceID, err)
		} else {
			h.logger.Warn("GET /services/{id}/price-preview - Rejected: service_id=%d, error=%v", serviceID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /services/{id}/price-preview - service_id=%d, final_price=%s, source=%s",
		serviceID, result.FinalPrice, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
