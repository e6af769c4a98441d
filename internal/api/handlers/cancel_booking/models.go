package cancel_booking

import (
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actor domain.Actor) *models.CancelTurnoRequest {
	return &models.CancelTurnoRequest{
		Actor:  actor,
		Reason: r.Reason,
	}
}
