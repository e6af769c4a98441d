package list_professional_turnos

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

type BookingService interface {
	ListByProfessional(ctx context.Context, req *models.ListProfessionalTurnosRequest) (*models.TurnoListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
