package list_client_turnos

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

type BookingService interface {
	ListByClient(ctx context.Context, req *models.ListClientTurnosRequest) (*models.TurnoListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
