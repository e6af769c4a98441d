package booking_transition

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error)
	Reject(ctx context.Context, id int64, actor domain.Actor, reason *string) (*models.TurnoResponse, error)
	Start(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error)
	Complete(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
