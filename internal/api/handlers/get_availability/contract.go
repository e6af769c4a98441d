package get_availability

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

type AvailabilityService interface {
	GetWeek(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
