package update_availability

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

type AvailabilityService interface {
	ReplaceWeek(ctx context.Context, actor domain.Actor, professionalID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
