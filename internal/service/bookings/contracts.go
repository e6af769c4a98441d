package bookings

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
)

// TurnoRepository интерфейс репозитория бронирований
type TurnoRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turno, error)
	ListByClient(ctx context.Context, clientID int64, f turnoRepo.ListFilter) ([]*domain.Turno, error)
	ListByProfessional(ctx context.Context, professionalID int64, f turnoRepo.ListFilter) ([]*domain.Turno, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.TurnoStatus) error
	Cancel(ctx context.Context, id int64, from domain.TurnoStatus, cancelledBy int64, reason *string) error
	CountActiveByService(ctx context.Context, serviceID int64) (int, error)
}

// EventEmitter интерфейс публикации событий бронирований
type EventEmitter interface {
	Emit(ctx context.Context, t events.Type, turno *domain.Turno, actorID *int64)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveTransition(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
