package modify_booking

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// TurnoRepository интерфейс репозитория бронирований
type TurnoRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turno, error)
	ExistsActiveAtSlot(ctx context.Context, professionalID int64, date time.Time, at types.TimeString, excludeID int64) (bool, error)
	UpdateDetails(ctx context.Context, id int64, from domain.TurnoStatus, d turnoRepo.Details) error
}

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error)
}

// EventEmitter интерфейс публикации событий бронирований
type EventEmitter interface {
	Emit(ctx context.Context, t events.Type, turno *domain.Turno, actorID *int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
