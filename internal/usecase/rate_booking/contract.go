package rate_booking

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// TurnoRepository интерфейс репозитория бронирований
type TurnoRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turno, error)
}

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	ExistsForTurno(ctx context.Context, turnoID int64) (bool, error)
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	RecalculateProfessional(ctx context.Context, professionalID int64) (*domain.ProfessionalRating, error)
}

// EventEmitter интерфейс публикации событий бронирований
type EventEmitter interface {
	EmitRated(ctx context.Context, turno *domain.Turno, clientID int64, score int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
