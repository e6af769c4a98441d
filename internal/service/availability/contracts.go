package availability

import (
	"context"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error)
	ReplaceWeek(ctx context.Context, professionalID int64, windows []*domain.AvailabilityWindow) error
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
