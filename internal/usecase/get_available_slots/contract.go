package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// TurnoRepository интерфейс репозитория бронирований
type TurnoRepository interface {
	// GetActiveByProfessional получает активные бронирования профессионала в диапазоне дат
	GetActiveByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Turno, error)
}

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error)
}

// CatalogClient интерфейс клиента сервиса каталога
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetProfessional(ctx context.Context, professionalID int64) (*domain.Professional, error)
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
