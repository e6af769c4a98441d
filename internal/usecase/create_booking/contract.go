package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/internal/service/pricing"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// TurnoRepository интерфейс репозитория бронирований
type TurnoRepository interface {
	ExistsActiveAtSlot(ctx context.Context, professionalID int64, date time.Time, at types.TimeString, excludeID int64) (bool, error)
	Create(ctx context.Context, turno *domain.Turno) (*domain.Turno, error)
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

// PricingEngine интерфейс расчета цены
type PricingEngine interface {
	Compute(ctx context.Context, service *domain.Service, at time.Time, explicitPromotionID *int64, promoCode *string) (*pricing.Result, error)
}

// EventEmitter интерфейс публикации событий бронирований
type EventEmitter interface {
	Emit(ctx context.Context, t events.Type, turno *domain.Turno, actorID *int64)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveTransition(status string)
	ObservePromotion(source string)
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
