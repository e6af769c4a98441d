package pricing

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// PromotionCatalog интерфейс каталога промо-акций
type PromotionCatalog interface {
	FindApplicable(ctx context.Context, service *domain.Service, at time.Time) ([]*domain.Promotion, error)
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
	Usable(p *domain.Promotion, service *domain.Service, at time.Time) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
