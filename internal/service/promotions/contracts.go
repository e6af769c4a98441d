package promotions

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// PromotionRepository интерфейс репозитория промо-акций
type PromotionRepository interface {
	GetActiveAt(ctx context.Context, at time.Time) ([]*domain.Promotion, error)
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
}

// TurnoCounter считает активные бронирования, ссылающиеся на промо-акцию
type TurnoCounter interface {
	CountActiveByPromotion(ctx context.Context, promotionID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
