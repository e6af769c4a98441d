package modify_booking

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// Request запрос на изменение бронирования
// Пустые поля остаются без изменений
type Request struct {
	Actor        domain.Actor
	TurnoID      int64
	Date         *time.Time
	Time         *types.TimeString
	Address      *string
	Observations *string
}

// Response ответ с измененным бронированием
type Response struct {
	Turno *domain.Turno
}
