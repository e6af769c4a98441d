package create_booking

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor          domain.Actor     // Кто создает бронирование
	ClientID       int64            // Клиент, для которого создается бронирование
	ProfessionalID int64            // ID профессионала
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата (без времени)
	Time           types.TimeString // Время начала, например "10:00"
	Address        string           // Адрес оказания услуги
	Latitude       *float64
	Longitude      *float64
	Observations   *string
	PromoCode      *string // Промокод (опционально)
	PromotionID    *int64  // Явно выбранная промо-акция (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Turno    *domain.Turno
	Warnings []string // Предупреждения расчета цены (например, неверный промокод)
}
