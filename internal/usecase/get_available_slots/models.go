package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ProfessionalID int64
	ServiceID      int64
	FromDate       time.Time // нулевое значение - сегодня
	HorizonDays    int       // 0 - значение по умолчанию из конфигурации
}

// Response модель ответа со свободными слотами
// Slots вычисляется лениво при итерации
type Response struct {
	ProfessionalID  int64
	ServiceID       int64
	FromDate        time.Time
	HorizonDays     int
	DurationMinutes int
	Slots           iter.Seq[domain.Slot]
}

// Settings параметры планировщика
type Settings struct {
	Location           *time.Location
	DefaultHorizonDays int
	MaxHorizonDays     int
}
