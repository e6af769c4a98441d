package update_availability

import (
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// UpdateAvailabilityRequest HTTP request model, заменяет неделю целиком
type UpdateAvailabilityRequest struct {
	Windows []WindowRequest `json:"windows" validate:"max=7,dive"`
}

// WindowRequest окно недельного расписания
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

// ToDomainWindows конвертирует HTTP запрос в доменные окна
func (r *UpdateAvailabilityRequest) ToDomainWindows(professionalID int64) []*domain.AvailabilityWindow {
	windows := make([]*domain.AvailabilityWindow, 0, len(r.Windows))
	for _, w := range r.Windows {
		windows = append(windows, &domain.AvailabilityWindow{
			ProfessionalID: professionalID,
			DayOfWeek:      w.DayOfWeek,
			StartTime:      types.TimeString(w.StartTime),
			EndTime:        types.TimeString(w.EndTime),
		})
	}
	return windows
}
