package get_availability

import "github.com/m04kA/servihogar-turnos/internal/domain"

// WindowResponse окно недельного расписания
type WindowResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeekResponse HTTP response model
type WeekResponse struct {
	ProfessionalID int64            `json:"professionalId"`
	Windows        []WindowResponse `json:"windows"`
}

// FromDomainWindows конвертирует окна расписания в HTTP response
func FromDomainWindows(professionalID int64, windows []*domain.AvailabilityWindow) *WeekResponse {
	resp := &WeekResponse{
		ProfessionalID: professionalID,
		Windows:        make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}
	return resp
}
