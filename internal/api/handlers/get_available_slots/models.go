package get_available_slots

import (
	"github.com/m04kA/servihogar-turnos/internal/domain"
	getAvailableSlots "github.com/m04kA/servihogar-turnos/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProfessionalID  int64          `json:"professionalId"`
	ServiceID       int64          `json:"serviceId"`
	From            string         `json:"from"`
	Days            int            `json:"days"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse свободный слот
type SlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// FromUseCaseResponse материализует ленивую последовательность слотов
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		From:            resp.FromDate.Format(domain.DateFormat),
		Days:            resp.HorizonDays,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0),
	}

	for slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.StartTime.String(),
		})
	}

	return out
}
