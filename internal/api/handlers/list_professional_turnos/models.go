package list_professional_turnos

import (
	"net/url"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(actor domain.Actor, professionalID int64, query url.Values) (*models.ListProfessionalTurnosRequest, error) {
	q, err := handlers.ParseTurnoListQuery(query)
	if err != nil {
		return nil, err
	}

	return &models.ListProfessionalTurnosRequest{
		Actor:          actor,
		ProfessionalID: professionalID,
		From:           q.From,
		To:             q.To,
		Status:         q.Status,
		ServiceID:      q.ServiceID,
	}, nil
}
