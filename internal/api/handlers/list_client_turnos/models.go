package list_client_turnos

import (
	"net/url"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(actor domain.Actor, clientID int64, query url.Values) (*models.ListClientTurnosRequest, error) {
	q, err := handlers.ParseTurnoListQuery(query)
	if err != nil {
		return nil, err
	}

	return &models.ListClientTurnosRequest{
		Actor:     actor,
		ClientID:  clientID,
		From:      q.From,
		To:        q.To,
		Status:    q.Status,
		ServiceID: q.ServiceID,
	}, nil
}
