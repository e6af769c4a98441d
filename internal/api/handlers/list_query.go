package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// TurnoListQuery фильтры списков бронирований из query параметров
type TurnoListQuery struct {
	From      *time.Time
	To        *time.Time
	Status    *string
	ServiceID *int64
}

// ParseTurnoListQuery разбирает from, to (YYYY-MM-DD), status и serviceId
// Пустые параметры не ограничивают выборку
func ParseTurnoListQuery(query url.Values) (TurnoListQuery, error) {
	var q TurnoListQuery

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return q, fmt.Errorf("invalid from: %w", err)
		}
		q.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return q, fmt.Errorf("invalid to: %w", err)
		}
		q.To = &to
	}

	if v := query.Get("status"); v != "" {
		if _, err := models.ToDomainTurnoStatus(v); err != nil {
			return q, err
		}
		q.Status = &v
	}

	if v := query.Get("serviceId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return q, fmt.Errorf("invalid serviceId %q", v)
		}
		q.ServiceID = &id
	}

	return q, nil
}
