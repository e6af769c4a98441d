package modify_booking

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	modifyBooking "github.com/m04kA/servihogar-turnos/internal/usecase/modify_booking"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// ModifyBookingRequest HTTP request model, пустые поля не меняются
type ModifyBookingRequest struct {
	Date         *string `json:"date,omitempty" validate:"omitempty,isodate"`
	Time         *string `json:"time,omitempty" validate:"omitempty,hhmm"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Observations *string `json:"observations,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyBookingRequest) ToUseCaseRequest(actor domain.Actor, turnoID int64) (*modifyBooking.Request, error) {
	req := &modifyBooking.Request{
		Actor:        actor,
		TurnoID:      turnoID,
		Address:      r.Address,
		Observations: r.Observations,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.Time != nil {
		at, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, err
		}
		req.Time = &at
	}

	return req, nil
}
