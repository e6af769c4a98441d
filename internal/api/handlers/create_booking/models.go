package create_booking

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
	createBooking "github.com/m04kA/servihogar-turnos/internal/usecase/create_booking"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID       int64    `json:"clientId" validate:"required,gt=0"`
	ProfessionalID int64    `json:"professionalId" validate:"required,gt=0"`
	ServiceID      int64    `json:"serviceId" validate:"required,gt=0"`
	Date           string   `json:"date" validate:"required,isodate"` // "2025-10-15"
	Time           string   `json:"time" validate:"required,hhmm"`    // "10:00"
	Address        string   `json:"address" validate:"required,max=255"`
	Latitude       *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Observations   *string  `json:"observations,omitempty" validate:"omitempty,max=500"`
	PromoCode      *string  `json:"promoCode,omitempty" validate:"omitempty,max=50"`
	PromotionID    *int64   `json:"promotionId,omitempty" validate:"omitempty,gt=0"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	*models.TurnoResponse
	Warnings []string `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:          actor,
		ClientID:       r.ClientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           date,
		Time:           at,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Observations:   r.Observations,
		PromoCode:      r.PromoCode,
		PromotionID:    r.PromotionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		TurnoResponse: models.FromDomainTurno(resp.Turno),
		Warnings:      resp.Warnings,
	}
}
