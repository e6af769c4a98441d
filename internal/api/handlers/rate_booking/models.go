package rate_booking

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	rateBooking "github.com/m04kA/servihogar-turnos/internal/usecase/rate_booking"
)

// RateBookingRequest HTTP request model
// Диапазон оценки проверяет use case
type RateBookingRequest struct {
	Score   int     `json:"score"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// RatingResponse HTTP response model
type RatingResponse struct {
	ID             int64   `json:"id"`
	TurnoID        int64   `json:"turnoId"`
	Score          int     `json:"score"`
	Comment        *string `json:"comment,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	ProfessionalID int64   `json:"professionalId"`
	AverageRating  string  `json:"averageRating"`
	RatingsCount   int     `json:"ratingsCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RateBookingRequest) ToUseCaseRequest(actor domain.Actor, turnoID int64) *rateBooking.Request {
	return &rateBooking.Request{
		Actor:   actor,
		TurnoID: turnoID,
		Score:   r.Score,
		Comment: r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rateBooking.Response) *RatingResponse {
	return &RatingResponse{
		ID:             resp.Rating.ID,
		TurnoID:        resp.Rating.TurnoID,
		Score:          resp.Rating.Score,
		Comment:        resp.Rating.Comment,
		CreatedAt:      resp.Rating.CreatedAt.UTC().Format(time.RFC3339),
		ProfessionalID: resp.ProfessionalRating.ProfessionalID,
		AverageRating:  resp.ProfessionalRating.Average.StringFixed(domain.MoneyPlaces),
		RatingsCount:   resp.ProfessionalRating.Count,
	}
}
